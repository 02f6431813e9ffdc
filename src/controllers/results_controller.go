package controllers

import (
	"Backend-Results/src/models"
	"Backend-Results/src/services/results"
	"Backend-Results/src/services/uploads"
	"Backend-Results/src/utils"
	"bytes"
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ResultsService ส่วนที่ controller ใช้จาก results.Service
type ResultsService interface {
	Ingest(ctx context.Context, rows []results.Row) *models.UploadSummary
	Lookup(ctx context.Context, q results.LookupQuery) (*models.StudentResult, error)
	History(ctx context.Context, grNumber string) (*models.StudentHistory, error)
}

type ResultsController struct {
	service  ResultsService
	archiver uploads.Archiver
	log      zerolog.Logger
}

// NewResultsController archiver เป็น nil ได้ (ไม่เก็บไฟล์ต้นฉบับ)
func NewResultsController(service ResultsService, archiver uploads.Archiver, logger zerolog.Logger) *ResultsController {
	return &ResultsController{service: service, archiver: archiver, log: logger}
}

// UploadResults godoc
// @Summary Upload results spreadsheet
// @Description Parse an .xlsx or .csv file (header row first) and upsert students and results row by row
// @Tags results
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Results spreadsheet"
// @Success 200 {object} models.UploadSummary
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /results/upload [post]
func (rc *ResultsController) UploadResults(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "No file uploaded.")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.HandleServiceError(c, rc.log, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.HandleServiceError(c, rc.log, err)
	}

	rows, err := results.ParseSheet(fileHeader.Filename, bytes.NewReader(data))
	if err != nil {
		if models.IsValidation(err) {
			return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
		}
		rc.log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("unreadable spreadsheet")
		return utils.HandleError(c, fiber.StatusBadRequest, "Unable to read uploaded file.")
	}

	ctx := c.UserContext()
	if rc.archiver != nil {
		location, err := rc.archiver.Archive(ctx, fileHeader.Filename, data)
		if err != nil {
			rc.log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("failed to archive upload")
		} else {
			rc.log.Info().Str("location", location).Msg("upload archived")
		}
	}

	summary := rc.service.Ingest(ctx, rows)
	return c.Status(fiber.StatusOK).JSON(summary)
}

// GetStudentResult godoc
// @Summary Get latest result of a student
// @Description identifier matches either GRNumber or rollNumber; stream is required for standard 11 and 12
// @Tags results
// @Produce json
// @Param identifier query string true "GRNumber or roll number"
// @Param standard query string true "Standard (8-12)"
// @Param stream query string false "Stream (Science, Commerce, Arts)"
// @Success 200 {object} models.StudentResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /results/student [get]
func (rc *ResultsController) GetStudentResult(c *fiber.Ctx) error {
	query := results.LookupQuery{
		Identifier: c.Query("identifier"),
		Standard:   c.Query("standard"),
		Stream:     c.Query("stream"),
	}

	found, err := rc.service.Lookup(c.UserContext(), query)
	if err != nil {
		return utils.HandleServiceError(c, rc.log, err)
	}
	return c.JSON(found)
}

// GetStudentHistory godoc
// @Summary Get all results of a student
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param grNumber path string true "GR number"
// @Success 200 {object} models.StudentHistory
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /results/student/{grNumber}/history [get]
func (rc *ResultsController) GetStudentHistory(c *fiber.Ctx) error {
	history, err := rc.service.History(c.UserContext(), c.Params("grNumber"))
	if err != nil {
		return utils.HandleServiceError(c, rc.log, err)
	}
	return c.JSON(history)
}
