package results

import (
	"Backend-Results/src/models"
	"Backend-Results/src/services/students"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service ingestion pipeline และการค้นหาผลการเรียน
type Service struct {
	students  students.Store
	results   Store
	validator *RowValidator
	log       zerolog.Logger
}

func NewService(studentStore students.Store, resultStore Store, logger zerolog.Logger) *Service {
	return &Service{
		students:  studentStore,
		results:   resultStore,
		validator: NewRowValidator(),
		log:       logger.With().Str("component", "results").Logger(),
	}
}

// Ingest ประมวลผลทีละแถวตามลำดับ แถวที่ fail จะถูกบันทึกเป็น "Row <n>: <message>"
// และไม่หยุดแถวถัดไป แถวที่บันทึกไปแล้วจะไม่ถูก rollback
//
// ไม่มี lock ข้าม request: ถ้าสองไฟล์อัปโหลดพร้อมกันและมี GRNumber เดียวกัน
// ค่าที่ commit ทีหลังจะทับค่าก่อนหน้า (last write wins)
func (s *Service) Ingest(ctx context.Context, rows []Row) *models.UploadSummary {
	summary := &models.UploadSummary{
		Message: "Results processed.",
		BatchID: uuid.NewString(),
		Errors:  []string{},
	}
	logger := s.log.With().Str("batchId", summary.BatchID).Logger()

	for _, row := range rows {
		result, err := s.ProcessRow(ctx, row)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Row %d: %s", row.Number, err.Error()))
			logger.Warn().Err(err).Int("row", row.Number).Msg("row rejected")
			continue
		}
		summary.SuccessCount++
		logger.Debug().Int("row", row.Number).Str("grade", result.Grade).Msg("row saved")
	}

	summary.ErrorCount = len(summary.Errors)
	logger.Info().
		Int("rows", len(rows)).
		Int("successCount", summary.SuccessCount).
		Int("errorCount", summary.ErrorCount).
		Msg("results batch processed")
	return summary
}

// ProcessRow validate → upsert student → aggregate + upsert result
func (s *Service) ProcessRow(ctx context.Context, row Row) (*models.Result, error) {
	validated, err := s.validator.Validate(row)
	if err != nil {
		return nil, err
	}

	student, err := s.students.UpsertByGRNumber(ctx, &models.Student{
		GRNumber:   validated.Identity.GRNumber,
		RollNumber: validated.Identity.RollNumber,
		Name:       validated.Identity.Name,
		Standard:   validated.Identity.Standard,
		Stream:     validated.Identity.Stream,
	})
	if err != nil {
		return nil, fmt.Errorf("save student: %w", err)
	}

	return s.SaveResult(ctx, student.ID, validated.Identity.AcademicYear, validated.Subjects)
}

// SaveResult คำนวณคะแนนรวม เปอร์เซ็นต์ เกรด แล้ว upsert result ของ (student, academicYear)
func (s *Service) SaveResult(ctx context.Context, studentID primitive.ObjectID, academicYear string, subjects []models.Subject) (*models.Result, error) {
	result, err := Aggregate(subjects)
	if err != nil {
		return nil, err
	}
	result.StudentID = studentID
	result.AcademicYear = academicYear

	saved, err := s.results.Upsert(ctx, result)
	if err != nil {
		return nil, fmt.Errorf("save result: %w", err)
	}
	return saved, nil
}

// Aggregate totalMarks = ผลรวม, percentage = total / จำนวนวิชา (ทศนิยม 2 ตำแหน่ง)
func Aggregate(subjects []models.Subject) (*models.Result, error) {
	if len(subjects) == 0 {
		return nil, models.NewValidationError(models.NoSubjects, "No subject marks found")
	}

	var total float64
	for _, subj := range subjects {
		total += subj.Marks
	}
	percentage := roundTo2(total / float64(len(subjects)))

	return &models.Result{
		Subjects:   subjects,
		TotalMarks: total,
		Percentage: percentage,
		Grade:      CalculateGrade(percentage),
	}, nil
}

// LookupQuery identifier เป็นได้ทั้ง GRNumber และ rollNumber
type LookupQuery struct {
	Identifier string
	Standard   string
	Stream     string
}

func (q LookupQuery) validate() error {
	if q.Identifier == "" || q.Standard == "" {
		return models.NewValidationError(models.InvalidRequest, "identifier and standard are required")
	}
	if models.StreamRequired(q.Standard) && q.Stream == "" {
		return models.NewValidationError(models.InvalidRequest, "stream is required for standard %s", q.Standard)
	}
	return nil
}

// Lookup หานักเรียนแล้วคืนผลของปีการศึกษาล่าสุด
func (s *Service) Lookup(ctx context.Context, q LookupQuery) (*models.StudentResult, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}

	student, err := s.students.FindForLookup(ctx, q.Identifier, q.Standard, q.Stream)
	if err != nil {
		return nil, err
	}

	result, err := s.results.FindLatest(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return &models.StudentResult{Student: student, Result: result}, nil
}

// History ผลทุกปีการศึกษาของนักเรียน
func (s *Service) History(ctx context.Context, grNumber string) (*models.StudentHistory, error) {
	student, err := s.students.FindByGRNumber(ctx, grNumber)
	if err != nil {
		return nil, err
	}

	results, err := s.results.FindByStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	return &models.StudentHistory{Student: student, Results: results}, nil
}
