package results

import (
	"Backend-Results/src/models"
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Identity columns ของไฟล์คะแนน คอลัมน์อื่นทั้งหมดถือเป็นชื่อวิชา
const (
	ColGRNumber     = "GRNumber"
	ColRollNumber   = "rollNumber"
	ColName         = "name"
	ColStandard     = "standard"
	ColStream       = "stream"
	ColAcademicYear = "academicYear"
)

var identityColumns = map[string]bool{
	ColGRNumber:     true,
	ColRollNumber:   true,
	ColName:         true,
	ColStandard:     true,
	ColStream:       true,
	ColAcademicYear: true,
}

// Cell ค่าหนึ่งช่องพร้อมชื่อคอลัมน์จาก header
type Cell struct {
	Column string
	Value  string
}

// Row หนึ่งแถวข้อมูล Number คือเลขแถวที่เห็นใน spreadsheet (header = 1)
type Row struct {
	Number int
	Cells  []Cell
}

func (r Row) Get(column string) string {
	for _, c := range r.Cells {
		if c.Column == column {
			return c.Value
		}
	}
	return ""
}

// RowIdentity identity fields ของแถว tag col คือชื่อคอลัมน์ที่ใช้ใน error
type RowIdentity struct {
	GRNumber     string `col:"GRNumber" validate:"required"`
	RollNumber   string `col:"rollNumber" validate:"required"`
	Name         string `col:"name" validate:"required"`
	Standard     string `col:"standard" validate:"required,oneof=8 9 10 11 12"`
	Stream       string `col:"stream" validate:"omitempty,oneof=Science Commerce Arts"`
	AcademicYear string `col:"academicYear" validate:"required"`
}

// ValidatedRow แถวที่ผ่านการตรวจแล้ว subjects เรียงตามลำดับคอลัมน์
type ValidatedRow struct {
	Number   int
	Identity RowIdentity
	Subjects []models.Subject
}

// RowValidator ตรวจ identity fields และคะแนนทุกวิชาของแถว ไม่มี side effect
type RowValidator struct {
	validate *validator.Validate
}

func NewRowValidator() *RowValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("col")
	})
	return &RowValidator{validate: v}
}

func (rv *RowValidator) Validate(row Row) (*ValidatedRow, error) {
	identity := RowIdentity{
		GRNumber:     row.Get(ColGRNumber),
		RollNumber:   row.Get(ColRollNumber),
		Name:         row.Get(ColName),
		Standard:     row.Get(ColStandard),
		Stream:       row.Get(ColStream),
		AcademicYear: row.Get(ColAcademicYear),
	}
	if err := rv.validateIdentity(identity); err != nil {
		return nil, err
	}

	subjects := make([]models.Subject, 0, len(row.Cells))
	for _, cell := range row.Cells {
		if identityColumns[cell.Column] {
			continue
		}
		marks, err := parseMarks(cell.Value)
		if err != nil {
			return nil, models.NewValidationError(models.InvalidMark,
				"Invalid marks for subject %s: %s", cell.Column, cell.Value)
		}
		subjects = append(subjects, models.Subject{Name: cell.Column, Marks: marks})
	}
	if len(subjects) == 0 {
		return nil, models.NewValidationError(models.NoSubjects, "No subject marks found")
	}

	return &ValidatedRow{Number: row.Number, Identity: identity, Subjects: subjects}, nil
}

func (rv *RowValidator) validateIdentity(identity RowIdentity) error {
	err := rv.validate.Struct(identity)
	if err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}

		var missing []string
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
			}
		}
		if len(missing) > 0 {
			return models.NewValidationError(models.MissingIdentityFields,
				"Missing required fields: %s", strings.Join(missing, ", "))
		}

		fe := fieldErrs[0]
		return models.NewValidationError(models.InvalidIdentityField,
			"Invalid value for %s: %v", fe.Field(), fe.Value())
	}

	if models.StreamRequired(identity.Standard) && identity.Stream == "" {
		return models.NewValidationError(models.MissingIdentityFields,
			"Missing required fields: %s (required for standard %s)", ColStream, identity.Standard)
	}
	return nil
}

// parseMarks คะแนนต้องเป็นตัวเลขในช่วง [0,100]
func parseMarks(raw string) (float64, error) {
	marks, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(marks) || marks < 0 || marks > 100 {
		return 0, strconv.ErrRange
	}
	return marks, nil
}
