package results

import (
	"Backend-Results/src/models"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseSheet อ่านไฟล์คะแนน (.xlsx ใช้ sheet แรกเท่านั้น หรือ .csv)
// แถวแรกเป็น header แถวที่ว่างทั้งแถวจะถูกข้าม
func ParseSheet(filename string, r io.Reader) ([]Row, error) {
	var (
		records [][]string
		err     error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		records, err = readXLSX(r)
	case ".csv":
		records, err = readCSV(r)
	default:
		return nil, models.NewValidationError(models.UnsupportedFile, "Unsupported file type: %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}

	return recordsToRows(records)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	// ค่าจริงของ cell ไม่ใช่ข้อความที่จัดรูปแบบแล้ว (เช่น 85.5 ในรูปแบบ "0" ต้องไม่กลายเป็น "86")
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// recordsToRows header ซ้ำจะถูกปฏิเสธทั้งไฟล์ ไม่งั้นวิชาเดียวกันจะถูกนับสองครั้ง
func recordsToRows(records [][]string) ([]Row, error) {
	if len(records) == 0 {
		return nil, nil
	}

	header := make([]string, len(records[0]))
	seen := make(map[string]bool, len(records[0]))
	for i, h := range records[0] {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name != "" && seen[name] {
			return nil, models.NewValidationError(models.DuplicateColumn, "Duplicate column in header: %s", name)
		}
		seen[name] = true
		header[i] = name
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		row := Row{Number: i + 2}
		for j, value := range record {
			if j >= len(header) || header[j] == "" {
				continue
			}
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			row.Cells = append(row.Cells, Cell{Column: header[j], Value: value})
		}
		if len(row.Cells) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
