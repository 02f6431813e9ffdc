// Package test helpers ที่ test ของหลาย package ใช้ร่วมกัน
package test

import (
	"bytes"
	"encoding/csv"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Timer จับเวลาของ test case แล้ว log ผ่าน t
type Timer struct {
	t     testing.TB
	start time.Time
	name  string
}

func NewTimer(t testing.TB, name string) *Timer {
	return &Timer{t: t, start: time.Now(), name: name}
}

func (tm *Timer) Stop() time.Duration {
	d := time.Since(tm.start)
	tm.t.Logf("⏱️  %s took %v", tm.name, d)
	return d
}

// CaseResult ผลของ sub-test หนึ่งตัว
type CaseResult struct {
	Name     string
	Duration time.Duration
	Passed   bool
}

// Suite รวมผล sub-test แล้วสรุปตอนจบ
type Suite struct {
	Name    string
	Results []CaseResult
}

func NewSuite(name string) *Suite {
	return &Suite{Name: name}
}

// Run เรียก t.Run พร้อมจับเวลาและเก็บผล
func (s *Suite) Run(t *testing.T, name string, fn func(t *testing.T)) bool {
	var d time.Duration
	passed := t.Run(name, func(t *testing.T) {
		timer := NewTimer(t, name)
		defer func() { d = timer.Stop() }()
		fn(t)
	})
	s.Results = append(s.Results, CaseResult{Name: name, Duration: d, Passed: passed})
	return passed
}

func (s *Suite) Summary(t testing.TB) {
	passed := 0
	var total time.Duration
	for _, r := range s.Results {
		if r.Passed {
			passed++
		}
		total += r.Duration
	}
	t.Logf("📊 %s: %d/%d passed in %v", s.Name, passed, len(s.Results), total)
	for _, r := range s.Results {
		status := "✅"
		if !r.Passed {
			status = "❌"
		}
		t.Logf("   %s %s: %v", status, r.Name, r.Duration)
	}
}

// WorkbookBytes สร้าง .xlsx ใน memory แถวแรกของ rows คือ header
func WorkbookBytes(t testing.TB, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func CSVBytes(t testing.TB, rows [][]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	require.NoError(t, w.WriteAll(rows))
	return buf.Bytes()
}

// MultipartRequest ถ้า filename ว่างจะส่ง form เปล่า (ไม่มีไฟล์)
func MultipartRequest(t testing.TB, method, target, field, filename string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if filename != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
