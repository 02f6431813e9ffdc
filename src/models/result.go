package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subject struct {
	Name  string  `bson:"name" json:"name"`
	Marks float64 `bson:"marks" json:"marks"`
}

// Result ผลการเรียนของนักเรียนหนึ่งคนต่อหนึ่งปีการศึกษา (studentId, academicYear)
type Result struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID    primitive.ObjectID `bson:"studentId" json:"studentId"`
	AcademicYear string             `bson:"academicYear" json:"academicYear"`
	Subjects     []Subject          `bson:"subjects" json:"subjects"`
	TotalMarks   float64            `bson:"totalMarks" json:"totalMarks"`
	Percentage   float64            `bson:"percentage" json:"percentage"`
	Grade        string             `bson:"grade" json:"grade"`
	CreatedAt    time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// StudentResult response ของการค้นหาผลการเรียน
type StudentResult struct {
	Student *Student `json:"student"`
	Result  *Result  `json:"result"`
}

// StudentHistory ผลการเรียนทุกปีของนักเรียน เรียงจากปีล่าสุด
type StudentHistory struct {
	Student *Student `json:"student"`
	Results []Result `json:"results"`
}

// UploadSummary สรุปผลการอัปโหลดไฟล์คะแนน
type UploadSummary struct {
	Message      string   `json:"message"`
	BatchID      string   `json:"batchId"`
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}
