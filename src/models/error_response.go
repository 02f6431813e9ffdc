package models

// ErrorResponse โครงสร้างมาตรฐานสำหรับการส่ง Error
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse response ทั่วไปที่มีแค่ข้อความ
type MessageResponse struct {
	Message string `json:"message"`
}
