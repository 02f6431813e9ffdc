package models

import (
	"errors"
	"fmt"
)

// Validation error codes
const (
	MissingIdentityFields = "MissingIdentityFields"
	InvalidIdentityField  = "InvalidIdentityField"
	InvalidMark           = "InvalidMark"
	NoSubjects            = "NoSubjects"
	InvalidRequest        = "InvalidRequest"
	UnsupportedFile       = "UnsupportedFile"
	DuplicateColumn       = "DuplicateColumn"
)

// ValidationError ข้อมูลที่ส่งเข้ามาไม่ถูกต้อง ระดับ row จะไม่หยุด batch
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError ไม่พบข้อมูล
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found."
}

// AuthError ปัญหาการยืนยันตัวตน Status คือ HTTP status ที่ควรตอบกลับ
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	ErrStudentNotFound = &NotFoundError{Resource: "Student"}
	ErrResultNotFound  = &NotFoundError{Resource: "Result"}
	ErrUserNotFound    = &NotFoundError{Resource: "User"}
	ErrOTPNotFound     = &NotFoundError{Resource: "OTP"}
)

// IsValidation / IsNotFound / AsAuth ใช้แยกประเภท error ตอนแปลงเป็น HTTP status
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func AsAuth(err error) (*AuthError, bool) {
	var ae *AuthError
	ok := errors.As(err, &ae)
	return ae, ok
}
