package model

import "fmt"

// ErrorCode ディレクトリ操作のエラーコード
type ErrorCode string

const (
	ErrCodeActivityNotFound  ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadyRegistered ErrorCode = "ALREADY_REGISTERED"
	ErrCodeNotRegistered     ErrorCode = "NOT_REGISTERED"
	ErrCodeActivityFull      ErrorCode = "ACTIVITY_FULL"
)

// DirectoryError 利用者に返すディレクトリ操作のエラー
type DirectoryError struct {
	Code     ErrorCode
	Message  string
	Activity string
	Email    string
}

func (e *DirectoryError) Error() string {
	if e.Activity == "" {
		return fmt.Sprintf("DirectoryError[%s]: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("DirectoryError[%s]: %s (activity=%q)", e.Code, e.Message, e.Activity)
}

// Is エラーコードが一致すれば同一とみなす（errors.Is 用）
func (e *DirectoryError) Is(target error) bool {
	t, ok := target.(*DirectoryError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// errors.Is で比較するためのセンチネル
var (
	ErrActivityNotFound  = &DirectoryError{Code: ErrCodeActivityNotFound, Message: "Activity not found"}
	ErrAlreadyRegistered = &DirectoryError{Code: ErrCodeAlreadyRegistered, Message: "Student is already signed up"}
	ErrNotRegistered     = &DirectoryError{Code: ErrCodeNotRegistered, Message: "Student is not signed up for this activity"}
	ErrActivityFull      = &DirectoryError{Code: ErrCodeActivityFull, Message: "Activity is full"}
)

func NewActivityNotFoundError(activity string) *DirectoryError {
	return &DirectoryError{
		Code:     ErrCodeActivityNotFound,
		Message:  ErrActivityNotFound.Message,
		Activity: activity,
	}
}

func NewAlreadyRegisteredError(activity, email string) *DirectoryError {
	return &DirectoryError{
		Code:     ErrCodeAlreadyRegistered,
		Message:  ErrAlreadyRegistered.Message,
		Activity: activity,
		Email:    email,
	}
}

func NewNotRegisteredError(activity, email string) *DirectoryError {
	return &DirectoryError{
		Code:     ErrCodeNotRegistered,
		Message:  ErrNotRegistered.Message,
		Activity: activity,
		Email:    email,
	}
}

func NewActivityFullError(activity, email string) *DirectoryError {
	return &DirectoryError{
		Code:     ErrCodeActivityFull,
		Message:  ErrActivityFull.Message,
		Activity: activity,
		Email:    email,
	}
}
