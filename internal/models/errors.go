package models

import (
	"fmt"
)

// Error categories surfaced to API callers through GraphQL error extensions.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeDuplicate       = "DUPLICATE_ERROR"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodePostNotFound    = "POST_NOT_FOUND"
	CodeCommentNotFound = "COMMENT_NOT_FOUND"
	CodeNotFound        = "NOT_FOUND_ERROR"
	CodeServerError     = "SERVER_ERROR"
)

// AppError is a categorized application error. The Code travels to the client
// in the GraphQL error's extensions; Err keeps the underlying cause for logs.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Extensions makes AppError a gqlerrors.ExtendedError so the category code is
// serialized into the GraphQL error response.
func (e *AppError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{Code: CodeDuplicate, Message: message}
}

// NewNotFoundError is the generic 404 used by lookup queries and updateUser.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewUserNotFound reports a missing referenced owner.
func NewUserNotFound(id uint) *AppError {
	return &AppError{Code: CodeUserNotFound, Message: fmt.Sprintf("User %d does not exist", id)}
}

// NewPostNotFound reports a missing referenced post.
func NewPostNotFound(id uint) *AppError {
	return &AppError{Code: CodePostNotFound, Message: fmt.Sprintf("Post %d does not exist", id)}
}

// NewCommentNotFound reports a missing comment.
func NewCommentNotFound(id uint) *AppError {
	return &AppError{Code: CodeCommentNotFound, Message: fmt.Sprintf("Comment %d does not exist", id)}
}

// NewInternalError wraps an unexpected store or runtime failure.
func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeServerError, Message: "Internal server error", Err: err}
}

// ErrorCode extracts the category of err, or SERVER_ERROR for foreign errors.
func ErrorCode(err error) string {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeServerError
}
