// Package apierror 提供统一的 API 错误类型和错误响应信封
package apierror

import (
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorResponse 错误响应信封，所有非 2xx 响应都使用该结构
type ErrorResponse struct {
	XMLName   xml.Name `xml:"Response"     json:"-"`
	Errors    []Error  `xml:"Errors>Error" json:"errors"`
	RequestID string   `xml:"RequestID"    json:"requestID"`
}

func (er *ErrorResponse) Error() string {
	parts := make([]string, 0, len(er.Errors)+1)
	parts = append(parts, "RequestID: "+er.RequestID)
	for i := range er.Errors {
		parts = append(parts, er.Errors[i].Error())
	}
	return strings.Join(parts, "; ")
}

// Error 单个 API 错误
// HTTPStatus 和 RawError 只在服务端使用，不会序列化到响应中
type Error struct {
	Code       string `xml:"Code"    json:"code"`
	Message    string `xml:"Message" json:"message"`
	HTTPStatus int    `xml:"-"       json:"-"`
	RawError   error  `xml:"-"       json:"-"`
}

func (e *Error) Error() string {
	if e.RawError != nil {
		return fmt.Sprintf("[%s] %s (RawError: %v)", e.Code, e.Message, e.RawError)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Is 按错误码比较，便于 errors.Is(err, apierror.ErrInstanceNotFound)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// Unwrap 返回 RawError
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.RawError
}

var _ interface {
	Error() string
	Is(target error) bool
	Unwrap() error
} = (*Error)(nil)

// Status 返回错误对应的 HTTP 状态码，未设置时为 500
func (e *Error) Status() int {
	if e == nil || e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

// NewError 创建新的错误，HTTP 状态码默认为 500
func NewError(code, message string) *Error {
	return NewErrorWithStatus(code, message, http.StatusInternalServerError)
}

// NewErrorWithStatus 创建新的错误，指定 HTTP 状态码
func NewErrorWithStatus(code, message string, httpStatus int) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// NewErrorWithRaw 创建带原始错误的错误，HTTP 状态码默认为 500
func NewErrorWithRaw(code, message string, rawError error) *Error {
	return NewErrorWithRawAndStatus(code, message, http.StatusInternalServerError, rawError)
}

// NewErrorWithRawAndStatus 创建带原始错误和 HTTP 状态码的错误
func NewErrorWithRawAndStatus(code, message string, httpStatus int, rawError error) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		RawError:   rawError,
	}
}

// WrapError 基于预定义错误生成新错误
// 保留 Code 和 HTTPStatus，使用自定义消息和原始错误
func WrapError(baseErr *Error, message string, rawError error) *Error {
	return &Error{
		Code:       baseErr.Code,
		Message:    message,
		HTTPStatus: baseErr.HTTPStatus,
		RawError:   rawError,
	}
}

// NewErrorResponse 创建错误响应
func NewErrorResponse(requestID string, errs ...*Error) *ErrorResponse {
	resp := &ErrorResponse{
		Errors:    make([]Error, 0, len(errs)),
		RequestID: requestID,
	}
	for _, e := range errs {
		resp.AddError(e)
	}
	return resp
}

// AddError 添加错误到响应
func (er *ErrorResponse) AddError(err *Error) {
	er.Errors = append(er.Errors, *err)
}

// Status 返回第一个错误的 HTTP 状态码
func (er *ErrorResponse) Status() int {
	if len(er.Errors) == 0 {
		return http.StatusInternalServerError
	}
	return er.Errors[0].Status()
}

// ToXML 转换为 XML 格式
func (er *ErrorResponse) ToXML() ([]byte, error) {
	return xml.MarshalIndent(er, "", "    ")
}

// From 将任意错误转换为 *Error
// 错误链中存在 *Error 时直接返回，否则包装为 ErrInternalError，原始错误只保留在 RawError 中
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return WrapError(ErrInternalError, ErrInternalError.Message, err)
}
