package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
// Codes are module-prefixed ("COMMON_001", "PRD_002") so dashboards and logs
// can aggregate failures per subsystem.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Sentinel codes outside the module namespaces.
const (
	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTimeout            ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeCacheError         ErrorCode = "COMMON_007"
	ErrCodeExternalService    ErrorCode = "COMMON_008"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_009"
	ErrCodeNotImplemented     ErrorCode = "COMMON_010"
	ErrCodeInvalidConfig      ErrorCode = "COMMON_011"
)

// Label analysis error codes.
const (
	ErrCodeEmptyIngredientsText ErrorCode = "LBL_001"
)

// Product lookup error codes.
const (
	ErrCodeProductNotFound     ErrorCode = "PRD_001"
	ErrCodeInvalidBarcode      ErrorCode = "PRD_002"
	ErrCodeUpstreamUnavailable ErrorCode = "PRD_003"
	ErrCodeUpstreamResponse    ErrorCode = "PRD_004"
)

// OCR error codes.
const (
	ErrCodeOCRUnavailable  ErrorCode = "OCR_001"
	ErrCodeImageRequired   ErrorCode = "OCR_002"
	ErrCodeImageUnreadable ErrorCode = "OCR_003"
	ErrCodeOCRFailed       ErrorCode = "OCR_004"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusBadGateway,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeNotImplemented:     http.StatusNotImplemented,
	ErrCodeInvalidConfig:      http.StatusInternalServerError,

	ErrCodeEmptyIngredientsText: http.StatusBadRequest,

	ErrCodeProductNotFound:     http.StatusNotFound,
	ErrCodeInvalidBarcode:      http.StatusBadRequest,
	ErrCodeUpstreamUnavailable: http.StatusBadGateway,
	ErrCodeUpstreamResponse:    http.StatusBadGateway,

	ErrCodeOCRUnavailable:  http.StatusBadGateway,
	ErrCodeImageRequired:   http.StatusBadRequest,
	ErrCodeImageUnreadable: http.StatusBadRequest,
	ErrCodeOCRFailed:       http.StatusBadGateway,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeNotImplemented:     "not implemented",
	ErrCodeInvalidConfig:      "invalid configuration",

	ErrCodeEmptyIngredientsText: "ingredients_text is required",

	ErrCodeProductNotFound:     "product not found",
	ErrCodeInvalidBarcode:      "invalid barcode",
	ErrCodeUpstreamUnavailable: "product database unavailable",
	ErrCodeUpstreamResponse:    "product database returned an invalid response",

	ErrCodeOCRUnavailable:  "OCR engine unavailable",
	ErrCodeImageRequired:   "image is required (form field 'image')",
	ErrCodeImageUnreadable: "image could not be decoded",
	ErrCodeOCRFailed:       "text recognition failed",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode ("COMMON", "PRD").
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
