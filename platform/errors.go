package platform

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes the platform attaches to structured failures.
const (
	CodeInsufficientBalance = "INSUFFICIENT_BALANCE"
	CodeOversizedExport     = "OVERSIZED"
)

// APIError is any non-2xx platform response that did not map to a more
// specific error type.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform: %s (%d %s)", e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("platform: %s (%d)", e.Message, e.StatusCode)
}

// InsufficientBalanceError is returned when the platform rejects a
// funding call. Required and Available are the platform's numbers and
// always override any client-side estimate.
type InsufficientBalanceError struct {
	Required  float64
	Available float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("platform: insufficient wallet balance: need %.2f, have %.2f", e.Required, e.Available)
}

// OversizedExportError is the 413 rejection of a single-shot export.
// The platform may recommend a workable chunking; zero values mean no
// hint was given.
type OversizedExportError struct {
	TotalQRs             int
	RecommendedChunkSize int
}

func (e *OversizedExportError) Error() string {
	return fmt.Sprintf("platform: export too large (%d QRs, recommended chunk %d)", e.TotalQRs, e.RecommendedChunkSize)
}

// IsSessionExpired reports whether err is the platform telling us the
// vendor session is no longer valid.
func IsSessionExpired(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// IsAccessDenied reports whether err is a 403 from the platform.
func IsAccessDenied(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden
}

// IsHardAbort reports whether err must halt a multi-step sequence
// immediately rather than being absorbed into a failure counter.
func IsHardAbort(err error) bool {
	if IsSessionExpired(err) || IsAccessDenied(err) {
		return true
	}
	var insufficient *InsufficientBalanceError
	return errors.As(err, &insufficient)
}
