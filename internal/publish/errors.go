package publish

import (
	"errors"
	"net/http"

	"docpress/internal/convert"
	"docpress/internal/wordpress"
)

// Validation errors surfaced verbatim to the caller.
var (
	ErrFileRequired    = errors.New("file is required")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be 200 characters or fewer")
	ErrInvalidStatus   = errors.New("status must be draft or publish")
	ErrUnsupportedType = errors.New("only .docx and .pdf files are supported")
	ErrFileTooLarge    = errors.New("file exceeds the maximum upload size")
)

// MapHTTPStatus maps publish pipeline errors onto HTTP status codes.
// Validation failures are the caller's fault; upstream CMS errors surface
// as bad gateway; everything else is internal.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrFileRequired),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrTitleTooLong),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrUnsupportedType),
		errors.Is(err, convert.ErrInvalidDocument),
		errors.Is(err, convert.ErrNoContent):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, wordpress.ErrUnreachable):
		return http.StatusBadGateway
	default:
		var apiErr *wordpress.APIError
		if errors.As(err, &apiErr) {
			return http.StatusBadGateway
		}
		return http.StatusInternalServerError
	}
}
