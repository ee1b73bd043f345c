package iohttp

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gnames/gedgraph/pkg/errcode"
	"github.com/gnames/gedgraph/pkg/family"
	"github.com/gnames/gn"
)

// APIError is the body of an error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`

	// SourceID points to the existing source for duplicate uploads.
	SourceID string `json:"source_id,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError writes err with the status that matches its code.
func RespondError(c *gin.Context, err error) {
	status, code := classify(err)
	body := APIError{Message: message(err), Code: code}
	if id, ok := family.IsDuplicate(err); ok {
		body.SourceID = id
	}
	c.JSON(status, ErrorEnvelope{Error: body})
}

// RespondOK writes payload as JSON with status 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func classify(err error) (int, string) {
	switch family.Code(err) {
	case errcode.InvalidParameterError:
		return http.StatusBadRequest, "invalid_parameter"
	case errcode.PersonNotFoundError, errcode.SourceNotFoundError:
		return http.StatusNotFound, "not_found"
	case errcode.ImportDuplicateSourceError:
		return http.StatusConflict, "duplicate_source"
	case errcode.ImportFileTooLargeError:
		return http.StatusRequestEntityTooLarge, "file_too_large"
	case errcode.ImportMalformedFileError:
		return http.StatusUnprocessableEntity, "malformed_file"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// message is the plain text of err, without terminal markup.
func message(err error) string {
	if err == nil {
		return "unknown error"
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Err != nil {
		return gnErr.Err.Error()
	}
	return err.Error()
}
