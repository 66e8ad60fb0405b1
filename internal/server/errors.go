package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gantt-tools/gantt-go/internal/dataset"
	"github.com/gantt-tools/gantt-go/internal/ingest"
	"github.com/gantt-tools/gantt-go/internal/session"
)

// Error codes
const (
	ErrInternalCode          = "INTERNAL_ERROR"
	ErrBadRequestCode        = "BAD_REQUEST"
	ErrValidationCode        = "VALIDATION_ERROR"
	ErrPayloadTooLargeCode   = "PAYLOAD_TOO_LARGE"
	ErrParseCode             = "PARSE_ERROR"
	ErrDelimiterCode         = "DELIMITER_UNDETECTED"
	ErrIncompleteMappingCode = "INCOMPLETE_MAPPING"
	ErrUnknownColumnCode     = "UNKNOWN_COLUMN"
	ErrMissingColumnCode     = "MISSING_COLUMN"
	ErrInvalidRangeCode      = "INVALID_RANGE"
	ErrInvalidDateCode       = "INVALID_DATE"
	ErrInvalidCompletionCode = "INVALID_COMPLETION"
	ErrMissingFieldCode      = "MISSING_FIELD"
	ErrEmptyDatasetCode      = "EMPTY_DATASET"
	ErrNothingImportedCode   = "NOTHING_IMPORTED"
)

// Error is a failed request as reported to the client.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// badRequest wraps err as a 400 with a generic code.
func badRequest(message string, err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: ErrBadRequestCode, Message: message, Err: err}
}

// InvalidDateError reports a form date that could not be parsed.
type InvalidDateError struct {
	Field string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// classify maps a domain error onto a status code and error code. Unknown
// errors become 500s.
func classify(err error) *Error {
	var (
		serverErr     *Error
		delimErr      *ingest.DelimiterDetectionError
		parseErr      *ingest.ParseError
		incompleteErr *dataset.IncompleteMappingError
		unknownErr    *dataset.UnknownColumnError
		missingColErr *dataset.MissingColumnError
		rangeErr      *dataset.InvalidRangeError
		fieldErr      *dataset.MissingFieldError
		dateErr       *InvalidDateError
		tooLarge      *http.MaxBytesError
		validation    validator.ValidationErrors
	)

	with := func(status int, code string) *Error {
		return &Error{Status: status, Code: code, Message: err.Error(), Err: err}
	}

	switch {
	case errors.As(err, &serverErr):
		return serverErr
	case errors.As(err, &tooLarge):
		return &Error{
			Status:  http.StatusRequestEntityTooLarge,
			Code:    ErrPayloadTooLargeCode,
			Message: fmt.Sprintf("upload exceeds the %d byte limit", tooLarge.Limit),
			Err:     err,
		}
	case errors.As(err, &validation):
		return &Error{
			Status:  http.StatusBadRequest,
			Code:    ErrValidationCode,
			Message: validationMessage(validation),
			Err:     err,
		}
	case errors.As(err, &delimErr):
		return with(http.StatusBadRequest, ErrDelimiterCode)
	case errors.As(err, &parseErr), errors.Is(err, ingest.ErrNoColumns):
		return with(http.StatusBadRequest, ErrParseCode)
	case errors.As(err, &incompleteErr):
		return with(http.StatusBadRequest, ErrIncompleteMappingCode)
	case errors.As(err, &unknownErr):
		return with(http.StatusBadRequest, ErrUnknownColumnCode)
	case errors.As(err, &missingColErr):
		return with(http.StatusBadRequest, ErrMissingColumnCode)
	case errors.As(err, &rangeErr):
		return with(http.StatusBadRequest, ErrInvalidRangeCode)
	case errors.As(err, &fieldErr):
		return with(http.StatusBadRequest, ErrMissingFieldCode)
	case errors.As(err, &dateErr):
		return with(http.StatusBadRequest, ErrInvalidDateCode)
	case errors.Is(err, dataset.ErrInvalidCompletion):
		return with(http.StatusBadRequest, ErrInvalidCompletionCode)
	case errors.Is(err, session.ErrEmptyDataset):
		return with(http.StatusConflict, ErrEmptyDatasetCode)
	case errors.Is(err, session.ErrNothingImported):
		return with(http.StatusConflict, ErrNothingImportedCode)
	default:
		return &Error{
			Status:  http.StatusInternalServerError,
			Code:    ErrInternalCode,
			Message: "internal server error",
			Err:     err,
		}
	}
}

func validationMessage(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fieldName(fe)))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fieldName(fe), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fieldName(fe), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func fieldName(fe validator.FieldError) string {
	return strings.ToLower(fe.Field())
}
