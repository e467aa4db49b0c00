package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NoteNotFoundError = NewSimple(404, "Note not found")
	EmptyUpdateError  = NewSimple(400, "At least one field must be provided")

	/*
	 * Used for authentications
	 */
	InvalidAuthTokenError    = NewSimple(401, "Invalid or missing authentication token")
	UnauthorizedError        = NewSimple(401, "Unauthorized")
	ExistingEmailError       = NewSimple(409, "Email already exists")
	CredentialsMismatchError = NewSimple(401, "Credentials mismatch")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	structured := NewStructured(http.StatusBadRequest)
	for _, fe := range ve {
		field := jsonFieldPath(fe.Namespace())

		switch fe.Tag() {
		case "required":
			structured.Add(field, "This field is required")
		case "required_without":
			structured.Add(field, "Either this field or "+strings.ToLower(fe.Param())+" is required")
		case "min":
			structured.Add(field, "Value is too short, min: "+fe.Param())
		case "max":
			structured.Add(field, "Value is too long, max: "+fe.Param())
		case "notblank":
			structured.Add(field, "Value cannot be blank")
		case "hexcolor":
			structured.Add(field, "Value must be a hex color, like #111827")
		case "hasupper":
			structured.Add(field, "Value must have at least one uppercase character")
		case "haslower":
			structured.Add(field, "Value must have at least one lowercase character")
		case "hasdigit":
			structured.Add(field, "Value must have at least one number")
		case "hasspecial":
			structured.Add(field, "Value must have at least one special character")
		case "email":
			structured.Add(field, "Value must be a valid email address")

		default:
			structured.Add(field, "Invalid value provided")
		}
	}

	return structured
}

// jsonFieldPath drops the struct name from a validator namespace,
// "CreateNoteRequest.tags[0]" becomes "tags[0]".
func jsonFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
