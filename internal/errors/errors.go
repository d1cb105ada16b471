package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrRecipeNotFound is returned when a recipe is absent or owned by
	// someone else. The two cases are deliberately indistinguishable.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrTagNotFound is returned when a tag is absent or not owned.
	ErrTagNotFound = errors.New("tag not found")
	// ErrIngredientNotFound is returned when an ingredient is absent or not owned.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrUserNotFound is returned when a user record cannot be loaded.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidImage is returned when an upload does not decode as an image.
	ErrInvalidImage = errors.New("uploaded file is not a valid image")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrRecipeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPE_NOT_FOUND")
	case errors.Is(err, ErrTagNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TAG_NOT_FOUND")
	case errors.Is(err, ErrIngredientNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "INGREDIENT_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrInvalidImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_IMAGE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
