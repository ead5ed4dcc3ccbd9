package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrStudyNotFound       = errors.New("study_not_found")
	ErrSlideNotFound       = errors.New("slide_not_found")
	ErrUnknownSlideType    = errors.New("unknown_slide_type")
	ErrNotARoomSlide       = errors.New("not_a_room_slide")
	ErrNotAMapSlide        = errors.New("not_a_map_slide")
	ErrOverlayNotFound     = errors.New("overlay_not_found")
	ErrPinNotFound         = errors.New("pin_not_found")
	ErrLibraryItemNotFound = errors.New("library_item_not_found")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
