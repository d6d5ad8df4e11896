package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
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

// Is matches on Code so errors produced by WithError still satisfy
// errors.Is against the pre-defined value.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidImage = &AppError{
		Code:       "INVALID_IMAGE",
		Message:    "Invalid image format or corrupted file",
		StatusCode: 422,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    "No face detected. Please try again.",
		StatusCode: 422,
	}

	ErrInvalidGeometry = &AppError{
		Code:       "INVALID_GEOMETRY",
		Message:    "Landmark geometry has a zero face height or forehead width",
		StatusCode: 422,
	}

	ErrNoAnalysis = &AppError{
		Code:       "NO_ANALYSIS",
		Message:    "No face analysis available yet",
		StatusCode: 404,
	}

	ErrHeadModelNotLoaded = &AppError{
		Code:       "HEAD_MODEL_NOT_LOADED",
		Message:    "3D head model not loaded yet",
		StatusCode: 409,
	}

	ErrNoHairModels = &AppError{
		Code:       "NO_HAIR_MODELS",
		Message:    "No hairstyle models configured",
		StatusCode: 409,
	}

	ErrRateLimitExceeded = &AppError{
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "Rate limit exceeded, please try again later",
		StatusCode: 429,
	}
)
