package match

import (
	"net/http"

	"github.com/hirelens/hirelens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("MATCH")

var (
	CodeInvalidMatchRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid match request")
	CodeResumeNotFound      = ErrRegistry.Register("RESUME_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found")
	CodeJobDescNotFound     = ErrRegistry.Register("JOBDESC_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job description not found")
	CodeMatchFailed         = ErrRegistry.Register("MATCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Match scoring failed")
)

func ErrInvalidMatchRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidMatchRequest)
}

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrJobDescNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobDescNotFound)
}

func ErrMatchFailed() *errx.Error {
	return ErrRegistry.New(CodeMatchFailed)
}
