package jobdesc

import (
	"net/http"

	"github.com/hirelens/hirelens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("JOBDESC")

var (
	CodeNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job description not found")
	CodeEmptyText   = ErrRegistry.Register("EMPTY_TEXT", errx.TypeValidation, http.StatusBadRequest, "Job description text is empty")
	CodeParseFailed = ErrRegistry.Register("PARSE_FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Job description text produced no usable fields")
	CodeStoreFailed = ErrRegistry.Register("STORE_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to store job description")
)

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}

func ErrEmptyText() *errx.Error {
	return ErrRegistry.New(CodeEmptyText)
}

func ErrParseFailed() *errx.Error {
	return ErrRegistry.New(CodeParseFailed)
}

func ErrStoreFailed() *errx.Error {
	return ErrRegistry.New(CodeStoreFailed)
}
