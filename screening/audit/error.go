package audit

import (
	"net/http"

	"github.com/hirelens/hirelens/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUDIT")

var (
	CodeInvalidAuditInput = ErrRegistry.Register("INVALID_INPUT", errx.TypeValidation, http.StatusBadRequest, "Invalid audit input")
	CodeAuditFailed       = ErrRegistry.Register("AUDIT_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Audit calculation failed")
)

func ErrInvalidAuditInput() *errx.Error {
	return ErrRegistry.New(CodeInvalidAuditInput)
}

func ErrAuditFailed() *errx.Error {
	return ErrRegistry.New(CodeAuditFailed)
}
