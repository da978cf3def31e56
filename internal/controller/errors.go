package controller

import (
	"errors"
	"net/http"

	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// handleServiceError 将服务层错误映射为统一的 HTTP 响应
func handleServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrProgramNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrEnrollmentNotFound),
		errors.Is(err, util.ErrCertificateNotFound),
		errors.Is(err, util.ErrUserNotFound):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrAttemptAlreadySubmitted),
		errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrCertificateAlreadyIssued),
		errors.Is(err, util.ErrAttemptNotInProgress):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrChoiceNotFound),
		errors.Is(err, util.ErrInvalidExportType),
		errors.Is(err, util.ErrEmailRegistered):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
