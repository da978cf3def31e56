package util

import "errors"

var (
	ErrUserNotFound             = errors.New("用户不存在")
	ErrEmailRegistered          = errors.New("该邮箱已被注册")
	ErrPermissionDenied         = errors.New("permission denied")
	ErrExamNotFound             = errors.New("exam not found or not published")
	ErrAttemptNotFound          = errors.New("attempt not found")
	ErrAttemptNotInProgress     = errors.New("attempt is not in progress")
	ErrAttemptAlreadySubmitted  = errors.New("exam already completed")
	ErrQuestionNotFound         = errors.New("question not found in exam")
	ErrChoiceNotFound           = errors.New("choice not found for question")
	ErrCourseNotFound           = errors.New("course not found")
	ErrProgramNotFound          = errors.New("program not found")
	ErrSessionNotFound          = errors.New("session not found")
	ErrAlreadyEnrolled          = errors.New("student already enrolled")
	ErrEnrollmentNotFound       = errors.New("enrollment not found")
	ErrCertificateNotFound      = errors.New("certificate not found")
	ErrCertificateAlreadyIssued = errors.New("certificate already issued for this student")
	ErrInvalidExportType        = errors.New("unknown export type")
)
