package service

import "errors"

// Domain errors shared across services. Handlers map them onto API error codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("not allowed to access this resource")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalidated = errors.New("session invalidated by a newer login")

	ErrNotEligible       = errors.New("not eligible to take this exam")
	ErrAttemptClosed     = errors.New("attempt is closed")
	ErrAttemptNotStarted = errors.New("attempt has not been started")
	ErrNotSubmitted      = errors.New("attempt has not been submitted")
	ErrQuestionNotInExam = errors.New("question does not belong to this exam")
	ErrAttemptsExist     = errors.New("exam already has student attempts")
	ErrStatusTransition  = errors.New("status transition not allowed")
	ErrRoleImmutable     = errors.New("role cannot be changed after creation")

	ErrLastChoice        = errors.New("cannot remove the last choice of a question")
	ErrLastCorrectChoice = errors.New("cannot remove the only correct choice of a question")
	ErrWrittenOnly       = errors.New("only written answers can be graded manually")
	ErrChoicesOnMCQOnly  = errors.New("choices are only allowed on multiple-choice questions")
	ErrQuestionInUse     = errors.New("question is attached to an exam")
	ErrCourseHasExams    = errors.New("course still has exams")
	ErrScoreOutOfRange   = errors.New("score exceeds the question weight")
)
