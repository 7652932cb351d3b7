package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrSessionInvalidated ErrCode = "SESSION_INVALIDATED"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrStudentOnly     ErrCode = "STUDENT_ACCESS_ONLY"
	ErrDoctorOnly      ErrCode = "DOCTOR_ACCESS_ONLY"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"
	ErrInvalidID  ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Business rules ────────────────────────────────────────────────
	ErrNotEligible       ErrCode = "NOT_ELIGIBLE"
	ErrAttemptClosed     ErrCode = "ATTEMPT_CLOSED"
	ErrAttemptNotStarted ErrCode = "ATTEMPT_NOT_STARTED"
	ErrNotSubmitted      ErrCode = "NOT_SUBMITTED"
	ErrQuestionNotInExam ErrCode = "QUESTION_NOT_IN_EXAM"
	ErrAttemptsExist     ErrCode = "ATTEMPTS_EXIST"
	ErrLastChoice        ErrCode = "LAST_CHOICE"
	ErrLastCorrectChoice ErrCode = "LAST_CORRECT_CHOICE"
	ErrWrittenOnly       ErrCode = "WRITTEN_ONLY"
	ErrChoicesOnMCQOnly  ErrCode = "CHOICES_ON_MCQ_ONLY"
	ErrQuestionInUse     ErrCode = "QUESTION_IN_USE"
	ErrCourseHasExams    ErrCode = "COURSE_HAS_EXAMS"
	ErrRoleImmutable     ErrCode = "ROLE_IMMUTABLE"
	ErrStatusTransition  ErrCode = "INVALID_STATUS_TRANSITION"
	ErrScoreOutOfRange   ErrCode = "SCORE_OUT_OF_RANGE"

	// ─── Rate limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrSessionInvalidated:
		return "Your session has ended. Please log in again."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrStudentOnly:
		return "This resource is restricted to students."
	case ErrDoctorOnly:
		return "This resource is restricted to instructors."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Business rules ────────────────────────────────────────────────
	case ErrNotEligible:
		return "This exam is not currently available to you."
	case ErrAttemptClosed:
		return "This exam has already been submitted."
	case ErrAttemptNotStarted:
		return "You have not started this exam."
	case ErrNotSubmitted:
		return "This exam has not been submitted yet."
	case ErrQuestionNotInExam:
		return "The question does not belong to this exam."
	case ErrAttemptsExist:
		return "The exam has recorded attempts and can no longer be modified."
	case ErrLastChoice:
		return "Cannot delete the only choice of a question."
	case ErrLastCorrectChoice:
		return "Cannot delete the only correct choice of a question."
	case ErrWrittenOnly:
		return "Only written answers can be graded manually."
	case ErrChoicesOnMCQOnly:
		return "Choices can only be added to multiple-choice questions."
	case ErrQuestionInUse:
		return "The question is used by one or more exams and cannot be deleted."
	case ErrCourseHasExams:
		return "The course has exams and cannot be deleted."
	case ErrRoleImmutable:
		return "The user's role cannot be changed once a profile exists."
	case ErrStatusTransition:
		return "The exam status cannot change in that direction."
	case ErrScoreOutOfRange:
		return "The score must be between zero and the question weight."

	// ─── Rate limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
