package verification

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/skillfolio/pkg/apperror"
)

const (
	CodeSkillNotFound             = "SKILL_NOT_FOUND"
	CodeNotSkillOwner             = "NOT_SKILL_OWNER"
	CodeAlreadyVerified           = "ALREADY_VERIFIED"
	CodeSelfReview                = "SELF_REVIEW"
	CodeReviewerNotApprovedMentor = "REVIEWER_NOT_APPROVED_MENTOR"
	CodeReviewerSectorMismatch    = "REVIEWER_SECTOR_MISMATCH"
	CodeDuplicatePendingRequest   = "DUPLICATE_PENDING_REQUEST"
	CodeNotFound                  = "VERIFICATION_REQUEST_NOT_FOUND"
	CodeNotOwner                  = "NOT_REQUEST_OWNER"
	CodeNotPending                = "NOT_PENDING"
	CodeNotReviewer               = "NOT_REVIEWER"
	CodeInvalidDecision           = "INVALID_DECISION"
)

// Kinds for errors.Is comparisons, e.g. errors.Is(err, verification.KindNotPending).
var (
	KindSkillNotFound             = apperror.Kind(CodeSkillNotFound)
	KindNotSkillOwner             = apperror.Kind(CodeNotSkillOwner)
	KindAlreadyVerified           = apperror.Kind(CodeAlreadyVerified)
	KindSelfReview                = apperror.Kind(CodeSelfReview)
	KindReviewerNotApprovedMentor = apperror.Kind(CodeReviewerNotApprovedMentor)
	KindReviewerSectorMismatch    = apperror.Kind(CodeReviewerSectorMismatch)
	KindDuplicatePendingRequest   = apperror.Kind(CodeDuplicatePendingRequest)
	KindNotFound                  = apperror.Kind(CodeNotFound)
	KindNotOwner                  = apperror.Kind(CodeNotOwner)
	KindNotPending                = apperror.Kind(CodeNotPending)
	KindNotReviewer               = apperror.Kind(CodeNotReviewer)
	KindInvalidDecision           = apperror.Kind(CodeInvalidDecision)
)

func ErrSkillNotFound(skillID uuid.UUID) *apperror.AppError {
	return apperror.NewNotFound("skill", skillID.String()).WithCode(CodeSkillNotFound)
}

func ErrNotSkillOwner(skillID uuid.UUID) *apperror.AppError {
	return apperror.NewPermissionDenied(fmt.Sprintf("skill %s belongs to another user", skillID)).
		WithCode(CodeNotSkillOwner)
}

func ErrAlreadyVerified(skillID uuid.UUID) *apperror.AppError {
	e := apperror.NewConflict("skill", "verified", "true").WithCode(CodeAlreadyVerified)
	e.Message = "Skill is already verified"
	e.Details = fmt.Sprintf("skill %s is already verified", skillID)
	return e
}

func ErrSelfReview() *apperror.AppError {
	e := apperror.NewInvalidInput("requester and reviewer are the same user", nil).WithCode(CodeSelfReview)
	e.Message = "You cannot review your own skill"
	return e
}

func ErrReviewerNotApprovedMentor(reviewerID uuid.UUID) *apperror.AppError {
	e := apperror.NewInvalidInput(fmt.Sprintf("user %s is not an approved mentor", reviewerID), nil).
		WithCode(CodeReviewerNotApprovedMentor)
	e.Message = "Reviewer is not an approved mentor"
	return e
}

func ErrReviewerSectorMismatch(sector string) *apperror.AppError {
	e := apperror.NewInvalidInput(fmt.Sprintf("reviewer does not cover sector %s", sector), nil).
		WithCode(CodeReviewerSectorMismatch)
	e.Message = "Reviewer does not mentor this skill's sector"
	return e
}

func ErrDuplicatePendingRequest() *apperror.AppError {
	e := apperror.NewConflict("verification request", "status", string(StatusPending)).
		WithCode(CodeDuplicatePendingRequest)
	e.Message = "A pending request for this skill and reviewer already exists"
	return e
}

func ErrNotFound(requestID uuid.UUID) *apperror.AppError {
	return apperror.NewNotFound("verification request", requestID.String()).WithCode(CodeNotFound)
}

func ErrNotOwner(requestID uuid.UUID) *apperror.AppError {
	return apperror.NewPermissionDenied(fmt.Sprintf("request %s was sent by another user", requestID)).
		WithCode(CodeNotOwner)
}

func ErrNotReviewer(requestID uuid.UUID) *apperror.AppError {
	return apperror.NewPermissionDenied(fmt.Sprintf("request %s is assigned to another reviewer", requestID)).
		WithCode(CodeNotReviewer)
}

func ErrNotPending(requestID uuid.UUID, current Status) *apperror.AppError {
	e := apperror.NewConflict("verification request", "status", string(current)).WithCode(CodeNotPending)
	e.Message = "Request is no longer pending"
	e.Details = fmt.Sprintf("request %s is %s", requestID, current)
	return e
}

func ErrInvalidDecision(value string) *apperror.AppError {
	return apperror.NewInvalidInput(fmt.Sprintf("decision %q must be APPROVED or REJECTED", value), nil).
		WithCode(CodeInvalidDecision)
}

func ErrInvalidStatus(value string) *apperror.AppError {
	return apperror.NewInvalidInput(fmt.Sprintf("unknown status %q", value), nil)
}
