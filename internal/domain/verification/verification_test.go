package verification

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/skillfolio/pkg/apperror"
)

func pendingRequest() *Request {
	return &Request{
		ID:          uuid.New(),
		SkillID:     uuid.New(),
		RequesterID: uuid.New(),
		ReviewerID:  uuid.New(),
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestRequest_Cancel(t *testing.T) {
	r := pendingRequest()
	now := time.Now().UTC()

	err := r.Cancel(uuid.New(), now)
	assert.ErrorIs(t, err, KindNotOwner)
	assert.Equal(t, StatusPending, r.Status)

	require.NoError(t, r.Cancel(r.RequesterID, now))
	assert.Equal(t, StatusCancelled, r.Status)
	require.NotNil(t, r.DecidedAt)

	assert.ErrorIs(t, r.Cancel(r.RequesterID, now), KindNotPending)
}

func TestRequest_Decide(t *testing.T) {
	r := pendingRequest()
	note := "looks good"

	assert.ErrorIs(t, r.Decide(uuid.New(), StatusApproved, nil, time.Now()), KindNotReviewer)
	assert.ErrorIs(t, r.Decide(r.ReviewerID, StatusCancelled, nil, time.Now()), KindInvalidDecision)

	require.NoError(t, r.Decide(r.ReviewerID, StatusApproved, &note, time.Now()))
	assert.Equal(t, StatusApproved, r.Status)
	assert.Equal(t, &note, r.DecisionNote)

	err := r.Decide(r.ReviewerID, StatusRejected, nil, time.Now())
	assert.ErrorIs(t, err, KindNotPending)
	assert.Equal(t, StatusApproved, r.Status)
}

func TestParseDecision(t *testing.T) {
	st, err := ParseDecision("approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, st)

	_, err = ParseDecision("PENDING")
	assert.ErrorIs(t, err, KindInvalidDecision)
}

func TestErrorKindsMapToStatus(t *testing.T) {
	id := uuid.New()
	cases := []struct {
		err  error
		want int
	}{
		{ErrSkillNotFound(id), http.StatusNotFound},
		{ErrNotSkillOwner(id), http.StatusForbidden},
		{ErrAlreadyVerified(id), http.StatusConflict},
		{ErrSelfReview(), http.StatusBadRequest},
		{ErrReviewerNotApprovedMentor(id), http.StatusBadRequest},
		{ErrReviewerSectorMismatch("URBAN"), http.StatusBadRequest},
		{ErrDuplicatePendingRequest(), http.StatusConflict},
		{ErrNotFound(id), http.StatusNotFound},
		{ErrNotOwner(id), http.StatusForbidden},
		{ErrNotReviewer(id), http.StatusForbidden},
		{ErrNotPending(id, StatusApproved), http.StatusConflict},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, apperror.ToHTTPStatus(tc.err), tc.err.Error())
	}
}
