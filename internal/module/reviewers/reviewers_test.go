package reviewers

import (
	"testing"
	"time"

	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/testutil"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignReviewerNotifiesAfterAssign(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("POST", "/assign", testutil.OK(`{"message": "assigned"}`)).
		On("POST", "/send-notification", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	users := []entity.Reviewer{{UserID: 9, Username: "rev1"}}
	c.Dispatch(intent.SetDraft{QIdx: 0, Users: users})
	c.Drain()
	require.Equal(t, users, Draft(m.State(), 0))

	c.Dispatch(intent.NewAssignReviewer(0, users, 5, 7))
	c.Drain()

	s := m.State()
	assert.Equal(t, "Assigned to rev1", DisplayStatus(s, 0))
	assert.Equal(t, map[int]string{0: "Assigned to rev1"}, Statuses(s))
	assert.Equal(t, users, ReviewersFor(s, 5))
	assert.Nil(t, Draft(s, 0))
	assert.False(t, s.Assigning.Has("0"))

	calls := h.Backend.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/assign", calls[0].Path)
	assert.Equal(t, "/send-notification", calls[1].Path)

	var assign map[string]any
	calls[0].JSON(t, &assign)
	assert.Equal(t, map[string]any{"ques_ids": []any{float64(5)}, "user_id": []any{float64(9)}, "file_id": float64(7)}, assign)
	var notify map[string][]int
	calls[1].JSON(t, &notify)
	assert.Equal(t, map[string][]int{"user_id": {9}, "ques_ids": {5}}, notify)

	intents := h.Dispatched.Intents()
	require.Len(t, intents, 2)
	assert.Equal(t, intent.FetchAssignedReviewers{FileID: 7}, intents[0])
	assert.Equal(t, intent.FetchFilterData{RfpID: 7}, intents[1])
	assert.Equal(t, []string{"success:Reviewers assigned"}, h.Messages())
}

func TestAssignReviewerFailureSkipsNotification(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("POST", "/assign", testutil.Status(400, `{"detail": "Reviewer already assigned"}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.NewAssignReviewer(2, []entity.Reviewer{{UserID: 9, Username: "rev1"}}, 5, 7))
	c.Drain()

	assert.Empty(t, h.Backend.CallsTo("POST", "/send-notification"))
	assert.Empty(t, DisplayStatus(m.State(), 2))
	assert.Equal(t, "Reviewer already assigned", m.State().ActionError)
	assert.Empty(t, h.Dispatched.Kinds())
}

func TestAssignReviewerNotificationFailure(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("POST", "/assign", testutil.OK(`{}`)).
		On("POST", "/send-notification", testutil.Status(502, ``))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.NewAssignReviewer(0, []entity.Reviewer{{UserID: 9, Username: "rev1"}}, 5, 7))
	c.Drain()

	assert.Equal(t, "Assigned to rev1", DisplayStatus(m.State(), 0))
	assert.NotEmpty(t, m.State().ActionError)
	assert.Equal(t, []workflow.Kind{intent.KindFetchAssignedReviewers, intent.KindFetchFilterData}, h.Dispatched.Kinds())
}

func TestAssignReviewerValidation(t *testing.T) {
	h := testutil.New(t)
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.NewAssignReviewer(0, nil, 5, 7))
	c.Drain()

	assert.Empty(t, h.Backend.Calls())
	assert.Empty(t, h.Messages())
}

func TestFetchAssignedReviewers(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("GET", "/rfps/7/assigned-reviewers", testutil.OK(`[
		{"question_id": 5, "users": [{"user_id": 9, "username": "rev1"}, {"id": 10, "username": "rev2"}]},
		{"ques_id": "6", "user_id": [11], "usernames": ["rev3"]}
	]`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchAssignedReviewers{FileID: 7})
	c.Drain()

	s := m.State()
	assert.Equal(t, []entity.Reviewer{{UserID: 9, Username: "rev1"}, {UserID: 10, Username: "rev2"}}, ReviewersFor(s, 5))
	assert.Equal(t, []entity.Reviewer{{UserID: 11, Username: "rev3"}}, ReviewersFor(s, 6))
	assert.Equal(t, 7, s.ByQuestion[6].FileID)
}

func TestUnassignFlagsAreIndependent(t *testing.T) {
	h := testutil.New(t)
	release := make(chan struct{})
	h.Backend.
		On("GET", "/rfps/7/assigned-reviewers", testutil.OK(`[
			{"question_id": 1, "users": [{"user_id": 1, "username": "a"}, {"user_id": 3, "username": "c"}]},
			{"question_id": 2, "users": [{"user_id": 2, "username": "b"}]}
		]`)).
		On("POST", "/unassign",
			testutil.Reply{Status: 200, Body: `{}`, Wait: release},
			testutil.Status(500, `{"detail": "unassign failed"}`),
		)
	m := New(h.Deps)
	c := h.Start(t, m)
	c.Dispatch(intent.FetchAssignedReviewers{FileID: 7})
	c.Drain()

	c.Dispatch(intent.NewUnassignReviewer(0, 1, 1, 7))
	require.Eventually(t, func() bool { return len(h.Backend.CallsTo("POST", "/unassign")) == 1 }, time.Second, 5*time.Millisecond)
	require.True(t, IsUnassigning(m.State(), 1, 1))

	c.Dispatch(intent.NewUnassignReviewer(1, 2, 2, 7))
	require.Eventually(t, func() bool { return m.State().ActionError == "unassign failed" }, time.Second, 5*time.Millisecond)

	s := m.State()
	assert.True(t, IsUnassigning(s, 1, 1))
	assert.False(t, IsUnassigning(s, 2, 2))
	assert.Equal(t, []entity.Reviewer{{UserID: 2, Username: "b"}}, ReviewersFor(s, 2))

	close(release)
	c.Drain()

	s = m.State()
	assert.False(t, IsUnassigning(s, 1, 1))
	assert.Equal(t, []entity.Reviewer{{UserID: 3, Username: "c"}}, ReviewersFor(s, 1))
	assert.Equal(t, "Assigned to c", DisplayStatus(s, 0))
	assert.Equal(t, "Assigned to b", DisplayStatus(s, 1))

	var body map[string]int
	h.Backend.CallsTo("POST", "/unassign")[0].JSON(t, &body)
	assert.Equal(t, map[string]int{"ques_id": 1, "user_id": 1}, body)
}
