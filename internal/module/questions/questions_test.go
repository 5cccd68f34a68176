package questions

import (
	"testing"
	"time"

	"rfp-console/internal/apperror"
	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/testutil"
	"rfp-console/pkg/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T, h *testutil.Harness, m *Module, c *workflow.Coordinator, rfpID int) {
	t.Helper()
	c.Dispatch(intent.FetchQuestions{RfpID: rfpID})
	c.Dispatch(intent.FetchAssignedQuestions{RfpID: rfpID})
	c.Dispatch(intent.FetchFilterData{RfpID: rfpID})
	c.Dispatch(intent.FetchSubmittedQuestions{RfpID: rfpID})
	c.Dispatch(intent.CheckSubmit{RfpID: rfpID})
	c.Drain()
	require.Empty(t, h.Messages())
}

func scriptQuestions(h *testutil.Harness) {
	h.Backend.
		On("GET", "/rfps/7/questions", testutil.OK(`{"sections": [
			{"section": "Scope", "questions": [{"id": 41, "question": "Budget?"}, {"id": 42, "question": "Timeline?"}]},
			{"title": "Legal", "questions": [{"id": 43, "question": "Liability?", "status": "submitted"}]}
		]}`)).
		On("GET", "/rfps/7/questions/assigned", testutil.OK(`[{"id": 42, "question": "Timeline?"}, {"id": 41}]`)).
		On("GET", "/rfps/7/questions/filter", testutil.OK(`{"questions": [{"id": 42}, {"id": 43, "status": "submitted"}], "counts": {"submitted": 1, "not_submitted": 1, "process": 0}}`)).
		On("GET", "/rfps/7/questions/submitted", testutil.OK(`{"data": [{"id": 42, "status": "submitted"}]}`)).
		On("GET", "/rfps/7/check-submit", testutil.OK(`[{"id": 42}]`))
}

func TestFetchQuestionViews(t *testing.T) {
	h := testutil.New(t)
	scriptQuestions(h)
	m := New(h.Deps)
	c := h.Start(t, m)

	loaded(t, h, m, c, 7)

	s := m.State()
	require.Len(t, s.Sections[7], 2)
	assert.Equal(t, Section{Title: "Scope", QuestionIDs: []int{41, 42}}, s.Sections[7][0])
	assert.Equal(t, "Legal", s.Sections[7][1].Title)
	assert.Equal(t, []int{41, 42, 43}, questionIDs(Flattened(s, 7)))
	assert.Equal(t, []int{42, 41}, questionIDs(Assigned(s)))
	assert.Equal(t, []int{42, 43}, questionIDs(Filtered(s)))
	assert.Equal(t, []int{42}, questionIDs(Submitted(s)))
	assert.Equal(t, []int{42}, questionIDs(CheckSubmit(s)))
	assert.Equal(t, entity.NewStatusCounts(1, 1, 0), CountsFor(s, 7))

	q, ok := Question(s, 43)
	require.True(t, ok)
	assert.Equal(t, 7, q.RfpID)
	assert.Equal(t, "Legal", q.Section)
}

func TestDeleteQuestionRemovesEverywhere(t *testing.T) {
	h := testutil.New(t)
	scriptQuestions(h)
	h.Backend.On("DELETE", "/questions/42", testutil.OK(`{"message": "deleted"}`))
	m := New(h.Deps)
	c := h.Start(t, m)
	loaded(t, h, m, c, 7)

	c.Dispatch(intent.NewDeleteQuestion(42, 7))
	c.Drain()

	s := m.State()
	_, ok := Question(s, 42)
	assert.False(t, ok)
	for name, list := range map[string][]entity.Question{
		"assigned":     Assigned(s),
		"filtered":     Filtered(s),
		"submitted":    Submitted(s),
		"check_submit": CheckSubmit(s),
		"sections":     Flattened(s, 7),
	} {
		assert.NotContains(t, questionIDs(list), 42, name)
	}
	assert.NotContains(t, s.Assigned, 42)
	assert.NotContains(t, s.Submitted, 42)
	assert.False(t, IsDeleting(s, 42))

	intents := h.Dispatched.Intents()
	require.Len(t, intents, 2)
	assert.Equal(t, intent.FetchAssignedReviewers{FileID: 7}, intents[0])
	assert.Equal(t, intent.FetchFilterData{RfpID: 7}, intents[1])
	assert.Equal(t, []string{"success:Question deleted"}, h.Messages())
}

func TestDeleteQuestionFailureKeepsQuestion(t *testing.T) {
	h := testutil.New(t)
	scriptQuestions(h)
	h.Backend.On("DELETE", "/questions/41", testutil.Status(404, `{"detail": "Question not found"}`))
	m := New(h.Deps)
	c := h.Start(t, m)
	loaded(t, h, m, c, 7)

	c.Dispatch(intent.NewDeleteQuestion(41, 7))
	c.Drain()

	s := m.State()
	_, ok := Question(s, 41)
	assert.True(t, ok)
	assert.Equal(t, "Question not found", s.ActionError)
	assert.False(t, IsDeleting(s, 41))
	assert.Empty(t, h.Dispatched.Intents())
}

func TestFetchFilterQuestionsIsSequential(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/questions/filter?status=submitted", testutil.OK(`[{"id": 1}, {"id": 2}]`)).
		On("GET", "/questions/filter?status=not_submitted", testutil.OK(`[{"id": 3}]`)).
		On("GET", "/questions/filter?status=process", testutil.OK(`{"count": 3}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchFilterQuestions{})
	c.Drain()

	assert.Equal(t, entity.StatusCounts{Submitted: 2, NotSubmitted: 1, Process: 3, Total: 6}, StatusCounts(m.State()))
	calls := h.Backend.CallsTo("GET", "/questions/filter")
	require.Len(t, calls, 3)
	assert.Equal(t, "status=submitted", calls[0].Query)
	assert.Equal(t, "status=not_submitted", calls[1].Query)
	assert.Equal(t, "status=process", calls[2].Query)
}

func TestFetchFilterQuestionsStopsOnError(t *testing.T) {
	h := testutil.New(t)
	h.Backend.
		On("GET", "/questions/filter?status=submitted", testutil.OK(`[]`)).
		On("GET", "/questions/filter?status=not_submitted", testutil.Status(500, `{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchFilterQuestions{})
	c.Drain()

	assert.Equal(t, apperror.MsgServerError, m.State().CountsStatus.Error)
	assert.Len(t, h.Backend.CallsTo("GET", "/questions/filter"), 2)
}

func TestAddQuestion(t *testing.T) {
	tests := []struct {
		name      string
		reply     testutil.Reply
		wantToast []string
		wantError string
		wantKinds []workflow.Kind
	}{
		{
			name:      "created",
			reply:     testutil.OK(`{"id": 50, "question": "New?"}`),
			wantToast: []string{"success:Question added"},
			wantKinds: []workflow.Kind{intent.KindFetchQuestions, intent.KindFetchFilterData},
		},
		{
			name:      "duplicate",
			reply:     testutil.Status(apperror.StatusDuplicate, `{"message": {"message": "Question already exists"}}`),
			wantToast: []string{"warning:Question already exists"},
			wantError: "Question already exists",
		},
		{
			name:      "server detail",
			reply:     testutil.Status(400, `{"detail": "Section is closed"}`),
			wantToast: []string{"error:Section is closed"},
			wantError: "Section is closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testutil.New(t)
			h.Backend.On("POST", "/questions", tt.reply)
			m := New(h.Deps)
			c := h.Start(t, m)

			c.Dispatch(intent.NewAddQuestion(7, "New?", "Scope"))
			c.Drain()

			assert.Equal(t, tt.wantToast, h.Messages())
			assert.Equal(t, tt.wantError, m.State().Add.Error)
			assert.Equal(t, tt.wantKinds, h.Dispatched.Kinds())

			calls := h.Backend.CallsTo("POST", "/questions")
			require.Len(t, calls, 1)
			var body map[string]any
			calls[0].JSON(t, &body)
			assert.Equal(t, map[string]any{"rfp_id": float64(7), "question": "New?", "section": "Scope"}, body)
		})
	}
}

func TestAddQuestionValidation(t *testing.T) {
	h := testutil.New(t)
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.NewAddQuestion(7, "", ""))
	c.Drain()

	assert.Empty(t, h.Backend.Calls())
	assert.Empty(t, h.Messages())
	assert.Contains(t, m.State().AddFields, "question")
}

func TestReassignClearsSubmission(t *testing.T) {
	h := testutil.New(t)
	scriptQuestions(h)
	h.Backend.On("PUT", "/questions/42/reassign", testutil.OK(`{}`))
	m := New(h.Deps)
	c := h.Start(t, m)
	loaded(t, h, m, c, 7)

	c.Dispatch(intent.ReassignQuestion{QuestionID: 42, RfpID: 7, UserID: 3})
	c.Drain()

	s := m.State()
	q, _ := Question(s, 42)
	assert.Equal(t, entity.QuestionNotSubmitted, q.Status)
	assert.Nil(t, q.SubmittedAt)
	assert.Empty(t, Submitted(s))
	assert.Empty(t, CheckSubmit(s))
	assert.Equal(t, []workflow.Kind{intent.KindFetchFilterData}, h.Dispatched.Kinds())

	var body map[string]int
	h.Backend.CallsTo("PUT", "/questions/42/reassign")[0].JSON(t, &body)
	assert.Equal(t, map[string]int{"user_id": 3}, body)
}

func TestEditAnswerRequiresAdmin(t *testing.T) {
	tests := []struct {
		name      string
		role      entity.Role
		wantCalls int
		wantToast []string
	}{
		{name: "admin", role: entity.RoleAdmin, wantCalls: 1, wantToast: []string{"success:Answer saved"}},
		{name: "reviewer", role: entity.RoleReviewer, wantToast: []string{"error:Only admins can edit answers"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testutil.New(t)
			scriptQuestions(h)
			h.Backend.On("PUT", "/questions/41/answer", testutil.OK(`{}`))
			h.SignIn(t, entity.Session{Email: "a@b.co", Token: "tok", Role: tt.role, UserID: 1})
			m := New(h.Deps)
			c := h.Start(t, m)
			c.Dispatch(intent.FetchQuestions{RfpID: 7})
			c.Drain()

			c.Dispatch(intent.EditAnswer{QuestionID: 41, Answer: "Ten thousand"})
			c.Drain()

			assert.Len(t, h.Backend.CallsTo("PUT", "/questions/41/answer"), tt.wantCalls)
			assert.Equal(t, tt.wantToast, h.Messages())
			q, _ := Question(m.State(), 41)
			if tt.wantCalls > 0 {
				assert.Equal(t, "Ten thousand", q.Answer)
			} else {
				assert.Empty(t, q.Answer)
			}
		})
	}
}

func TestSubmitAnswer(t *testing.T) {
	h := testutil.New(t)
	scriptQuestions(h)
	h.Backend.On("POST", "/questions/41/submit", testutil.OK(`{}`))
	m := New(h.Deps)
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return at }
	c := h.Start(t, m)
	loaded(t, h, m, c, 7)

	c.Dispatch(intent.SubmitAnswer{QuestionID: 41, RfpID: 7, Answer: "Yes"})
	c.Drain()

	s := m.State()
	q, _ := Question(s, 41)
	assert.Equal(t, entity.QuestionSubmitted, q.Status)
	assert.Equal(t, "Yes", q.Answer)
	require.NotNil(t, q.SubmittedAt)
	assert.Equal(t, at, *q.SubmittedAt)
	assert.Equal(t, []int{42, 41}, s.Submitted)
}

func TestGenerateAnswer(t *testing.T) {
	h := testutil.New(t)
	h.Backend.On("POST", "/questions/9/ai-answer", testutil.OK(`{"generated_answer": "Probably"}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.GenerateAnswer{QuestionID: 9})
	c.Drain()

	assert.Equal(t, "Probably", Draft(m.State(), 9))
	assert.False(t, m.State().Generating.Has("9"))
}

func TestUnauthorizedClearsSession(t *testing.T) {
	h := testutil.New(t)
	h.SignIn(t, entity.Session{Email: "a@b.co", Token: "tok", Role: entity.RoleAdmin})
	h.Backend.On("GET", "/rfps/7/questions", testutil.Status(401, `{}`))
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchQuestions{RfpID: 7})
	c.Drain()

	s, err := h.Sessions.Get(t.Context())
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Equal(t, apperror.MsgInvalidCredentials, m.State().List.Error)
}

func TestDecodeSectionsFromFlatList(t *testing.T) {
	questions, sections, err := decodeSections([]byte(`[{"id": 1, "section": "A"}, {"id": 2, "section": "B"}, {"id": 3, "section": "A"}]`), 4)
	require.NoError(t, err)
	assert.Len(t, questions, 3)
	require.Len(t, sections, 2)
	assert.Equal(t, []int{1, 3}, sections[0].QuestionIDs)
}

func TestQuestionRemovedIsIdempotent(t *testing.T) {
	s := State{
		ByID:     map[int]entity.Question{1: {ID: 1}, 2: {ID: 2}},
		Assigned: []int{1, 2},
		Filtered: []int{2},
	}
	once := questionRemoved(1, "1")(s)
	twice := questionRemoved(1, "1")(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, []int{2}, twice.Assigned)
	assert.Len(t, s.ByID, 2)
}

func questionIDs(questions []entity.Question) []int {
	out := []int{}
	for _, q := range questions {
		out = append(out, q.ID)
	}
	return out
}

func TestUpsertKeepsKnownFields(t *testing.T) {
	s := upsert(State{}, []entity.Question{{ID: 1, Text: "Budget?", Section: "Scope"}})
	s = upsert(s, []entity.Question{{ID: 1, Status: entity.QuestionProcess}})

	q := s.ByID[1]
	assert.Equal(t, "Budget?", q.Text)
	assert.Equal(t, "Scope", q.Section)
	assert.Equal(t, entity.QuestionProcess, q.Status)
}

func TestInvalidFetchLeavesListSettled(t *testing.T) {
	h := testutil.New(t)
	release := make(chan struct{})
	h.Backend.On("GET", "/rfps/7/questions", testutil.Reply{
		Status: 200,
		Body:   `{"sections": [{"section": "Scope", "questions": [{"id": 41, "question": "Budget?"}]}]}`,
		Wait:   release,
	})
	m := New(h.Deps)
	c := h.Start(t, m)

	c.Dispatch(intent.FetchQuestions{RfpID: 7})
	require.Eventually(t, func() bool { return m.State().List.Loading }, time.Second, 5*time.Millisecond)

	invalid := make(chan error, 1)
	c.Dispatch(intent.FetchQuestions{RfpID: 0, Callbacks: workflow.Callbacks{OnError: func(err error) { invalid <- err }}})
	select {
	case err := <-invalid:
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	case <-time.After(time.Second):
		t.Fatal("expected the invalid fetch to fail")
	}

	close(release)
	c.Drain()

	s := m.State()
	assert.False(t, s.List.Loading)
	assert.True(t, s.List.Success)
	assert.Equal(t, []int{41}, questionIDs(Flattened(s, 7)))
}
