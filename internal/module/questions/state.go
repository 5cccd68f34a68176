package questions

import (
	"maps"
	"slices"
	"time"

	"rfp-console/internal/entity"
	"rfp-console/internal/mapper"
	"rfp-console/pkg/store"
)

type Section struct {
	Title       string `json:"title"`
	QuestionIDs []int  `json:"question_ids"`
}

// State keeps every question once in ByID. Views and sections hold ids only,
// so removing a question from the table removes it everywhere.
type State struct {
	ByID map[int]entity.Question `json:"by_id"`

	Sections    map[int][]Section `json:"sections,omitempty"`
	Assigned    []int             `json:"assigned"`
	Filtered    []int             `json:"filtered"`
	Submitted   []int             `json:"submitted"`
	CheckSubmit []int             `json:"check_submit"`

	Counts       map[int]entity.StatusCounts `json:"counts,omitempty"`
	StatusCounts entity.StatusCounts         `json:"status_counts"`

	// Drafts holds AI generated answers not yet saved.
	Drafts map[int]string `json:"drafts,omitempty"`

	List            store.Status `json:"list"`
	AssignedStatus  store.Status `json:"assigned_status"`
	FilterStatus    store.Status `json:"filter_status"`
	SubmittedStatus store.Status `json:"submitted_status"`
	CheckStatus     store.Status `json:"check_status"`
	CountsStatus    store.Status `json:"counts_status"`

	Add       store.Status      `json:"add"`
	AddFields map[string]string `json:"add_fields,omitempty"`

	Deleting    store.Flags `json:"deleting,omitempty"`
	Reassigning store.Flags `json:"reassigning,omitempty"`
	Saving      store.Flags `json:"saving,omitempty"`
	Generating  store.Flags `json:"generating,omitempty"`
	ActionError string      `json:"action_error,omitempty"`
}

// view names one id list of State.
type view int

const (
	viewAssigned view = iota
	viewFiltered
	viewSubmitted
	viewCheckSubmit
)

func (s *State) statusOf(v view) *store.Status {
	switch v {
	case viewAssigned:
		return &s.AssignedStatus
	case viewFiltered:
		return &s.FilterStatus
	case viewSubmitted:
		return &s.SubmittedStatus
	default:
		return &s.CheckStatus
	}
}

func (s *State) idsOf(v view) *[]int {
	switch v {
	case viewAssigned:
		return &s.Assigned
	case viewFiltered:
		return &s.Filtered
	case viewSubmitted:
		return &s.Submitted
	default:
		return &s.CheckSubmit
	}
}

func upsert(s State, questions []entity.Question) State {
	next := maps.Clone(s.ByID)
	if next == nil {
		next = make(map[int]entity.Question, len(questions))
	}
	for _, q := range questions {
		next[q.ID] = merged(next[q.ID], q)
	}
	s.ByID = next
	return s
}

// merged keeps fields a sparse view payload leaves empty.
func merged(old, q entity.Question) entity.Question {
	if q.ID != old.ID {
		return q
	}
	if q.Text == "" {
		q.Text = old.Text
	}
	if q.Section == "" {
		q.Section = old.Section
	}
	if q.Answer == "" {
		q.Answer = old.Answer
	}
	if q.Owner == "" {
		q.Owner = old.Owner
	}
	if q.SubmittedAt == nil && q.Status == old.Status {
		q.SubmittedAt = old.SubmittedAt
	}
	return q
}

func idsOf(questions []entity.Question) []int {
	ids := make([]int, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}

func without(ids []int, id int) []int {
	if !slices.Contains(ids, id) {
		return ids
	}
	out := make([]int, 0, len(ids)-1)
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

func listLoaded(rfpID int, questions []entity.Question, sections []mapper.Section) func(State) State {
	return func(s State) State {
		s = upsert(s, questions)
		next := maps.Clone(s.Sections)
		if next == nil {
			next = make(map[int][]Section)
		}
		out := make([]Section, 0, len(sections))
		for _, sec := range sections {
			out = append(out, Section{Title: sec.Title, QuestionIDs: sec.QuestionIDs})
		}
		next[rfpID] = out
		s.Sections = next
		s.List = s.List.Succeed()
		return s
	}
}

func listFailed(msg string) func(State) State {
	return func(s State) State {
		s.List = s.List.Fail(msg)
		return s
	}
}

func viewStarted(v view) func(State) State {
	return func(s State) State {
		st := s.statusOf(v)
		*st = st.Start()
		return s
	}
}

// viewLoaded replaces one view with questions.
func viewLoaded(v view, questions []entity.Question) func(State) State {
	return func(s State) State {
		s = upsert(s, questions)
		*s.idsOf(v) = idsOf(questions)
		st := s.statusOf(v)
		*st = st.Succeed()
		return s
	}
}

func viewFailed(v view, msg string) func(State) State {
	return func(s State) State {
		st := s.statusOf(v)
		*st = st.Fail(msg)
		return s
	}
}

func filterLoaded(rfpID int, questions []entity.Question, counts entity.StatusCounts) func(State) State {
	return func(s State) State {
		s = viewLoaded(viewFiltered, questions)(s)
		next := maps.Clone(s.Counts)
		if next == nil {
			next = make(map[int]entity.StatusCounts)
		}
		next[rfpID] = counts
		s.Counts = next
		return s
	}
}

func countsStarted(s State) State {
	s.CountsStatus = s.CountsStatus.Start()
	return s
}

func countsLoaded(counts entity.StatusCounts) func(State) State {
	return func(s State) State {
		s.StatusCounts = counts
		s.CountsStatus = s.CountsStatus.Succeed()
		return s
	}
}

func countsFailed(msg string) func(State) State {
	return func(s State) State {
		s.CountsStatus = s.CountsStatus.Fail(msg)
		return s
	}
}

func addStarted(s State) State {
	s.Add = s.Add.Start()
	s.AddFields = nil
	return s
}

func addFieldErrors(fields map[string]string) func(State) State {
	return func(s State) State {
		s.Add = store.Status{}
		s.AddFields = fields
		return s
	}
}

func addSucceeded(s State) State {
	s.Add = s.Add.Succeed()
	return s
}

func addFailed(msg string) func(State) State {
	return func(s State) State {
		s.Add = s.Add.Fail(msg)
		return s
	}
}

func flagStarted(flags func(*State) *store.Flags, key string) func(State) State {
	return func(s State) State {
		f := flags(&s)
		*f = f.Set(key)
		s.ActionError = ""
		return s
	}
}

func flagFailed(flags func(*State) *store.Flags, key, msg string) func(State) State {
	return func(s State) State {
		f := flags(&s)
		*f = f.Clear(key)
		s.ActionError = msg
		return s
	}
}

func deleting(s *State) *store.Flags    { return &s.Deleting }
func reassigning(s *State) *store.Flags { return &s.Reassigning }
func saving(s *State) *store.Flags      { return &s.Saving }
func generating(s *State) *store.Flags  { return &s.Generating }

// questionRemoved drops id from the table, every view and every section.
func questionRemoved(id int, key string) func(State) State {
	return func(s State) State {
		if _, ok := s.ByID[id]; ok {
			next := maps.Clone(s.ByID)
			delete(next, id)
			s.ByID = next
		}
		s.Assigned = without(s.Assigned, id)
		s.Filtered = without(s.Filtered, id)
		s.Submitted = without(s.Submitted, id)
		s.CheckSubmit = without(s.CheckSubmit, id)

		if len(s.Sections) > 0 {
			next := make(map[int][]Section, len(s.Sections))
			for rfp, sections := range s.Sections {
				out := make([]Section, 0, len(sections))
				for _, sec := range sections {
					out = append(out, Section{Title: sec.Title, QuestionIDs: without(sec.QuestionIDs, id)})
				}
				next[rfp] = out
			}
			s.Sections = next
		}
		if _, ok := s.Drafts[id]; ok {
			next := maps.Clone(s.Drafts)
			delete(next, id)
			s.Drafts = next
		}
		s.Deleting = s.Deleting.Clear(key)
		return s
	}
}

// patched applies fn to question id if it is known.
func patched(s State, id int, fn func(entity.Question) entity.Question) State {
	q, ok := s.ByID[id]
	if !ok {
		return s
	}
	next := maps.Clone(s.ByID)
	next[id] = fn(q)
	s.ByID = next
	return s
}

func questionReassigned(id int, key string) func(State) State {
	return func(s State) State {
		s = patched(s, id, func(q entity.Question) entity.Question {
			q.Status = entity.QuestionNotSubmitted
			q.SubmittedAt = nil
			return q
		})
		s.Submitted = without(s.Submitted, id)
		s.CheckSubmit = without(s.CheckSubmit, id)
		s.Reassigning = s.Reassigning.Clear(key)
		return s
	}
}

func answerSaved(id int, answer, key string) func(State) State {
	return func(s State) State {
		s = patched(s, id, func(q entity.Question) entity.Question {
			q.Answer = answer
			return q
		})
		s.Saving = s.Saving.Clear(key)
		return s
	}
}

func answerSubmitted(id int, answer, key string, at time.Time) func(State) State {
	return func(s State) State {
		s = patched(s, id, func(q entity.Question) entity.Question {
			q.Answer = answer
			return mapper.SubmittedNow(q, at)
		})
		if _, ok := s.ByID[id]; ok && !slices.Contains(s.Submitted, id) {
			s.Submitted = append(slices.Clone(s.Submitted), id)
		}
		if _, ok := s.Drafts[id]; ok {
			next := maps.Clone(s.Drafts)
			delete(next, id)
			s.Drafts = next
		}
		s.Saving = s.Saving.Clear(key)
		return s
	}
}

func draftGenerated(id int, answer, key string) func(State) State {
	return func(s State) State {
		next := maps.Clone(s.Drafts)
		if next == nil {
			next = make(map[int]string)
		}
		next[id] = answer
		s.Drafts = next
		s.Generating = s.Generating.Clear(key)
		return s
	}
}
