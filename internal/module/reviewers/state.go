package reviewers

import (
	"maps"

	"rfp-console/internal/entity"
	"rfp-console/internal/mapper"
	"rfp-console/pkg/store"
)

// State keeps the reviewer list per question as the only record of who is
// assigned. Display labels are derived from it.
type State struct {
	ByQuestion map[int]entity.Assignment `json:"by_question,omitempty"`
	// Rows maps a table row index to the question it showed when last acted on.
	Rows       map[int]int               `json:"rows,omitempty"`
	Drafts     map[int][]entity.Reviewer `json:"drafts,omitempty"`
	List       store.Status              `json:"list"`

	Assigning   store.Flags `json:"assigning,omitempty"`
	Unassigning store.Flags `json:"unassigning,omitempty"`
	ActionError string      `json:"action_error,omitempty"`
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

// listLoaded replaces every assignment of fileID with assignments.
func listLoaded(fileID int, assignments []entity.Assignment) func(State) State {
	return func(s State) State {
		next := make(map[int]entity.Assignment, len(s.ByQuestion)+len(assignments))
		for id, a := range s.ByQuestion {
			if a.FileID != fileID {
				next[id] = a
			}
		}
		for _, a := range assignments {
			next[a.QuestionID] = a
		}
		s.ByQuestion = next
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

func draftSet(qIdx int, users []entity.Reviewer) func(State) State {
	return func(s State) State {
		next := maps.Clone(s.Drafts)
		if next == nil {
			next = make(map[int][]entity.Reviewer)
		}
		if len(users) == 0 {
			delete(next, qIdx)
		} else {
			next[qIdx] = users
		}
		s.Drafts = next
		return s
	}
}

func withRow(s State, qIdx, questionID int) State {
	rows := maps.Clone(s.Rows)
	if rows == nil {
		rows = make(map[int]int)
	}
	rows[qIdx] = questionID
	s.Rows = rows
	return s
}

func withReviewers(s State, questionID, fileID int, reviewers []entity.Reviewer) State {
	next := maps.Clone(s.ByQuestion)
	if next == nil {
		next = make(map[int]entity.Assignment)
	}
	next[questionID] = entity.Assignment{QuestionID: questionID, FileID: fileID, Reviewers: reviewers}
	s.ByQuestion = next
	return s
}

func assignStarted(qIdx, questionID int, key string) func(State) State {
	return func(s State) State {
		s = withRow(s, qIdx, questionID)
		s.Assigning = s.Assigning.Set(key)
		s.ActionError = ""
		return s
	}
}

// assigned merges users into the question's reviewers and clears the row draft.
func assigned(qIdx, questionID, fileID int, users []entity.Reviewer) func(State) State {
	return func(s State) State {
		s = withReviewers(s, questionID, fileID, mapper.MergeReviewers(s.ByQuestion[questionID].Reviewers, users))
		if _, ok := s.Drafts[qIdx]; ok {
			drafts := maps.Clone(s.Drafts)
			delete(drafts, qIdx)
			s.Drafts = drafts
		}
		return s
	}
}

func assignFinished(key, msg string) func(State) State {
	return func(s State) State {
		s.Assigning = s.Assigning.Clear(key)
		if msg != "" {
			s.ActionError = msg
		}
		return s
	}
}

func unassignStarted(qIdx, questionID int, key string) func(State) State {
	return func(s State) State {
		s = withRow(s, qIdx, questionID)
		s.Unassigning = s.Unassigning.Set(key)
		s.ActionError = ""
		return s
	}
}

func unassigned(questionID, userID int, key string) func(State) State {
	return func(s State) State {
		if a, ok := s.ByQuestion[questionID]; ok {
			s = withReviewers(s, questionID, a.FileID, mapper.RemoveReviewer(a.Reviewers, userID))
		}
		s.Unassigning = s.Unassigning.Clear(key)
		return s
	}
}

func unassignFailed(key, msg string) func(State) State {
	return func(s State) State {
		s.Unassigning = s.Unassigning.Clear(key)
		s.ActionError = msg
		return s
	}
}
