package assignments

import (
	"maps"

	"rfp-console/internal/entity"
	"rfp-console/pkg/store"
)

type State struct {
	Summaries []entity.AssignmentSummary `json:"summaries"`
	List      store.Status               `json:"list"`

	// Questions is every question seen in a detail fetch; Details lists the
	// question ids assigned per document.
	Questions map[int]entity.Question `json:"questions,omitempty"`
	Details   map[int][]int           `json:"details,omitempty"`
	Detail    store.Status            `json:"detail"`

	Submitting  store.Flags `json:"submitting,omitempty"`
	ActionError string      `json:"action_error,omitempty"`
}

func listStarted(s State) State {
	s.List = s.List.Start()
	return s
}

func listLoaded(summaries []entity.AssignmentSummary) func(State) State {
	return func(s State) State {
		s.Summaries = summaries
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

func detailStarted(s State) State {
	s.Detail = s.Detail.Start()
	return s
}

func detailLoaded(fileID int, questions []entity.Question) func(State) State {
	return func(s State) State {
		table := maps.Clone(s.Questions)
		if table == nil {
			table = make(map[int]entity.Question, len(questions))
		}
		ids := make([]int, 0, len(questions))
		for _, q := range questions {
			table[q.ID] = q
			ids = append(ids, q.ID)
		}
		details := maps.Clone(s.Details)
		if details == nil {
			details = make(map[int][]int)
		}
		details[fileID] = ids

		s.Questions = table
		s.Details = details
		s.Detail = s.Detail.Succeed()
		return s
	}
}

func detailFailed(msg string) func(State) State {
	return func(s State) State {
		s.Detail = s.Detail.Fail(msg)
		return s
	}
}

func submitStarted(key string) func(State) State {
	return func(s State) State {
		s.Submitting = s.Submitting.Set(key)
		s.ActionError = ""
		return s
	}
}

func submitted(fileID int, key string) func(State) State {
	return func(s State) State {
		summaries := make([]entity.AssignmentSummary, len(s.Summaries))
		for i, sum := range s.Summaries {
			if sum.FileID == fileID {
				sum.Completed = true
				sum.SubmittedCount = sum.QuestionCount
			}
			summaries[i] = sum
		}
		s.Summaries = summaries
		s.Submitting = s.Submitting.Clear(key)
		return s
	}
}

func submitFailed(key, msg string) func(State) State {
	return func(s State) State {
		s.Submitting = s.Submitting.Clear(key)
		s.ActionError = msg
		return s
	}
}
