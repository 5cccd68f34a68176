package reviewers

import (
	"rfp-console/internal/entity"
	"rfp-console/internal/module"
)

// DisplayStatus is the "Assigned to ..." label of table row qIdx.
func DisplayStatus(s State, qIdx int) string {
	questionID, ok := s.Rows[qIdx]
	if !ok {
		return ""
	}
	return s.ByQuestion[questionID].DisplayStatus()
}

// Statuses derives every known row label.
func Statuses(s State) map[int]string {
	out := make(map[int]string, len(s.Rows))
	for qIdx := range s.Rows {
		if label := DisplayStatus(s, qIdx); label != "" {
			out[qIdx] = label
		}
	}
	return out
}

func ReviewersFor(s State, questionID int) []entity.Reviewer {
	return s.ByQuestion[questionID].Reviewers
}

func IsUnassigning(s State, questionID, userID int) bool {
	return s.Unassigning.Has(module.Key(questionID, userID))
}

func Draft(s State, qIdx int) []entity.Reviewer {
	return s.Drafts[qIdx]
}
