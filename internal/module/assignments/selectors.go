package assignments

import "rfp-console/internal/entity"

// Pending returns the documents the reviewer has not completed yet.
func Pending(s State) []entity.AssignmentSummary {
	var out []entity.AssignmentSummary
	for _, sum := range s.Summaries {
		if !sum.Completed {
			out = append(out, sum)
		}
	}
	return out
}

// Progress is the submitted share of a document's questions, 0..100.
func Progress(s State, fileID int) int {
	for _, sum := range s.Summaries {
		if sum.FileID != fileID {
			continue
		}
		if sum.Completed {
			return 100
		}
		if sum.QuestionCount == 0 {
			return 0
		}
		return min(sum.SubmittedCount*100/sum.QuestionCount, 100)
	}
	return 0
}

func Questions(s State, fileID int) []entity.Question {
	ids := s.Details[fileID]
	out := make([]entity.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := s.Questions[id]; ok {
			out = append(out, q)
		}
	}
	return out
}
