package questions

import (
	"strconv"

	"rfp-console/internal/entity"
)

func resolve(s State, ids []int) []entity.Question {
	out := make([]entity.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := s.ByID[id]; ok {
			out = append(out, q)
		}
	}
	return out
}

func Assigned(s State) []entity.Question    { return resolve(s, s.Assigned) }
func Filtered(s State) []entity.Question    { return resolve(s, s.Filtered) }
func Submitted(s State) []entity.Question   { return resolve(s, s.Submitted) }
func CheckSubmit(s State) []entity.Question { return resolve(s, s.CheckSubmit) }

// Flattened joins a document's sections in order.
func Flattened(s State, rfpID int) []entity.Question {
	var out []entity.Question
	for _, sec := range s.Sections[rfpID] {
		out = append(out, resolve(s, sec.QuestionIDs)...)
	}
	return out
}

func StatusCounts(s State) entity.StatusCounts {
	return s.StatusCounts
}

func CountsFor(s State, rfpID int) entity.StatusCounts {
	return s.Counts[rfpID]
}

func Question(s State, id int) (entity.Question, bool) {
	q, ok := s.ByID[id]
	return q, ok
}

func Draft(s State, id int) string {
	return s.Drafts[id]
}

func IsDeleting(s State, id int) bool {
	return s.Deleting.Has(strconv.Itoa(id))
}
