package mapper

import (
	"strings"
	"time"

	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
)

func ToQuestionStatus(raw string) entity.QuestionStatus {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "_")
	switch entity.QuestionStatus(normalized) {
	case entity.QuestionSubmitted:
		return entity.QuestionSubmitted
	case entity.QuestionProcess:
		return entity.QuestionProcess
	default:
		return entity.QuestionNotSubmitted
	}
}

// ToQuestion maps one question; rfpID is used when the payload does not carry it.
func ToQuestion(q dto.QuestionResponse, rfpID int) entity.Question {
	question := entity.Question{
		ID:      dto.FirstInt(q.ID, q.QuestionID, q.QuesID),
		RfpID:   dto.FirstInt(q.RfpID, q.FileID),
		Section: q.Section,
		Text:    dto.FirstString(q.Question, q.Text),
		Answer:  q.Answer,
		Status:  ToQuestionStatus(q.Status),
		Owner:   dto.FirstString(q.OwnerUsername, q.Username),
	}
	if question.RfpID == 0 {
		question.RfpID = rfpID
	}
	if ts := dto.FirstTime(q.SubmittedAt); !ts.IsZero() {
		submitted := ts
		question.SubmittedAt = &submitted
	}
	return question
}

func ToQuestions(list []dto.QuestionResponse, rfpID int) []entity.Question {
	questions := make([]entity.Question, 0, len(list))
	for _, q := range list {
		questions = append(questions, ToQuestion(q, rfpID))
	}
	return questions
}

// Section is one named group of question ids, in backend order.
type Section struct {
	Title       string
	QuestionIDs []int
}

// ToSections flattens a sectioned questions payload. Questions outside any
// section land in a single untitled section at the end.
func ToSections(resp dto.QuestionsResponse, rfpID int) ([]entity.Question, []Section) {
	var questions []entity.Question
	var sections []Section

	for _, s := range resp.Sections {
		title := dto.FirstString(s.Section, s.Title)
		sec := Section{Title: title, QuestionIDs: make([]int, 0, len(s.Questions))}
		for _, raw := range s.Questions {
			q := ToQuestion(raw, rfpID)
			if q.Section == "" {
				q.Section = title
			}
			questions = append(questions, q)
			sec.QuestionIDs = append(sec.QuestionIDs, q.ID)
		}
		sections = append(sections, sec)
	}

	if len(resp.Questions) > 0 {
		loose := Section{QuestionIDs: make([]int, 0, len(resp.Questions))}
		for _, raw := range resp.Questions {
			q := ToQuestion(raw, rfpID)
			questions = append(questions, q)
			loose.QuestionIDs = append(loose.QuestionIDs, q.ID)
		}
		sections = append(sections, loose)
	}

	return questions, sections
}

func ToStatusCounts(c dto.StatusCountsResponse) entity.StatusCounts {
	return entity.NewStatusCounts(c.Submitted, c.NotSubmitted, c.Process)
}

// CountQuestions tallies statuses when the backend sends no counts block.
func CountQuestions(questions []entity.Question) entity.StatusCounts {
	var submitted, notSubmitted, process int
	for _, q := range questions {
		switch q.Status {
		case entity.QuestionSubmitted:
			submitted++
		case entity.QuestionProcess:
			process++
		default:
			notSubmitted++
		}
	}
	return entity.NewStatusCounts(submitted, notSubmitted, process)
}

// SubmittedNow marks q submitted at t.
func SubmittedNow(q entity.Question, t time.Time) entity.Question {
	q.Status = entity.QuestionSubmitted
	q.SubmittedAt = &t
	return q
}

// GroupSections rebuilds sections from a flat list, keeping first-seen order.
func GroupSections(questions []entity.Question) []Section {
	index := make(map[string]int)
	var sections []Section
	for _, q := range questions {
		i, ok := index[q.Section]
		if !ok {
			i = len(sections)
			index[q.Section] = i
			sections = append(sections, Section{Title: q.Section})
		}
		sections[i].QuestionIDs = append(sections[i].QuestionIDs, q.ID)
	}
	return sections
}
