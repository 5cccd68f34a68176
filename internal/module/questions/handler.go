package questions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
	"rfp-console/internal/intent"
	"rfp-console/internal/mapper"
	"rfp-console/internal/module"
	"rfp-console/pkg/apiclient"
	"rfp-console/pkg/workflow"
)

var ErrAdminOnly = errors.New("answers can only be edited by an admin")

// statusOrder is the order FetchFilterQuestions walks the status endpoint.
var statusOrder = []entity.QuestionStatus{entity.QuestionSubmitted, entity.QuestionNotSubmitted, entity.QuestionProcess}

func (m *Module) fetchQuestions(ctx context.Context, job *workflow.Job, in intent.FetchQuestions) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, listStarted)

	var raw json.RawMessage
	if err := m.deps.API.Get(ctx, apiclient.Path("rfps", in.RfpID, "questions"), nil, &raw); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load questions", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	questions, sections, err := decodeSections(raw, in.RfpID)
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load questions", func(msg string) {
			m.slice.Update(job, listFailed(msg))
		})
		return
	}

	m.slice.Update(job, listLoaded(in.RfpID, questions, sections))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", questions)
}

func (m *Module) fetchAssigned(ctx context.Context, job *workflow.Job, in intent.FetchAssignedQuestions) {
	m.fetchView(ctx, job, in.Callbacks, in, viewAssigned, in.RfpID, apiclient.Path("rfps", in.RfpID, "questions", "assigned"), "Failed to load assigned questions")
}

func (m *Module) fetchSubmitted(ctx context.Context, job *workflow.Job, in intent.FetchSubmittedQuestions) {
	m.fetchView(ctx, job, in.Callbacks, in, viewSubmitted, in.RfpID, apiclient.Path("rfps", in.RfpID, "questions", "submitted"), "Failed to load submitted questions")
}

func (m *Module) checkSubmit(ctx context.Context, job *workflow.Job, in intent.CheckSubmit) {
	m.fetchView(ctx, job, in.Callbacks, in, viewCheckSubmit, in.RfpID, apiclient.Path("rfps", in.RfpID, "check-submit"), "Failed to check submissions")
}

func (m *Module) fetchView(ctx context.Context, job *workflow.Job, cb workflow.Callbacks, in any, v view, rfpID int, path, fallback string) {
	if !m.deps.Validate(ctx, job, Name, cb, in, nil) {
		return
	}
	m.slice.Update(job, viewStarted(v))

	var resp dto.FlexList[dto.QuestionResponse]
	if err := m.deps.API.Get(ctx, path, nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, cb, err, fallback, func(msg string) {
			m.slice.Update(job, viewFailed(v, msg))
		})
		return
	}

	questions := mapper.ToQuestions(resp, rfpID)
	m.slice.Update(job, viewLoaded(v, questions))
	m.deps.Runtime.Succeed(job, cb, "", questions)
}

func (m *Module) fetchFilterData(ctx context.Context, job *workflow.Job, in intent.FetchFilterData) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	m.slice.Update(job, viewStarted(viewFiltered))

	var raw json.RawMessage
	if err := m.deps.API.Get(ctx, apiclient.Path("rfps", in.RfpID, "questions", "filter"), nil, &raw); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load filter data", func(msg string) {
			m.slice.Update(job, viewFailed(viewFiltered, msg))
		})
		return
	}

	questions, counts, err := decodeFilterData(raw, in.RfpID)
	if err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load filter data", func(msg string) {
			m.slice.Update(job, viewFailed(viewFiltered, msg))
		})
		return
	}

	m.slice.Update(job, filterLoaded(in.RfpID, questions, counts))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", counts)
}

// fetchFilterQuestions asks for each status in turn; the next request starts
// only after the previous one answered.
func (m *Module) fetchFilterQuestions(ctx context.Context, job *workflow.Job, in intent.FetchFilterQuestions) {
	m.slice.Update(job, countsStarted)

	tally := make(map[entity.QuestionStatus]int, len(statusOrder))
	for _, status := range statusOrder {
		var raw json.RawMessage
		query := url.Values{"status": {string(status)}}
		if err := m.deps.API.Get(ctx, "/questions/filter", query, &raw); err != nil {
			m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load question counts", func(msg string) {
				m.slice.Update(job, countsFailed(msg))
			})
			return
		}
		n, err := countOf(raw)
		if err != nil {
			m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to load question counts", func(msg string) {
				m.slice.Update(job, countsFailed(msg))
			})
			return
		}
		tally[status] = n
	}

	counts := entity.NewStatusCounts(tally[entity.QuestionSubmitted], tally[entity.QuestionNotSubmitted], tally[entity.QuestionProcess])
	m.slice.Update(job, countsLoaded(counts))
	m.deps.Runtime.Succeed(job, in.Callbacks, "", counts)
}

func (m *Module) addQuestion(ctx context.Context, job *workflow.Job, in intent.AddQuestion) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, func(fields map[string]string) {
		m.slice.Update(job, addFieldErrors(fields))
	}) {
		return
	}
	m.slice.Update(job, addStarted)

	req := dto.AddQuestionRequest{RfpID: in.RfpID, Question: in.Question, Section: in.Section}
	var resp dto.QuestionResponse
	if err := m.deps.API.Post(ctx, "/questions", req, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to add question", func(msg string) {
			m.slice.Update(job, addFailed(msg))
		})
		return
	}

	m.slice.Update(job, addSucceeded)
	m.deps.Dispatch(intent.FetchQuestions{RfpID: in.RfpID}, intent.FetchFilterData{RfpID: in.RfpID})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Question added", mapper.ToQuestion(resp, in.RfpID))
}

func (m *Module) deleteQuestion(ctx context.Context, job *workflow.Job, in intent.DeleteQuestion) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.QuestionID)
	m.slice.Update(job, flagStarted(deleting, key))

	if err := m.deps.API.Delete(ctx, apiclient.Path("questions", in.QuestionID), nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to delete question", func(msg string) {
			m.slice.Update(job, flagFailed(deleting, key, msg))
		})
		return
	}

	m.slice.Update(job, questionRemoved(in.QuestionID, key))
	m.deps.Dispatch(intent.FetchAssignedReviewers{FileID: in.RfpID}, intent.FetchFilterData{RfpID: in.RfpID})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Question deleted", in.QuestionID)
}

func (m *Module) reassignQuestion(ctx context.Context, job *workflow.Job, in intent.ReassignQuestion) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.QuestionID)
	m.slice.Update(job, flagStarted(reassigning, key))

	req := dto.ReassignRequest{UserID: in.UserID}
	if err := m.deps.API.Put(ctx, apiclient.Path("questions", in.QuestionID, "reassign"), req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to reassign question", func(msg string) {
			m.slice.Update(job, flagFailed(reassigning, key, msg))
		})
		return
	}

	m.slice.Update(job, questionReassigned(in.QuestionID, key))
	m.deps.Dispatch(intent.FetchFilterData{RfpID: in.RfpID})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Question reassigned", in.QuestionID)
}

func (m *Module) editAnswer(ctx context.Context, job *workflow.Job, in intent.EditAnswer) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.QuestionID)
	m.slice.Update(job, flagStarted(saving, key))

	fail := func(err error) {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to save answer", func(msg string) {
			m.slice.Update(job, flagFailed(saving, key, msg))
		})
	}

	s, err := m.deps.Sessions.Get(ctx)
	if err != nil {
		fail(err)
		return
	}
	if s == nil || s.Role != entity.RoleAdmin {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, ErrAdminOnly, "Only admins can edit answers", func(msg string) {
			m.slice.Update(job, flagFailed(saving, key, msg))
		})
		return
	}

	req := dto.AnswerRequest{Answer: in.Answer}
	if err := m.deps.API.Put(ctx, apiclient.Path("questions", in.QuestionID, "answer"), req, nil); err != nil {
		fail(err)
		return
	}

	m.slice.Update(job, answerSaved(in.QuestionID, in.Answer, key))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Answer saved", in.QuestionID)
}

func (m *Module) submitAnswer(ctx context.Context, job *workflow.Job, in intent.SubmitAnswer) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.QuestionID)
	m.slice.Update(job, flagStarted(saving, key))

	req := dto.AnswerRequest{Answer: in.Answer}
	if err := m.deps.API.Post(ctx, apiclient.Path("questions", in.QuestionID, "submit"), req, nil); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to submit answer", func(msg string) {
			m.slice.Update(job, flagFailed(saving, key, msg))
		})
		return
	}

	m.slice.Update(job, answerSubmitted(in.QuestionID, in.Answer, key, m.now()))
	m.deps.Dispatch(intent.FetchFilterData{RfpID: in.RfpID})
	m.deps.Runtime.Succeed(job, in.Callbacks, "Answer submitted", in.QuestionID)
}

func (m *Module) generateAnswer(ctx context.Context, job *workflow.Job, in intent.GenerateAnswer) {
	if !m.deps.Validate(ctx, job, Name, in.Callbacks, in, nil) {
		return
	}
	key := module.Key(in.QuestionID)
	m.slice.Update(job, flagStarted(generating, key))
	m.deps.Logger.Info(Name, "Generating AI answer", map[string]interface{}{"question_id": in.QuestionID})

	var resp dto.AnswerResponse
	if err := m.deps.API.Post(ctx, apiclient.Path("questions", in.QuestionID, "ai-answer"), nil, &resp); err != nil {
		m.deps.Runtime.Fail(ctx, job, Name, in.Callbacks, err, "Failed to generate answer", func(msg string) {
			m.slice.Update(job, flagFailed(generating, key, msg))
		})
		return
	}

	answer := dto.FirstString(resp.Answer, resp.GeneratedAnswer)
	m.slice.Update(job, draftGenerated(in.QuestionID, answer, key))
	m.deps.Runtime.Succeed(job, in.Callbacks, "Answer generated", answer)
}

// decodeSections accepts either a sectioned object or a flat question list.
func decodeSections(raw json.RawMessage, rfpID int) ([]entity.Question, []mapper.Section, error) {
	if isArray(raw) {
		var list dto.FlexList[dto.QuestionResponse]
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, nil, fmt.Errorf("decode questions: %w", err)
		}
		questions := mapper.ToQuestions(list, rfpID)
		return questions, mapper.GroupSections(questions), nil
	}

	var resp dto.QuestionsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, nil, fmt.Errorf("decode questions: %w", err)
	}
	questions, sections := mapper.ToSections(resp, rfpID)
	return questions, sections, nil
}

// decodeFilterData accepts {questions, counts} or a bare list. Missing counts
// are tallied from the questions.
func decodeFilterData(raw json.RawMessage, rfpID int) ([]entity.Question, entity.StatusCounts, error) {
	var resp dto.FilterDataResponse
	if isArray(raw) {
		if err := json.Unmarshal(raw, &resp.Questions); err != nil {
			return nil, entity.StatusCounts{}, fmt.Errorf("decode filter data: %w", err)
		}
	} else if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, entity.StatusCounts{}, fmt.Errorf("decode filter data: %w", err)
	}

	questions := mapper.ToQuestions(resp.Questions, rfpID)
	if resp.Counts != nil {
		return questions, mapper.ToStatusCounts(*resp.Counts), nil
	}
	return questions, mapper.CountQuestions(questions), nil
}

// countOf reads {count: n} or falls back to the length of the returned list.
func countOf(raw json.RawMessage) (int, error) {
	if !isArray(raw) {
		var c dto.CountResponse
		if err := json.Unmarshal(raw, &c); err == nil {
			if c.Count != nil {
				return *c.Count, nil
			}
			if c.Total != nil {
				return *c.Total, nil
			}
		}
	}
	var list dto.FlexList[json.RawMessage]
	if err := json.Unmarshal(raw, &list); err != nil {
		return 0, fmt.Errorf("decode question count: %w", err)
	}
	return len(list), nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
