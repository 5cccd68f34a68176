package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchQuestions          workflow.Kind = "questions/fetch"
	KindFetchAssignedQuestions  workflow.Kind = "questions/fetch_assigned"
	KindFetchFilterData         workflow.Kind = "questions/fetch_filter_data"
	KindFetchSubmittedQuestions workflow.Kind = "questions/fetch_submitted"
	KindCheckSubmit             workflow.Kind = "questions/check_submit"
	KindFetchFilterQuestions    workflow.Kind = "questions/fetch_filter_questions"
	KindAddQuestion             workflow.Kind = "questions/add"
	KindDeleteQuestion          workflow.Kind = "questions/delete"
	KindReassignQuestion        workflow.Kind = "questions/reassign"
	KindEditAnswer              workflow.Kind = "questions/edit_answer"
	KindSubmitAnswer            workflow.Kind = "questions/submit_answer"
	KindGenerateAnswer          workflow.Kind = "questions/generate_answer"
)

type FetchQuestions struct {
	workflow.Callbacks
	RfpID int `json:"rfp_id" validate:"gt=0"`
}

func (FetchQuestions) Kind() workflow.Kind { return KindFetchQuestions }

type FetchAssignedQuestions struct {
	workflow.Callbacks
	RfpID int `json:"rfp_id" validate:"gt=0"`
}

func (FetchAssignedQuestions) Kind() workflow.Kind { return KindFetchAssignedQuestions }

type FetchFilterData struct {
	workflow.Callbacks
	RfpID int `json:"rfp_id" validate:"gt=0"`
}

func (FetchFilterData) Kind() workflow.Kind { return KindFetchFilterData }

type FetchSubmittedQuestions struct {
	workflow.Callbacks
	RfpID int `json:"rfp_id" validate:"gt=0"`
}

func (FetchSubmittedQuestions) Kind() workflow.Kind { return KindFetchSubmittedQuestions }

type CheckSubmit struct {
	workflow.Callbacks
	RfpID int `json:"rfp_id" validate:"gt=0"`
}

func (CheckSubmit) Kind() workflow.Kind { return KindCheckSubmit }

type FetchFilterQuestions struct {
	workflow.Callbacks
}

func (FetchFilterQuestions) Kind() workflow.Kind { return KindFetchFilterQuestions }

type AddQuestion struct {
	workflow.Callbacks
	RfpID    int    `json:"rfp_id" validate:"gt=0"`
	Question string `json:"question" validate:"required"`
	Section  string `json:"section"`
}

func (AddQuestion) Kind() workflow.Kind { return KindAddQuestion }

func NewAddQuestion(rfpID int, question, section string) AddQuestion {
	return AddQuestion{RfpID: rfpID, Question: question, Section: section}
}

type DeleteQuestion struct {
	workflow.Callbacks
	QuestionID int `json:"question_id" validate:"gt=0"`
	RfpID      int `json:"rfp_id" validate:"gt=0"`
}

func (DeleteQuestion) Kind() workflow.Kind { return KindDeleteQuestion }

func NewDeleteQuestion(questionID, rfpID int) DeleteQuestion {
	return DeleteQuestion{QuestionID: questionID, RfpID: rfpID}
}

type ReassignQuestion struct {
	workflow.Callbacks
	QuestionID int `json:"question_id" validate:"gt=0"`
	RfpID      int `json:"rfp_id" validate:"gt=0"`
	UserID     int `json:"user_id" validate:"gt=0"`
}

func (ReassignQuestion) Kind() workflow.Kind { return KindReassignQuestion }

type EditAnswer struct {
	workflow.Callbacks
	QuestionID int    `json:"question_id" validate:"gt=0"`
	Answer     string `json:"answer" validate:"required"`
}

func (EditAnswer) Kind() workflow.Kind { return KindEditAnswer }

type SubmitAnswer struct {
	workflow.Callbacks
	QuestionID int    `json:"question_id" validate:"gt=0"`
	RfpID      int    `json:"rfp_id" validate:"gt=0"`
	Answer     string `json:"answer" validate:"required"`
}

func (SubmitAnswer) Kind() workflow.Kind { return KindSubmitAnswer }

type GenerateAnswer struct {
	workflow.Callbacks
	QuestionID int `json:"question_id" validate:"gt=0"`
}

func (GenerateAnswer) Kind() workflow.Kind { return KindGenerateAnswer }
