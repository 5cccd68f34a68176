package dto

type QuestionResponse struct {
	ID            *FlexInt  `json:"id"`
	QuestionID    *FlexInt  `json:"question_id"`
	QuesID        *FlexInt  `json:"ques_id"`
	RfpID         *FlexInt  `json:"rfp_id"`
	FileID        *FlexInt  `json:"file_id"`
	Question      string    `json:"question"`
	Text          string    `json:"text"`
	Answer        string    `json:"answer"`
	Status        string    `json:"status"`
	Username      string    `json:"username"`
	OwnerUsername string    `json:"owner_username"`
	SubmittedAt   *FlexTime `json:"submitted_at"`
	Section       string    `json:"section"`
}

type SectionResponse struct {
	Section   string                     `json:"section"`
	Title     string                     `json:"title"`
	Questions FlexList[QuestionResponse] `json:"questions"`
}

type QuestionsResponse struct {
	Sections  FlexList[SectionResponse]  `json:"sections"`
	Questions FlexList[QuestionResponse] `json:"questions"`
}

type StatusCountsResponse struct {
	Submitted    int `json:"submitted"`
	NotSubmitted int `json:"not_submitted"`
	Process      int `json:"process"`
}

type FilterDataResponse struct {
	Questions FlexList[QuestionResponse] `json:"questions"`
	Counts    *StatusCountsResponse      `json:"counts"`
}

type AddQuestionRequest struct {
	RfpID    int    `json:"rfp_id"`
	Question string `json:"question"`
	Section  string `json:"section,omitempty"`
}

type ReassignRequest struct {
	UserID int `json:"user_id"`
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

type AnswerResponse struct {
	Answer          string `json:"answer"`
	GeneratedAnswer string `json:"generated_answer"`
}

type CountResponse struct {
	Count *int `json:"count"`
	Total *int `json:"total"`
}
