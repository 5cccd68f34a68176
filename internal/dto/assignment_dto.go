package dto

type ReviewerResponse struct {
	UserID   *FlexInt `json:"user_id"`
	ID       *FlexInt `json:"id"`
	Username string   `json:"username"`
}

type AssignedReviewersResponse struct {
	QuestionID *FlexInt                   `json:"question_id"`
	QuesID     *FlexInt                   `json:"ques_id"`
	FileID     *FlexInt                   `json:"file_id"`
	UserIDs    FlexList[FlexInt]          `json:"user_id"`
	Usernames  FlexList[string]           `json:"usernames"`
	Users      FlexList[ReviewerResponse] `json:"users"`
}

type AssignRequest struct {
	QuesIDs []int `json:"ques_ids"`
	UserIDs []int `json:"user_id"`
	FileID  int   `json:"file_id"`
}

type NotificationRequest struct {
	UserIDs []int `json:"user_id"`
	QuesIDs []int `json:"ques_ids"`
}

type UnassignRequest struct {
	QuesID int `json:"ques_id"`
	UserID int `json:"user_id"`
}

type AssignmentSummaryResponse struct {
	FileID             *FlexInt `json:"file_id"`
	ID                 *FlexInt `json:"id"`
	Filename           string   `json:"filename"`
	FileName           string   `json:"file_name"`
	ProjectName        string   `json:"project_name"`
	TotalQuestions     int      `json:"total_questions"`
	QuestionCount      int      `json:"question_count"`
	SubmittedQuestions int      `json:"submitted_questions"`
	SubmittedCount     int      `json:"submitted_count"`
	IsCompleted        bool     `json:"is_completed"`
	Completed          bool     `json:"completed"`
}
