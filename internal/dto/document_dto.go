package dto

import "encoding/json"

type DocumentResponse struct {
	ID          *FlexInt  `json:"id"`
	FileID      *FlexInt  `json:"file_id"`
	RfpID       *FlexInt  `json:"rfp_id"`
	Filename    string    `json:"filename"`
	FileName    string    `json:"file_name"`
	ProjectName string    `json:"project_name"`
	Project     string    `json:"project"`
	Category    string    `json:"category"`
	UploadedAt  *FlexTime `json:"uploaded_at"`
	CreatedAt   *FlexTime `json:"created_at"`
	DeletedAt   *FlexTime `json:"deleted_at"`
	Summary     string    `json:"summary"`
	IsDeleted   bool      `json:"is_deleted"`
	Size        int64     `json:"size"`
}

type MoveAssetRequest struct {
	Category string `json:"category"`
}

type AnalysisSectionResponse struct {
	Title   string `json:"title"`
	Heading string `json:"heading"`
	Content string `json:"content"`
	Text    string `json:"text"`
}

type AnalysisResponse struct {
	Summary  string                            `json:"summary"`
	Sections FlexList[AnalysisSectionResponse] `json:"sections"`
	Analysis json.RawMessage                   `json:"analysis"`
}
