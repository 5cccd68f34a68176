package entity

import (
	"fmt"
	"strings"
	"time"
)

type QuestionStatus string

const (
	QuestionSubmitted    QuestionStatus = "submitted"
	QuestionNotSubmitted QuestionStatus = "not_submitted"
	QuestionProcess      QuestionStatus = "process"
)

// Question belongs to exactly one document (RfpID).
type Question struct {
	ID          int            `json:"id"`
	RfpID       int            `json:"rfp_id"`
	Section     string         `json:"section,omitempty"`
	Text        string         `json:"text"`
	Answer      string         `json:"answer"`
	Status      QuestionStatus `json:"status"`
	Owner       string         `json:"owner_username,omitempty"`
	SubmittedAt *time.Time     `json:"submitted_at,omitempty"`
}

type StatusCounts struct {
	Submitted    int `json:"submitted"`
	NotSubmitted int `json:"not_submitted"`
	Process      int `json:"process"`
	Total        int `json:"total"`
}

func NewStatusCounts(submitted, notSubmitted, process int) StatusCounts {
	return StatusCounts{
		Submitted:    submitted,
		NotSubmitted: notSubmitted,
		Process:      process,
		Total:        submitted + notSubmitted + process,
	}
}

type Reviewer struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// Assignment relates one question of one document to its reviewers.
type Assignment struct {
	QuestionID int        `json:"question_id"`
	FileID     int        `json:"file_id"`
	Reviewers  []Reviewer `json:"reviewers"`
}

// DisplayStatus derives the "Assigned to X, Y" label from the reviewer list.
func (a Assignment) DisplayStatus() string {
	return AssignedLabel(a.Reviewers)
}

func AssignedLabel(reviewers []Reviewer) string {
	if len(reviewers) == 0 {
		return ""
	}
	names := make([]string, 0, len(reviewers))
	for _, r := range reviewers {
		names = append(names, r.Username)
	}
	return fmt.Sprintf("Assigned to %s", strings.Join(names, ", "))
}

// AssignmentSummary is one document's progress from the reviewer's side.
type AssignmentSummary struct {
	FileID         int    `json:"file_id"`
	Filename       string `json:"filename"`
	ProjectName    string `json:"project_name"`
	QuestionCount  int    `json:"question_count"`
	SubmittedCount int    `json:"submitted_count"`
	Completed      bool   `json:"completed"`
}
