package mapper

import (
	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
)

func ToReviewer(r dto.ReviewerResponse) entity.Reviewer {
	return entity.Reviewer{UserID: dto.FirstInt(r.UserID, r.ID), Username: r.Username}
}

// ToAssignment accepts either a users list or parallel user_id/usernames lists.
func ToAssignment(a dto.AssignedReviewersResponse, fileID int) entity.Assignment {
	assignment := entity.Assignment{
		QuestionID: dto.FirstInt(a.QuestionID, a.QuesID),
		FileID:     dto.FirstInt(a.FileID),
		Reviewers:  []entity.Reviewer{},
	}
	if assignment.FileID == 0 {
		assignment.FileID = fileID
	}

	if len(a.Users) > 0 {
		for _, u := range a.Users {
			assignment.Reviewers = append(assignment.Reviewers, ToReviewer(u))
		}
		return assignment
	}

	for i, id := range a.UserIDs {
		r := entity.Reviewer{UserID: id.Int()}
		if i < len(a.Usernames) {
			r.Username = a.Usernames[i]
		}
		assignment.Reviewers = append(assignment.Reviewers, r)
	}
	return assignment
}

func ToAssignments(list []dto.AssignedReviewersResponse, fileID int) []entity.Assignment {
	assignments := make([]entity.Assignment, 0, len(list))
	for _, a := range list {
		assignments = append(assignments, ToAssignment(a, fileID))
	}
	return assignments
}

func ToAssignmentSummary(s dto.AssignmentSummaryResponse) entity.AssignmentSummary {
	total := s.TotalQuestions
	if total == 0 {
		total = s.QuestionCount
	}
	submitted := s.SubmittedQuestions
	if submitted == 0 {
		submitted = s.SubmittedCount
	}
	return entity.AssignmentSummary{
		FileID:         dto.FirstInt(s.FileID, s.ID),
		Filename:       dto.FirstString(s.Filename, s.FileName),
		ProjectName:    s.ProjectName,
		QuestionCount:  total,
		SubmittedCount: submitted,
		Completed:      s.IsCompleted || s.Completed || (total > 0 && submitted >= total),
	}
}

func ToAssignmentSummaries(list []dto.AssignmentSummaryResponse) []entity.AssignmentSummary {
	out := make([]entity.AssignmentSummary, 0, len(list))
	for _, s := range list {
		out = append(out, ToAssignmentSummary(s))
	}
	return out
}

// MergeReviewers adds incoming reviewers not already present, keeping order.
func MergeReviewers(existing, incoming []entity.Reviewer) []entity.Reviewer {
	merged := make([]entity.Reviewer, 0, len(existing)+len(incoming))
	seen := make(map[int]bool, len(existing)+len(incoming))
	for _, r := range append(append([]entity.Reviewer(nil), existing...), incoming...) {
		if seen[r.UserID] {
			continue
		}
		seen[r.UserID] = true
		merged = append(merged, r)
	}
	return merged
}

// RemoveReviewer drops exactly userID from the list.
func RemoveReviewer(list []entity.Reviewer, userID int) []entity.Reviewer {
	out := make([]entity.Reviewer, 0, len(list))
	for _, r := range list {
		if r.UserID != userID {
			out = append(out, r)
		}
	}
	return out
}
