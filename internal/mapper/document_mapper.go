package mapper

import (
	"encoding/json"
	"strings"

	"rfp-console/internal/dto"
	"rfp-console/internal/entity"
)

func ToDocument(d dto.DocumentResponse) entity.Document {
	return entity.Document{
		ID:          dto.FirstInt(d.ID, d.FileID, d.RfpID),
		Filename:    dto.FirstString(d.Filename, d.FileName),
		ProjectName: dto.FirstString(d.ProjectName, d.Project),
		Category:    entity.Category(strings.ToLower(d.Category)),
		UploadedAt:  dto.FirstTime(d.UploadedAt, d.CreatedAt),
		Summary:     d.Summary,
		IsDeleted:   d.IsDeleted,
	}
}

func ToDocuments(list []dto.DocumentResponse) []entity.Document {
	docs := make([]entity.Document, 0, len(list))
	for _, d := range list {
		docs = append(docs, ToDocument(d))
	}
	return docs
}

func ToTrashEntries(list []dto.DocumentResponse) []entity.TrashEntry {
	entries := make([]entity.TrashEntry, 0, len(list))
	for _, d := range list {
		entries = append(entries, entity.TrashEntry{
			ID:        dto.FirstInt(d.ID, d.FileID, d.RfpID),
			Filename:  dto.FirstString(d.Filename, d.FileName),
			DeletedAt: dto.FirstTime(d.DeletedAt, d.UploadedAt, d.CreatedAt),
		})
	}
	return entries
}

func ToKeystoneFiles(list []dto.DocumentResponse) []entity.KeystoneFile {
	files := make([]entity.KeystoneFile, 0, len(list))
	for _, d := range list {
		files = append(files, entity.KeystoneFile{
			ID:         dto.FirstInt(d.ID, d.FileID),
			Filename:   dto.FirstString(d.Filename, d.FileName),
			UploadedAt: dto.FirstTime(d.UploadedAt, d.CreatedAt),
			Size:       d.Size,
		})
	}
	return files
}

// ToLibrary partitions documents into the four library buckets.
// Documents with an unknown category are left out.
func ToLibrary(docs []entity.Document) entity.Library {
	lib := entity.Library{
		HistoricRFPs:      []entity.Document{},
		Clean:             []entity.Document{},
		TrainingMaterials: []entity.Document{},
		LearningDocuments: []entity.Document{},
	}
	for _, d := range docs {
		switch d.Category {
		case entity.CategoryHistory:
			lib.HistoricRFPs = append(lib.HistoricRFPs, d)
		case entity.CategoryClean:
			lib.Clean = append(lib.Clean, d)
		case entity.CategoryTraining:
			lib.TrainingMaterials = append(lib.TrainingMaterials, d)
		case entity.CategoryLearning:
			lib.LearningDocuments = append(lib.LearningDocuments, d)
		default:
			lib.Other = append(lib.Other, d)
		}
	}
	return lib
}

func ToAnalysis(documentID int, resp dto.AnalysisResponse, raw []byte) entity.AnalysisResult {
	sections := make([]entity.AnalysisSection, 0, len(resp.Sections))
	for _, s := range resp.Sections {
		sections = append(sections, entity.AnalysisSection{
			Title:   dto.FirstString(s.Title, s.Heading),
			Content: dto.FirstString(s.Content, s.Text),
		})
	}

	summary := resp.Summary
	if summary == "" && len(resp.Analysis) > 0 {
		var text string
		if err := json.Unmarshal(resp.Analysis, &text); err == nil {
			summary = text
		}
	}

	return entity.AnalysisResult{
		DocumentID: documentID,
		Summary:    summary,
		Sections:   sections,
		Raw:        json.RawMessage(raw),
	}
}
