package library

import "rfp-console/internal/entity"

func Bucket(s State, category entity.Category) []entity.Document {
	switch category {
	case entity.CategoryHistory:
		return s.Library.HistoricRFPs
	case entity.CategoryClean:
		return s.Library.Clean
	case entity.CategoryTraining:
		return s.Library.TrainingMaterials
	case entity.CategoryLearning:
		return s.Library.LearningDocuments
	}
	var out []entity.Document
	for _, d := range s.Library.Other {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out
}

func Counts(s State) map[entity.Category]int {
	return map[entity.Category]int{
		entity.CategoryHistory:  len(s.Library.HistoricRFPs),
		entity.CategoryClean:    len(s.Library.Clean),
		entity.CategoryTraining: len(s.Library.TrainingMaterials),
		entity.CategoryLearning: len(s.Library.LearningDocuments),
	}
}
