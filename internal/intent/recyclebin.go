package intent

import "rfp-console/pkg/workflow"

const (
	KindFetchTrash      workflow.Kind = "recyclebin/fetch"
	KindRestoreDocument workflow.Kind = "recyclebin/restore"
	KindPurgeDocument   workflow.Kind = "recyclebin/purge"
	KindEmptyTrash      workflow.Kind = "recyclebin/empty"
)

type FetchTrash struct {
	workflow.Callbacks
}

func (FetchTrash) Kind() workflow.Kind { return KindFetchTrash }

type RestoreDocument struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (RestoreDocument) Kind() workflow.Kind { return KindRestoreDocument }

type PurgeDocument struct {
	workflow.Callbacks
	ID int `json:"id" validate:"gt=0"`
}

func (PurgeDocument) Kind() workflow.Kind { return KindPurgeDocument }

type EmptyTrash struct {
	workflow.Callbacks
}

func (EmptyTrash) Kind() workflow.Kind { return KindEmptyTrash }
