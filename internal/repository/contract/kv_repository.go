package contract

import (
	"context"
	"strconv"
)

// KVRepository is the durable client-side key/value store.
type KVRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

const (
	KeySession = "session"
	KeyTheme   = "theme"
)

func AnalysisKey(documentID int) string {
	return "analysis:" + strconv.Itoa(documentID)
}
