package keystone

import (
	"sort"

	"rfp-console/internal/entity"
)

// Files returns the keystone files newest upload first.
func Files(s State) []entity.KeystoneFile {
	out := append([]entity.KeystoneFile(nil), s.Files...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out
}

func Viewer(s State) *entity.BlobView {
	return s.Viewer
}
