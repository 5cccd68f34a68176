package recyclebin

import (
	"sort"

	"rfp-console/internal/entity"
)

// Entries returns the bin newest deletion first.
func Entries(s State) []entity.TrashEntry {
	out := append([]entity.TrashEntry(nil), s.Entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DeletedAt.After(out[j].DeletedAt) })
	return out
}
