package domain

import (
	"sort"

	"github.com/google/uuid"
)

// SortUUIDs sorts ids into a stable total order (lexicographic on the
// canonical string form), generalizing the two-id deterministic ordering
// used by simpler transfer-only ledgers to an arbitrary lock set.
func SortUUIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
