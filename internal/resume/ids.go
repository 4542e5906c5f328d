package resume

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

var now = time.Now

// NewItemID returns a time-based identifier with a random suffix.
func NewItemID() string {
	return fmt.Sprintf("%d-%s", now().UnixMilli(), uuid.NewString()[:8])
}

// EnsureIDs assigns identifiers to list items that lack one or that repeat an
// identifier already used in the same list.
func EnsureIDs(r *Resume) {
	if r == nil {
		return
	}

	seen := map[string]struct{}{}
	for i := range r.Experience {
		r.Experience[i].ID = uniqueID(seen, r.Experience[i].ID)
	}

	seen = map[string]struct{}{}
	for i := range r.Education {
		r.Education[i].ID = uniqueID(seen, r.Education[i].ID)
	}

	seen = map[string]struct{}{}
	for i := range r.Skills {
		r.Skills[i].ID = uniqueID(seen, r.Skills[i].ID)
	}

	seen = map[string]struct{}{}
	for i := range r.Projects {
		r.Projects[i].ID = uniqueID(seen, r.Projects[i].ID)
	}
}

func uniqueID(seen map[string]struct{}, id string) string {
	if _, dup := seen[id]; id == "" || dup {
		id = NewItemID()
	}
	seen[id] = struct{}{}
	return id
}
