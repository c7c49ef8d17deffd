package syncx

import (
	"github.com/smpn3pacet/pustaka/internal/client/models"
)

// Merge combines a freshly fetched remote snapshot with the local store's
// current contents. The remote is authoritative for every id it contains;
// local items survive only while provisional (per the isProvisional
// predicate) and absent from the snapshot, which protects just-written items
// from being clobbered by a stale remote read. The result contains each id at
// most once and is ordered newest first.
//
// Merge is a pure decision function with no I/O: the caller persists the
// result. Applying it via a non-destructive upsert means items missing from
// the result are not implicitly deleted; deletions stay explicit.
func Merge(remote, local []*models.Item, isProvisional func(id string) bool) []*models.Item {
	remoteIDs := make(map[string]struct{}, len(remote))
	merged := make([]*models.Item, 0, len(remote))

	for _, item := range remote {
		if _, ok := remoteIDs[item.ID]; ok {
			continue
		}
		remoteIDs[item.ID] = struct{}{}
		merged = append(merged, item)
	}

	for _, item := range local {
		if _, ok := remoteIDs[item.ID]; ok {
			continue
		}
		if isProvisional(item.ID) {
			merged = append(merged, item)
		}
	}

	models.SortNewestFirst(merged)
	return merged
}
