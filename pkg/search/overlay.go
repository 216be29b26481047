package search

import (
	"sync"

	"github.com/harmonia-music/harmonia/pkg/media"
)

// Overlay layers session-local library membership edits over server-reported
// state, so that an add or remove is reflected immediately without a full
// reload. A key lives in at most one of the two sets at a time.
type Overlay struct {
	mu      sync.Mutex
	added   map[string]struct{}
	removed map[string]struct{}
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		added:   map[string]struct{}{},
		removed: map[string]struct{}{},
	}
}

// MarkAdded records that an item was added to the library this session.
func (o *Overlay) MarkAdded(t media.Type, itemID string) {
	key := overlayKey(t, itemID)
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.removed, key)
	o.added[key] = struct{}{}
}

// MarkRemoved records that an item was removed from the library this session.
func (o *Overlay) MarkRemoved(t media.Type, itemID string) {
	key := overlayKey(t, itemID)
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.added, key)
	o.removed[key] = struct{}{}
}

// Effective returns the library membership of an item with the session edits
// applied on top of the server-reported state.
func (o *Overlay) Effective(serverState bool, t media.Type, itemID string) bool {
	key := overlayKey(t, itemID)
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.added[key]; ok {
		return true
	}
	if _, ok := o.removed[key]; ok {
		return false
	}
	return serverState
}

// Reset clears every session edit, typically after a full library reload.
func (o *Overlay) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.added = map[string]struct{}{}
	o.removed = map[string]struct{}{}
}

func overlayKey(t media.Type, itemID string) string {
	return string(t) + ":" + itemID
}
