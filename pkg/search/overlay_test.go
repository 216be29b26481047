package search

import (
	"testing"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/stretchr/testify/assert"
)

func TestOverlayEffectiveMembership(t *testing.T) {
	t.Parallel()

	o := NewOverlay()

	// No edits: server state passes through.
	assert.True(t, o.Effective(true, media.TypeAlbum, "a1"))
	assert.False(t, o.Effective(false, media.TypeAlbum, "a1"))

	// An added item is in the library even while the server still reports a
	// non-library provider.
	o.MarkAdded(media.TypeAlbum, "a1")
	assert.True(t, o.Effective(false, media.TypeAlbum, "a1"))

	// A removed item is out even while the server still reports membership.
	o.MarkRemoved(media.TypeAlbum, "a1")
	assert.False(t, o.Effective(true, media.TypeAlbum, "a1"))
}

func TestOverlaySetsAreMutuallyExclusive(t *testing.T) {
	t.Parallel()

	o := NewOverlay()
	o.MarkAdded(media.TypeTrack, "t1")
	o.MarkRemoved(media.TypeTrack, "t1")
	o.MarkAdded(media.TypeTrack, "t1")

	assert.True(t, o.Effective(false, media.TypeTrack, "t1"))

	o.MarkRemoved(media.TypeTrack, "t1")
	assert.False(t, o.Effective(true, media.TypeTrack, "t1"))
}

func TestOverlayKeysAreTypeScoped(t *testing.T) {
	t.Parallel()

	o := NewOverlay()
	o.MarkAdded(media.TypeAlbum, "1")

	// Same id, different media type: unaffected.
	assert.False(t, o.Effective(false, media.TypeTrack, "1"))
}

func TestOverlayReset(t *testing.T) {
	t.Parallel()

	o := NewOverlay()
	o.MarkAdded(media.TypeAlbum, "a1")
	o.MarkRemoved(media.TypeTrack, "t1")

	o.Reset()

	assert.False(t, o.Effective(false, media.TypeAlbum, "a1"))
	assert.True(t, o.Effective(true, media.TypeTrack, "t1"))
}
