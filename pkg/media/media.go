// Package media defines the media item types shared across the search engine,
// the library snapshot store, and the remote provider clients. Items are a
// tagged union: the Type field selects which variant fields are meaningful.
package media

import "strings"

// Type identifies the variant of a media item.
type Type string

const (
	TypeArtist         Type = "artist"
	TypeAlbum          Type = "album"
	TypeTrack          Type = "track"
	TypePlaylist       Type = "playlist"
	TypeAudiobook      Type = "audiobook"
	TypeRadio          Type = "radio"
	TypePodcast        Type = "podcast"
	TypePodcastEpisode Type = "podcast_episode"
)

// Types lists every valid media type.
var Types = []Type{
	TypeArtist,
	TypeAlbum,
	TypeTrack,
	TypePlaylist,
	TypeAudiobook,
	TypeRadio,
	TypePodcast,
	TypePodcastEpisode,
}

// Valid reports whether t is a known media type.
func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}
	return false
}

// ProviderLibrary is the provider id for items registered in the user's
// library, as opposed to items only visible through an external provider's
// catalog.
const ProviderLibrary = "library"

// ProviderMapping links an item to a specific external service instance plus
// that service's own item identifier.
type ProviderMapping struct {
	ProviderInstance string `json:"provider_instance"`
	ProviderDomain   string `json:"provider_domain"`
	ItemID           string `json:"item_id"`
	Available        bool   `json:"available"`
}

// ArtistRef is a lightweight reference to a performing artist, carried on
// albums and tracks so that unified search can cross-reference artists from
// matched items.
type ArtistRef struct {
	ItemID   string `json:"item_id"`
	Provider string `json:"provider"`
	Name     string `json:"name"`
}

// Item is a media entity. Common fields are always set; variant fields are
// only meaningful for the types noted on each field.
type Item struct {
	Type             Type              `json:"media_type"`
	ItemID           string            `json:"item_id"`
	Provider         string            `json:"provider"`
	Name             string            `json:"name"`
	URI              string            `json:"uri,omitempty"`
	Favorite         bool              `json:"favorite,omitempty"`
	ProviderMappings []ProviderMapping `json:"provider_mappings,omitempty"`

	Artists   []ArtistRef       `json:"artists,omitempty"`   // album, track
	AlbumName string            `json:"album,omitempty"`     // track
	Authors   []string          `json:"authors,omitempty"`   // audiobook
	Narrators []string          `json:"narrators,omitempty"` // audiobook
	Metadata  map[string]string `json:"metadata,omitempty"`  // podcast, podcast episode
}

// Key returns the stable identity of an item: the cross-provider URI when
// present, the provider item id otherwise.
func (it Item) Key() string {
	if it.URI != "" {
		return it.URI
	}
	return it.ItemID
}

// OverlayKey is the identity used by the session-local library membership
// overlay.
func (it Item) OverlayKey() string {
	return string(it.Type) + ":" + it.ItemID
}

// InLibrary reports the server-side view of library membership. The session
// overlay may override this for the current session.
func (it Item) InLibrary() bool {
	return it.Provider == ProviderLibrary
}

// ArtistsString returns the joined artist names for albums and tracks.
func (it Item) ArtistsString() string {
	if len(it.Artists) == 0 {
		return ""
	}
	names := make([]string, len(it.Artists))
	for i, a := range it.Artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// AuthorsString returns the joined author names for audiobooks.
func (it Item) AuthorsString() string {
	return strings.Join(it.Authors, ", ")
}

// NarratorsString returns the joined narrator names for audiobooks.
func (it Item) NarratorsString() string {
	return strings.Join(it.Narrators, ", ")
}
