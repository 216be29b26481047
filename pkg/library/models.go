package library

import (
	"time"

	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/harmonia-music/harmonia/pkg/sortname"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/uptrace/bun"
)

// Item is one row of the library snapshot: everything the user has added to
// their library plus the cached radio and podcast collections. List-valued
// fields are stored as JSON text columns.
type Item struct {
	bun.BaseModel `bun:"table:library_items,alias:li"`

	ID        int       `bun:",pk,nullzero" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ItemID           string     `bun:",nullzero" json:"item_id"`
	Type             media.Type `bun:",nullzero" json:"type"`
	Provider         string     `bun:",nullzero" json:"provider"`
	Name             string     `bun:",nullzero" json:"name"`
	SortName         string     `json:"sort_name"`
	URI              string     `json:"uri"`
	Favorite         bool       `json:"favorite"`
	AlbumName        string     `json:"album_name"`
	Artists          string     `bun:"artists" json:"-"`
	Authors          string     `bun:"authors" json:"-"`
	Narrators        string     `bun:"narrators" json:"-"`
	Metadata         string     `bun:"metadata" json:"-"`
	ProviderMappings string     `bun:"provider_mappings" json:"-"`
}

// ToMedia converts a snapshot row back into a media item.
func (i *Item) ToMedia() (media.Item, error) {
	item := media.Item{
		ItemID:    i.ItemID,
		Type:      i.Type,
		Provider:  i.Provider,
		Name:      i.Name,
		URI:       i.URI,
		Favorite:  i.Favorite,
		AlbumName: i.AlbumName,
	}

	if i.Artists != "" {
		if err := json.Unmarshal([]byte(i.Artists), &item.Artists); err != nil {
			return media.Item{}, errors.WithStack(err)
		}
	}
	if i.Authors != "" {
		if err := json.Unmarshal([]byte(i.Authors), &item.Authors); err != nil {
			return media.Item{}, errors.WithStack(err)
		}
	}
	if i.Narrators != "" {
		if err := json.Unmarshal([]byte(i.Narrators), &item.Narrators); err != nil {
			return media.Item{}, errors.WithStack(err)
		}
	}
	if i.Metadata != "" {
		if err := json.Unmarshal([]byte(i.Metadata), &item.Metadata); err != nil {
			return media.Item{}, errors.WithStack(err)
		}
	}
	if i.ProviderMappings != "" {
		if err := json.Unmarshal([]byte(i.ProviderMappings), &item.ProviderMappings); err != nil {
			return media.Item{}, errors.WithStack(err)
		}
	}

	return item, nil
}

// FromMedia builds a snapshot row from a media item.
func FromMedia(item media.Item) (*Item, error) {
	row := &Item{
		ItemID:    item.ItemID,
		Type:      item.Type,
		Provider:  item.Provider,
		Name:      item.Name,
		SortName:  sortNameFor(item),
		URI:       item.URI,
		Favorite:  item.Favorite,
		AlbumName: item.AlbumName,
	}

	var err error
	if row.Artists, err = marshalColumn(item.Artists, len(item.Artists) > 0); err != nil {
		return nil, err
	}
	if row.Authors, err = marshalColumn(item.Authors, len(item.Authors) > 0); err != nil {
		return nil, err
	}
	if row.Narrators, err = marshalColumn(item.Narrators, len(item.Narrators) > 0); err != nil {
		return nil, err
	}
	if row.Metadata, err = marshalColumn(item.Metadata, len(item.Metadata) > 0); err != nil {
		return nil, err
	}
	if row.ProviderMappings, err = marshalColumn(item.ProviderMappings, len(item.ProviderMappings) > 0); err != nil {
		return nil, err
	}

	return row, nil
}

// sortNameFor picks the catalog sort key: artist names sort surname-first,
// everything else sorts with leading articles moved to the end.
func sortNameFor(item media.Item) string {
	if item.Type == media.TypeArtist {
		return sortname.ForPerson(item.Name)
	}
	return sortname.ForTitle(item.Name)
}

func marshalColumn(v interface{}, set bool) (string, error) {
	if !set {
		return "", nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(b), nil
}
