package library

import "github.com/harmonia-music/harmonia/pkg/media"

type ListItemsQuery struct {
	Type   string `query:"type" json:"type,omitempty" validate:"omitempty,mediatype"`
	Limit  int    `query:"limit" json:"limit,omitempty" default:"24" validate:"min=1,max=100"`
	Offset int    `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

type AddItemPayload struct {
	Item media.Item `json:"item" validate:"required"`
}

type SetFavoritePayload struct {
	Favorite bool `json:"favorite"`
}
