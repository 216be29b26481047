package library

import (
	"net/http"

	"github.com/harmonia-music/harmonia/pkg/errcodes"
	"github.com/harmonia-music/harmonia/pkg/media"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	libraryService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListItemsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	items, total, err := h.libraryService.List(ctx, media.Type(params.Type), params.Limit, params.Offset)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{
		"items": items,
		"total": total,
	}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) add(c echo.Context) error {
	ctx := c.Request().Context()

	payload := AddItemPayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}
	if !payload.Item.Type.Valid() {
		return errcodes.ValidationError("item.media_type is not a known media type")
	}
	if payload.Item.ItemID == "" || payload.Item.Name == "" {
		return errcodes.ValidationError("item.item_id and item.name are required")
	}

	added, err := h.libraryService.Upsert(ctx, payload.Item)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{"added": added}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}

func (h *handler) remove(c echo.Context) error {
	ctx := c.Request().Context()

	t := media.Type(c.Param("type"))
	if !t.Valid() {
		return errcodes.NotFound("Item")
	}

	removed, err := h.libraryService.Remove(ctx, t, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if !removed {
		return errcodes.NotFound("Item")
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}

func (h *handler) setFavorite(c echo.Context) error {
	ctx := c.Request().Context()

	t := media.Type(c.Param("type"))
	if !t.Valid() {
		return errcodes.NotFound("Item")
	}

	payload := SetFavoritePayload{}
	if err := c.Bind(&payload); err != nil {
		return errors.WithStack(err)
	}

	changed, err := h.libraryService.SetFavorite(ctx, t, c.Param("id"), payload.Favorite)
	if err != nil {
		return errors.WithStack(err)
	}

	response := map[string]any{"changed": changed}
	return errors.WithStack(c.JSON(http.StatusOK, response))
}
