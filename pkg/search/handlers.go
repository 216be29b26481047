package search

import (
	"net/http"

	"github.com/harmonia-music/harmonia/pkg/history"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	searchService  *Service
	historyService *history.Service
}

func (h *handler) unified(c echo.Context) error {
	ctx := c.Request().Context()

	params := UnifiedSearchQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.searchService.Unified(ctx, params.Query, params.LibraryOnly, params.Filter)
	if err != nil {
		return errors.WithStack(err)
	}
	if params.Limit > 0 && len(result.Rows) > params.Limit {
		result.Rows = result.Rows[:params.Limit]
	}

	// Remember the query for suggestions. Failures here never fail the search.
	if err := h.historyService.Record(ctx, params.Query); err != nil {
		c.Logger().Warn(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, result))
}

func (h *handler) suggestions(c echo.Context) error {
	ctx := c.Request().Context()

	params := SuggestionsQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	suggestions, err := h.historyService.Suggest(ctx, params.Prefix, params.Limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, &SuggestionsResponse{Suggestions: suggestions}))
}

func (h *handler) clearHistory(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.historyService.Clear(ctx); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.NoContent(http.StatusNoContent))
}
