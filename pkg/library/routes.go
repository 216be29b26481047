package library

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers library snapshot routes on a
// pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	libraryService := NewService(db)

	h := &handler{
		libraryService: libraryService,
	}

	g.GET("/items", h.list)
	g.POST("/items", h.add)
	g.DELETE("/items/:type/:id", h.remove)
	g.PUT("/items/:type/:id/favorite", h.setFavorite)
}
