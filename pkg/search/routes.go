package search

import (
	"github.com/harmonia-music/harmonia/pkg/config"
	"github.com/harmonia-music/harmonia/pkg/history"
	"github.com/harmonia-music/harmonia/pkg/library"
	"github.com/harmonia-music/harmonia/pkg/providers"
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

// RegisterRoutesWithGroup registers search routes on a pre-configured group.
func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB, cfg *config.Config, radios *providers.RadioClient, podcasts *providers.PodcastClient) {
	opts := ServiceOptions{
		RemoteTimeout: cfg.RemoteSearchTimeout,
		RemoteEnabled: func() bool {
			return cfg.UserConfig == nil || cfg.UserConfig.RemoteSearchEnabled
		},
	}
	searchService := NewService(library.NewService(db), radios, podcasts, opts)
	historyService := history.NewService(db)

	h := &handler{
		searchService:  searchService,
		historyService: historyService,
	}

	g.GET("", h.unified)
	g.GET("/suggestions", h.suggestions)
	g.DELETE("/history", h.clearHistory)
}
