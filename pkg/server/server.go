package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/harmonia-music/harmonia/pkg/binder"
	"github.com/harmonia-music/harmonia/pkg/config"
	"github.com/harmonia-music/harmonia/pkg/errcodes"
	"github.com/harmonia-music/harmonia/pkg/jobs"
	"github.com/harmonia-music/harmonia/pkg/library"
	"github.com/harmonia-music/harmonia/pkg/providers"
	"github.com/harmonia-music/harmonia/pkg/search"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)

	radios := providers.NewRadioClient(cfg.RadioDirectoryURL)
	podcasts := providers.NewPodcastClient(cfg.PodcastDirectoryURL)

	searchGroup := e.Group("/search")
	search.RegisterRoutesWithGroup(searchGroup, db, cfg, radios, podcasts)

	libraryGroup := e.Group("/library")
	library.RegisterRoutesWithGroup(libraryGroup, db)

	jobsGroup := e.Group("/jobs")
	jobs.RegisterRoutesWithGroup(jobsGroup, db)

	config.RegisterRoutes(e, cfg)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
