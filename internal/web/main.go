package web

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"gorm.io/gorm"

	"github.com/GoStoreRating/GoStoreRating/internal/config"
	accesslog "github.com/GoStoreRating/GoStoreRating/internal/logger/adapter/fiber"
	"github.com/GoStoreRating/GoStoreRating/internal/storefront"
	"github.com/GoStoreRating/GoStoreRating/internal/upload"
	"github.com/GoStoreRating/GoStoreRating/internal/web/handler"
	adminstore "github.com/GoStoreRating/GoStoreRating/internal/web/handler/admin/store"
	"github.com/GoStoreRating/GoStoreRating/internal/web/handler/rating"
	"github.com/GoStoreRating/GoStoreRating/internal/web/handler/store"
	"github.com/GoStoreRating/GoStoreRating/internal/web/middleware/cleanpath"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"

	// MetricsPath serves the prometheus metrics.
	MetricsPath = "/metrics"

	appName = "storerate"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	stores       *storefront.Service
}

// Start starts the web service on the configured port and blocks until the
// server is shut down.
func (s *Service) Start() error {
	var doneFiber = make(chan bool)

	addr := ":" + strconv.Itoa(s.cfg.Webserver.Port)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and then shuts the server down.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown drains and stops the http server. Unless fast shutdown is set,
// checkalive answers 503 for ShutDownTime seconds first so load balancers
// stop sending traffic.
func (s *Service) Shutdown() {
	s.alive.Store(false)

	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// Stores is the store service behind the routes.
func (s *Service) Stores() *storefront.Service {
	return s.stores
}

// New creates the web service. Uploaded images are written to and served
// from cfg.Upload.Dir on fsys.
func New(cfg *config.Config, db *gorm.DB, fsys afero.Fs) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if fsys == nil {
		panic("fs cannot be nil")
	}

	images := upload.New(fsys, cfg.Upload.Dir)
	if err := images.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to init upload dir")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			BodyLimit:      cfg.Webserver.BodyLimit,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   handler.ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	if cfg.Webserver.CleanPath {
		app.Use(cleanpath.New())
	}

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	app.Use(cors.New(cors.Config{AllowOrigins: cfg.Webserver.AllowOrigins}))

	service := &Service{
		cfg:          cfg,
		App:          app,
		fastShutDown: cfg.Webserver.FastShutDown,
		stores:       storefront.New(db, images, cfg.Admin.Token),
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// serve uploaded images
	app.Use(cfg.Upload.PublicPath,
		unescapePath,
		filesystem.New(
			filesystem.Config{
				Root:   afero.NewHttpFs(afero.NewBasePathFs(fsys, cfg.Upload.Dir)),
				Browse: false,
			},
		),
	)

	// init handlers (they register their own routes)
	adminstore.Handler.Init(app, cfg, service.stores)
	store.Handler.Init(app, cfg, service.stores)
	rating.Handler.Init(app, cfg, service.stores)

	log.Debug().Str("app", appName).Int("routes", len(app.GetRoutes())).Msg("web service initialized")

	return service
}

// unescapePath decodes the request path, so uploads with spaces in their
// name are found on disk. Store slugs are decoded by their handlers instead.
func unescapePath(c *fiber.Ctx) error {
	p := c.Path()
	if decoded, err := url.PathUnescape(p); err == nil && decoded != p {
		c.Path(decoded)
	}

	return c.Next()
}
