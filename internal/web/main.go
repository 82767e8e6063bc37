// Package web implements the registry HTTP service.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/idregistry/idregistry/internal/config"
	fiberlogger "github.com/idregistry/idregistry/internal/logger/adapter/fiber"
	"github.com/idregistry/idregistry/internal/web/handler"
	"github.com/idregistry/idregistry/internal/web/handler/control"
	"github.com/idregistry/idregistry/internal/web/handler/health"
	"github.com/idregistry/idregistry/internal/web/handler/ids"
	settingshandler "github.com/idregistry/idregistry/internal/web/handler/settings"
	"github.com/idregistry/idregistry/internal/web/state"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	state        *state.State
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the registry service.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: report not alive for a while so
	// a load balancer can remove this instance from its active targets.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: waiting %d seconds before stopping",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration, database
// handle and shared state.
func New(cfg *config.Config, db *gorm.DB, st *state.State) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	if st == nil {
		panic("state cannot be nil")
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "idregistry",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   jsonErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: health.Path,
	}))

	service := &Service{
		cfg:   cfg,
		App:   app,
		db:    db,
		state: st,
	}
	service.alive.Store(true)

	// init handlers (they register their own routes)
	mustInit(health.Handler.Init(app, cfg, db, st), "health")
	mustInit(ids.Handler.Init(app, cfg, db, st), "ids")
	mustInit(settingshandler.Handler.Init(app, cfg, db, st), "settings")
	mustInit(control.Handler.Init(app, cfg, db, st), "control")

	return service
}

func mustInit(err error, name string) {
	if err != nil {
		log.Fatal().Err(err).Str("handler", name).Msg("handler init failed")
	}
}

// jsonErrorHandler converts errors escaping the handler chain into the API's
// JSON error envelope.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	switch code {
	case fiber.StatusNotFound:
		return c.Status(code).JSON(handler.NewError("not_found", "Resource not found"))
	case fiber.StatusBadRequest:
		return c.Status(code).JSON(handler.NewError("bad_request", "Invalid request parameters or body"))
	case fiber.StatusMethodNotAllowed:
		return c.Status(code).JSON(handler.NewError("method_not_allowed", "Method not allowed"))
	default:
		return c.Status(code).JSON(handler.NewError("internal_error", err.Error()))
	}
}
