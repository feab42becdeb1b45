// Package restserver exposes the simulation service over HTTP: scenario
// get/set, instantaneous snapshots, day profiles, annual runs, and the
// cost and carbon summary.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/jrbassindale1/roomclimate/internal/log"
	"github.com/jrbassindale1/roomclimate/internal/sim"
)

// Config holds the REST listener settings.
type Config struct {
	ListenAddr string `yaml:"listen_addr,omitempty" json:"listenAddr"`
	Port       int    `yaml:"port,omitempty" json:"port"`
}

// Controller represents the REST server controller
type Controller struct {
	ctx      context.Context
	wg       *sync.WaitGroup
	service  *sim.Service
	Server   http.Server
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewController creates a new REST server controller
func NewController(ctx context.Context, wg *sync.WaitGroup, service *sim.Service, cfg Config, logger *zap.SugaredLogger) (*Controller, error) {
	if service == nil {
		return nil, fmt.Errorf("REST server requires a simulation service")
	}

	if cfg.ListenAddr == "" {
		logger.Info("rest.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		cfg.ListenAddr = "0.0.0.0"
	}
	if cfg.Port == 0 {
		logger.Info("rest.port not provided; defaulting to 8080")
		cfg.Port = 8080
	}

	ctrl := &Controller{
		ctx:     ctx,
		wg:      wg,
		service: service,
		logger:  logger,
	}
	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", cfg.ListenAddr, cfg.Port)
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Info("Starting REST server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()
		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			log.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(c.loggingMiddleware)

	router.HandleFunc("/api/scenario", c.handlers.GetScenario).Methods(http.MethodGet)
	router.HandleFunc("/api/scenario", c.handlers.SetScenario).Methods(http.MethodPost, http.MethodPut)
	router.HandleFunc("/api/snapshot", c.handlers.GetSnapshot).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/api/day", c.handlers.GetDay).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/api/day/{date}", c.handlers.GetDay).Methods(http.MethodGet)
	router.HandleFunc("/api/annual", c.handlers.GetAnnual).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/api/summary", c.handlers.GetSummary).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/api/health", c.handlers.GetHealth).Methods(http.MethodGet)

	return router
}

// loggingMiddleware logs every request at debug level.
func (c *Controller) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		c.logger.Debugw("request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}
