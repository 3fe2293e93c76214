// Package server implements the HTTP presentation layer for the
// freeze-time calculator: a small REST API consumed by the embedded
// single-page UI that renders the input form and the fitted curve.
package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/coldsnap/freezecalc/internal/log"
	"github.com/coldsnap/freezecalc/pkg/config"
	"github.com/coldsnap/freezecalc/pkg/estimator"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

var (
	//go:embed all:assets
	content embed.FS
)

// Controller represents the HTTP server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	httpConfig config.HTTPData
	display    config.DisplayData
	estimator  *estimator.Estimator
	Server     http.Server
	FS         *fs.FS
	logger     *zap.SugaredLogger
	handlers   *Handlers
}

// NewController creates a new HTTP server controller. The estimator is
// fixed for the life of the controller; every request evaluates against
// the same immutable dataset.
func NewController(ctx context.Context, wg *sync.WaitGroup, est *estimator.Estimator,
	hc config.HTTPData, dc config.DisplayData, logger *zap.SugaredLogger) (*Controller, error) {

	if est == nil {
		return nil, fmt.Errorf("server requires an estimator")
	}

	// If a listen address was not provided, listen on all interfaces
	if hc.ListenAddr == "" {
		logger.Info("http.listen_addr not provided; defaulting to 0.0.0.0 (all interfaces)")
		hc.ListenAddr = "0.0.0.0"
	}

	// Set default HTTP port if not specified
	if hc.Port == 0 {
		logger.Info("http.port not provided; defaulting to 8080")
		hc.Port = 8080
	}

	defaults := config.DefaultDisplay()
	if dc.InputStep <= 0 {
		dc.InputStep = defaults.InputStep
	}
	if dc.InputMin == 0 && dc.InputMax == 0 {
		dc.InputMin = defaults.InputMin
		dc.InputMax = defaults.InputMax
	}
	if dc.SweepMin == 0 && dc.SweepMax == 0 {
		dc.SweepMin = defaults.SweepMin
		dc.SweepMax = defaults.SweepMax
	}
	if dc.SweepPoints < 2 {
		dc.SweepPoints = defaults.SweepPoints
	}
	if dc.SweepMin >= dc.SweepMax {
		return nil, fmt.Errorf("invalid display sweep range [%g, %g]", dc.SweepMin, dc.SweepMax)
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		httpConfig: hc,
		display:    dc,
		estimator:  est,
		logger:     logger,
	}

	ctrl.handlers = NewHandlers(ctrl)

	// Set up embedded filesystem for assets
	assetsFS, _ := fs.Sub(fs.FS(content), "assets")
	ctrl.FS = &assetsFS

	router := ctrl.setupRouter()
	ctrl.Server.Addr = fmt.Sprintf("%v:%v", hc.ListenAddr, hc.Port)
	ctrl.Server.Handler = router

	return ctrl, nil
}

// StartController starts the HTTP server
func (c *Controller) StartController() error {
	log.Info("Starting HTTP server controller...")
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.httpConfig.TLSCertPath != "" && c.httpConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.httpConfig.TLSCertPath, c.httpConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("HTTP server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("HTTP server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the HTTP server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.Use(c.requestLogger)

	// API endpoints
	router.HandleFunc("/api/estimate", c.handlers.GetEstimate)
	router.HandleFunc("/api/curve", c.handlers.GetCurve)
	router.HandleFunc("/api/anchors", c.handlers.GetAnchors)

	// Template endpoints
	router.HandleFunc("/", c.handlers.ServeIndexTemplate)
	router.HandleFunc("/js/freezecalc.js", c.handlers.ServeJS)

	// Static file serving
	router.PathPrefix("/").Handler(http.FileServer(http.FS(*c.FS)))

	return router
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// requestLogger tags each request with an ID and logs it at debug level
func (c *Controller) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		c.logger.Debugf("%s %s %d %v request_id=%s",
			r.Method, r.URL.Path, recorder.status, time.Since(start), requestID)
	})
}
