package fleettracker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/theoremus-urban-solutions/fleet-tracker/internal"
)

// Server exposes an App over HTTP.
type Server struct {
	app        *App
	handler    http.Handler
	httpServer *http.Server
}

// NewServer builds the router and the underlying http.Server.
func NewServer(app *App) *Server {
	s := &Server{app: app}
	sc := app.Config.Server

	c := cors.New(cors.Options{
		AllowedOrigins: sc.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	s.handler = c.Handler(s.routes())

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", sc.Host, sc.Port),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       sc.ReadTimeout(),
		WriteTimeout:      sc.WriteTimeout(),
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/devices", s.handleDevices).Methods(http.MethodGet)
	r.HandleFunc("/api/devices/{id}", s.handleDevice).Methods(http.MethodGet)
	r.HandleFunc("/api/devices/{id}/route", s.handleDeviceRoute).Methods(http.MethodGet)
	r.HandleFunc("/api/summary", s.handleSummary).Methods(http.MethodGet)

	r.HandleFunc("/api/siri/vehicle-monitoring.json", s.handleVehicleMonitoringJSON).Methods(http.MethodGet)
	r.HandleFunc("/api/siri/vehicle-monitoring.xml", s.handleVehicleMonitoringXML).Methods(http.MethodGet)
	r.HandleFunc("/api/gtfsrt/vehicle-positions.pb", s.handleVehiclePositionsPB).Methods(http.MethodGet)
	r.HandleFunc("/api/gtfsrt/vehicle-positions.json", s.handleVehiclePositionsJSON).Methods(http.MethodGet)

	r.HandleFunc("/api/geocode/reverse", s.handleReverseGeocode).Methods(http.MethodGet)
	r.HandleFunc("/api/geocode/search", s.handleAddressSearch).Methods(http.MethodGet)

	r.HandleFunc("/persons", s.handleListPersons).Methods(http.MethodGet)
	r.HandleFunc("/persons", s.handleAddPerson).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Handler returns the CORS-wrapped router.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the configured address and blocks until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errChan := make(chan error, 1)
	go func() {
		internal.Logf("server listening on %s", ln.Addr())
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		internal.Logf("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		internal.Logf("server shut down successfully")
		return nil
	case err := <-errChan:
		return err
	}
}
