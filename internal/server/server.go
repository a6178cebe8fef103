// Package server exposes the packer over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/piwi3910/roomfit/internal/model"
	"k8s.io/klog/v2"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second

	// maxBodyBytes caps request bodies; room requests are small.
	maxBodyBytes = 1 << 20
)

// NewRouter returns the API routes. Every request builds its own packer, so
// handlers share nothing but the default settings.
func NewRouter(settings model.Settings) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", makeHealthReader()).Methods(http.MethodGet)
	r.HandleFunc("/pack", makePackHandler(settings)).Methods(http.MethodPost)
	r.HandleFunc("/compare", makeCompareHandler(settings)).Methods(http.MethodPost)
	return r
}

// Serve runs the API on addr until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, addr string, settings model.Settings) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      NewRouter(settings),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		klog.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		klog.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func makeHealthReader() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			defer r.Body.Close()
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}
}
