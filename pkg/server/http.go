package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/eirsyl/shardadvisor/pkg/runner"
	"github.com/eirsyl/shardadvisor/pkg/utils"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"
)

/**
 * This file contains the http debug server used by the serve command to
 * export prometheus metrics and the last advisor report.
 */

// ReportSource returns the last advisor report.
type ReportSource interface {
	Last() (*runner.Report, error)
}

// HTTPServer exposes an http server with prometheus monitoring enabled
type HTTPServer struct {
	server *http.Server
}

// NewHTTPServer creates a new HTTPServer. db is optional, the backup endpoint
// is only registered when a bolt cache is used.
func NewHTTPServer(listenAddr string, buildInfo map[string]string, reports ReportSource, db *bolt.DB) (*HTTPServer, error) {
	r := mux.NewRouter()

	links := []string{"/metrics", "/suggestions"}
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/suggestions", suggestionsHandleFunc(reports)).Methods(http.MethodGet)
	if db != nil {
		r.HandleFunc("/backup", backupHandleFunc(db)).Methods(http.MethodGet)
		links = append(links, "/backup")
	}
	r.HandleFunc("/", utils.BuildInformationHandler(buildInfo, links...))

	srv := &http.Server{
		Handler:      r,
		Addr:         listenAddr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &HTTPServer{server: srv}, nil
}

// Handler returns the router, used by tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

// Run starts the server and listens for incoming connections
func (s *HTTPServer) Run() error {
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		// Don't fail if the server is stopped gracefully
		return nil
	}
	return err
}

// GetListenAddr returns the address the server is listening on
func (s *HTTPServer) GetListenAddr() string {
	return s.server.Addr
}

// Exit closes the server gracefully
func (s *HTTPServer) Exit() error {
	return s.server.Shutdown(context.Background())
}

func suggestionsHandleFunc(reports ReportSource) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		report, err := reports.Last()
		if report == nil {
			msg := "no advisor run has completed yet"
			if err != nil {
				msg = err.Error()
			}
			http.Error(w, msg, http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			log.Warnf("Could not encode report: %v", err)
		}
	}
}

func backupHandleFunc(db *bolt.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := db.View(func(tx *bolt.Tx) error {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Disposition", `attachment; filename="shardadvisor.db"`)
			w.Header().Set("Content-Length", strconv.Itoa(int(tx.Size())))
			_, err := tx.WriteTo(w)
			return err
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
