// Package server serves story listings over HTTP.
package server

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mseshachalam/hncli/app"
	"github.com/mseshachalam/hncli/flow"
	"github.com/mseshachalam/hncli/present"
	"github.com/mseshachalam/hncli/progress"
)

var feedTypes = map[string]present.Format{
	"rss":  present.RSS,
	"atom": present.Atom,
	"json": present.JSONFeed,
}

// Server runs the story pipeline once per request
type Server struct {
	Gateway app.Gateway
	// Conf supplies defaults that query parameters override.
	Conf app.Config
	Now  func() time.Time
}

// New makes a Server
func New(gw app.Gateway, conf app.Config) *Server {
	return &Server{Gateway: gw, Conf: conf, Now: time.Now}
}

// Router routes every endpoint
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/stories", s.StoriesHandler()).Methods(http.MethodGet)
	r.Handle("/feed/{type}", s.FeedHandler()).Methods(http.MethodGet)
	r.Handle("/sitemap.xml", s.SitemapHandler()).Methods(http.MethodGet)
	return r
}

// Handler is the router behind the logging and rate limit middlewares
func (s *Server) Handler() (http.Handler, error) {
	limited, err := WithRateLimit(s.Conf.RateLimit, s.Router())
	if err != nil {
		return nil, errors.Wrap(err, "rate limit")
	}
	return WithRequestLogging(limited), nil
}

// StoriesHandler serves stories as json
func (s *Server) StoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, present.JSON)
	}
}

// FeedHandler serves rss|atom|json feeds of stories
func (s *Server) FeedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, ok := feedTypes[mux.Vars(r)["type"]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.serve(w, r, format)
	}
}

// SitemapHandler serves sitemap.xml of story links
func (s *Server) SitemapHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serve(w, r, present.Sitemap)
	}
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, format present.Format) {
	conf := s.Conf
	conf.Format = string(format)
	conf.ArchivePath = ""
	q := r.URL.Query()
	if m := q.Get("mode"); m != "" {
		conf.Mode = m
	}
	if c := q.Get("count"); c != "" {
		n, err := strconv.Atoi(c)
		if err != nil {
			http.Error(w, (&app.ValidationError{Field: "count", Value: c, Reason: "must be an integer"}).Error(), http.StatusBadRequest)
			return
		}
		conf.Count = n
	}

	run, err := flow.Prepare(conf, s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	counter := &progress.Counter{}
	b := flow.NewBringer(conf, s.Gateway, counter)

	var buf bytes.Buffer
	err = flow.Flow(r.Context(), b, run, &buf)
	total, advanced, _ := counter.Counts()
	logrus.WithFields(logrus.Fields{"planned": total, "attempted": advanced}).Debug("pipeline done")
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	if _, err := buf.WriteTo(w); err != nil {
		logrus.WithError(err).Warn("write response")
	}
}

func (s *Server) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func statusOf(err error) int {
	var serr *flow.StageError
	if errors.As(err, &serr) {
		switch serr.Stage {
		case flow.StageValidation:
			return http.StatusBadRequest
		case flow.StageListing:
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// ListenAndServe serves h on addr until ctx is done
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
