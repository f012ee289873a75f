package server

import (
	"net/http"

	"github.com/jlindh/studiocast/config"
	"github.com/jlindh/studiocast/server/api"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	*config.Config

	handler http.Handler
}

func New(cfg *config.Config) (*Server, error) {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Use(withAuthorizers(cfg))

	h, err := api.New(cfg)

	if err != nil {
		return nil, err
	}

	r.Route("/v1", h.Attach)

	s := &Server{
		Config: cfg,

		handler: otelhttp.NewHandler(r, "http"),
	}

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.Address, s)
}

func withAuthorizers(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(cfg.Authorizers) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			for _, a := range cfg.Authorizers {
				ctx, err := a.Authenticate(r.Context(), r)

				if err != nil {
					continue
				}

				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			w.WriteHeader(http.StatusUnauthorized)
		})
	}
}
