package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rzbill/tally/internal/runtime"
	"github.com/rzbill/tally/internal/server/http/controllers"
	logpkg "github.com/rzbill/tally/pkg/log"
)

type Server struct {
	rt      *runtime.Runtime
	srv     *http.Server
	lis     net.Listener
	logger  logpkg.Logger
	limiter *limiterPool
}

// New builds a Server with all routes registered and middleware applied.
func New(rt *runtime.Runtime, logger logpkg.Logger) *Server {
	if logger == nil {
		logger = logpkg.NewLogger()
	}
	mux := http.NewServeMux()
	controllers.NewRegistry(rt, logger.With(logpkg.Component("http"))).RegisterAllRoutes(mux)

	s := &Server{rt: rt, logger: logger}
	var handler http.Handler = mux
	if cfg := rt.Config().RateLimit; cfg.Enabled {
		s.limiter = newLimiterPool(cfg.RPS, cfg.Burst)
		handler = rateLimit(s.limiter, rt.Config().Ingest.TrustProxyHeaders, handler)
	}
	s.srv = &http.Server{Handler: cors(handler)}
	return s
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	if s.limiter != nil {
		s.limiter.startJanitor(ctx)
	}
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Addr returns the bound listener address, or "" before ListenAndServe.
func (s *Server) Addr() string {
	if s.lis == nil {
		return ""
	}
	return s.lis.Addr().String()
}

func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
