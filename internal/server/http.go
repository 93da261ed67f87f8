package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/tilereveal/tilereveal/internal/auth"
	"github.com/tilereveal/tilereveal/internal/catalog"
	"github.com/tilereveal/tilereveal/internal/leaderboard"
	"github.com/tilereveal/tilereveal/internal/session"
	"github.com/tilereveal/tilereveal/pkg/http/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks are handled by the platform edge.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the HTTP front of the game service.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// Deps are the handlers and services the router needs.
type Deps struct {
	Verifier    *auth.Verifier
	Sessions    *session.Handler
	Leaderboard *leaderboard.Handler
	Catalog     *catalog.Handler
	Hub         *ws.Hub
}

// New builds the router and wraps it in an http.Server.
func New(addr string, deps Deps, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()
	authenticate := auth.Middleware(deps.Verifier)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.Handle("POST /v1/sessions", authenticate(http.HandlerFunc(deps.Sessions.HandleStart)))
	mux.Handle("POST /v1/sessions/complete", authenticate(http.HandlerFunc(deps.Sessions.HandleComplete)))
	mux.HandleFunc("GET /v1/leaderboards/", deps.Leaderboard.HandleTop)

	mux.Handle("POST /v1/puzzles", authenticate(http.HandlerFunc(deps.Catalog.HandleCreate)))
	mux.HandleFunc("GET /v1/puzzles", deps.Catalog.HandleList)
	mux.Handle("GET /v1/puzzles/stats", authenticate(http.HandlerFunc(deps.Catalog.HandleCreatorStats)))

	mux.Handle("GET /ws/leaderboard", authenticate(http.HandlerFunc(wsHandler(deps.Hub, logger))))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// wsHandler upgrades an authenticated request and parks the connection in
// the hub until the peer goes away.
func wsHandler(hub *ws.Hub, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.FromContext(r.Context())
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("ws upgrade failed")
			return
		}

		wsConn := ws.NewConnection(conn, logger)
		hub.Register(identity.UserID, wsConn)

		go wsConn.WritePump()
		go func() {
			defer hub.Unregister(identity.UserID)
			wsConn.ReadPump(func(msg ws.Message) error {
				if msg.Type == ws.TypePing {
					return wsConn.Send(ws.Message{Type: ws.TypePong})
				}
				return nil
			})
		}()
	}
}

// Start begins serving. It blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
