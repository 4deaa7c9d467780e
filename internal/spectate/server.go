// Package spectate streams live table snapshots to websocket viewers.
package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-pinball/internal/pinball"
)

// ProtocolVersion is sent with every frame.
const ProtocolVersion = 1

const writeWait = 2 * time.Second

// Source provides the latest snapshot. *pinball.Simulation satisfies it.
type Source interface {
	Snapshot() *pinball.Snapshot
}

// Frame is the JSON message sent to viewers.
type Frame struct {
	Ver      int               `json:"ver"`
	Type     string            `json:"type"`
	Snapshot *pinball.Snapshot `json:"snapshot"`
}

// Config tunes a Server.
type Config struct {
	Interval time.Duration // how often each viewer is offered a frame
	Logger   *log.Logger
}

// Server sends snapshots to every connected viewer. Each viewer runs its
// own render-rate loop that reads the published snapshot, so a slow viewer
// never holds up the simulation or other viewers.
type Server struct {
	src      Source
	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader
	viewers  atomic.Int64
}

// NewServer creates a spectator server for src.
func NewServer(src Source, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}

	return &Server{
		src:      src,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Viewers returns the number of connected viewers.
func (s *Server) Viewers() int64 {
	return s.viewers.Load()
}

// Handler routes /ws to the snapshot stream and /health to a status probe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.HandleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.src.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"status":  "ok",
		"viewers": s.Viewers(),
		"tick":    snap.Tick,
		"phase":   snap.Phase,
	})
}

// HandleWS upgrades the request and streams frames until the viewer leaves.
// Frames are only sent when the snapshot tick has advanced.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	defer conn.Close()

	n := s.viewers.Add(1)
	defer s.viewers.Add(-1)
	s.logger.Info("viewer connected", "remote", r.RemoteAddr, "viewers", n)

	// Viewers never send anything meaningful; reading only detects the close.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastTick uint64
	first := true
	for {
		snap := s.src.Snapshot()
		if first || snap.Tick != lastTick {
			if err := s.send(conn, snap); err != nil {
				s.logger.Info("viewer dropped", "remote", r.RemoteAddr, "err", err)
				return
			}
			first = false
			lastTick = snap.Tick
		}

		select {
		case <-gone:
			s.logger.Info("viewer disconnected", "remote", r.RemoteAddr)
			return
		case <-r.Context().Done():
			conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) send(conn *websocket.Conn, snap *pinball.Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(Frame{Ver: ProtocolVersion, Type: "snapshot", Snapshot: snap})
}

// ListenAndServe serves the spectator endpoints on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("spectator feed listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
