package tracking

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iburimskiy/gesture-particles/internal/sim"
)

const (
	maxMessageSize  = 64 << 10
	commandQueueLen = 32
	shutdownTimeout = 2 * time.Second
)

//go:embed tracker.html
var trackerPage []byte

// Stats is the diagnostics snapshot served on /diagnostics.
type Stats struct {
	Status          string `json:"status"`
	Clients         int64  `json:"clients"`
	Observations    uint64 `json:"observations"`
	Overwritten     uint64 `json:"overwritten"`
	Commands        uint64 `json:"commands"`
	DroppedCommands uint64 `json:"droppedCommands"`
	Malformed       uint64 `json:"malformed"`
	LastObservation int64  `json:"lastObservation"`
}

// Server accepts hand observations and UI commands from tracker pages over
// websocket. Readers only hand data off; the consumer drains it with Latest
// and Commands from its own goroutine.
type Server struct {
	log      *log.Logger
	verbose  bool
	upgrader websocket.Upgrader
	box      *mailbox
	commands chan Command

	clients      atomic.Int64
	observations atomic.Uint64
	overwritten  atomic.Uint64
	commandCount atomic.Uint64
	dropped      atomic.Uint64
	malformed    atomic.Uint64
	lastObs      atomic.Int64
}

func NewServer(logger *log.Logger, verbose bool) *Server {
	return &Server{
		log:     logger,
		verbose: verbose,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		box:      newMailbox(),
		commands: make(chan Command, commandQueueLen),
	}
}

// Latest returns the most recent unread observation, if any.
func (s *Server) Latest() (sim.Observation, bool) {
	return s.box.take()
}

// Commands is the queue of UI commands in arrival order.
func (s *Server) Commands() <-chan Command {
	return s.commands
}

func (s *Server) Clients() int64 { return s.clients.Load() }

func (s *Server) Stats() Stats {
	return Stats{
		Status:          "ok",
		Clients:         s.clients.Load(),
		Observations:    s.observations.Load(),
		Overwritten:     s.overwritten.Load(),
		Commands:        s.commandCount.Load(),
		DroppedCommands: s.dropped.Load(),
		Malformed:       s.malformed.Load(),
		LastObservation: s.lastObs.Load(),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(trackerPage)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/diagnostics", func(w http.ResponseWriter, r *http.Request) {
		data, err := json.Marshal(s.Stats())
		if err != nil {
			http.Error(w, "failed to encode", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})
	mux.HandleFunc("/ws", s.serveWS)
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	s.clients.Add(1)
	s.log.Printf("tracker connected from %s", r.RemoteAddr)
	defer func() {
		s.clients.Add(-1)
		conn.Close()
		s.log.Printf("tracker %s disconnected", r.RemoteAddr)
	}()

	conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Printf("read from %s: %v", r.RemoteAddr, err)
			}
			return
		}
		s.dispatch(data)
	}
}

func (s *Server) dispatch(data []byte) {
	msg, err := decode(data)
	if err != nil {
		s.malformed.Add(1)
		s.log.Printf("dropping malformed message: %v", err)
		return
	}
	if msg.obs != nil {
		if s.box.put(*msg.obs) {
			s.overwritten.Add(1)
		}
		s.lastObs.Store(time.Now().UnixMilli())
		s.observations.Add(1)
		if s.verbose {
			s.log.Printf("observation with %d hand(s)", len(msg.obs.Hands))
		}
		return
	}
	select {
	case s.commands <- *msg.cmd:
		s.commandCount.Add(1)
		if s.verbose {
			s.log.Printf("command %d %q", msg.cmd.Kind, msg.cmd.Value)
		}
	default:
		s.dropped.Add(1)
		s.log.Printf("command queue full, dropping %q", msg.cmd.Value)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler()}
	errCh := make(chan error, 1)
	go func() {
		s.log.Printf("tracker page at http://%s/", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
