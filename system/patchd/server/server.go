package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"go.lsp.dev/jsonrpc2"

	"github.com/treedoc-format/go-treedoc/patch"
)

// Spec holds the runtime specification for the server.
// Config contains the serializable settings loaded from a file.
type Spec struct {
	Config *Config
	Log    *slog.Logger
}

// Server serves document queries, patches and diffs over JSON-RPC 2.0.
type Server struct {
	Spec Spec

	applier *patch.Applier

	listener net.Listener
	connSeq  atomic.Int64
	wg       sync.WaitGroup
	closed   atomic.Bool
}

// New creates a new Server instance.
func New(spec *Spec) *Server {
	if spec.Config == nil {
		spec.Config = DefaultConfig()
	}
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: spec.Config.slogLevel(),
		}))
	}
	var opts []patch.Option
	for _, ext := range spec.Config.Extensions {
		opts = append(opts, patch.WithExtension(ext))
	}
	return &Server{
		Spec:    *spec,
		applier: patch.NewApplier(opts...),
	}
}

// Start begins listening on the configured address and accepting
// connections in a separate goroutine.
func (s *Server) Start() error {
	if s.listener != nil {
		return fmt.Errorf("server already running")
	}
	listener, err := net.Listen("tcp", s.Spec.Config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.Spec.Config.Addr, err)
	}
	s.listener = listener
	s.Spec.Log.Info("patchd listening", "addr", listener.Addr().String())
	go s.serve()
	return nil
}

// TCPAddr returns the listener's address, or the empty string if not
// running.
func (s *Server) TCPAddr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) serve() {
	for {
		nc, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() {
				return
			}
			s.Spec.Log.Error("accept error", "error", err)
			continue
		}
		s.wg.Add(1)
		go s.handleConn(nc)
	}
}

func (s *Server) handleConn(nc net.Conn) {
	defer s.wg.Done()

	seq := s.connSeq.Add(1)
	connID := fmt.Sprintf("conn-%d", seq)
	s.Spec.Log.Debug("new connection", "conn", connID, "remote", nc.RemoteAddr().String())

	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(nc))
	ctx := context.Background()
	conn.Go(ctx, s.handle)
	<-conn.Done()
	if err := conn.Err(); err != nil {
		s.Spec.Log.Debug("connection closed", "conn", connID, "error", err)
		return
	}
	s.Spec.Log.Debug("connection closed", "conn", connID)
}

// Close shuts down the listener and waits for in-flight connections.
func (s *Server) Close() error {
	if s.listener == nil || s.closed.Swap(true) {
		return nil
	}
	err := s.listener.Close()
	s.wg.Wait()
	s.Spec.Log.Info("patchd stopped")
	return err
}
