package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"

	"github.com/vskvj3/linkd/internal/core"
	"github.com/vskvj3/linkd/internal/health"
	"github.com/vskvj3/linkd/internal/utils"
)

type Server struct {
	CommandHandler *core.CommandHandler
	Port           string

	health *health.Server

	mu    sync.Mutex
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// NewServer wires a TCP server to handler. hs may be nil when no health
// endpoint runs.
func NewServer(port string, handler *core.CommandHandler, hs *health.Server) (*Server, error) {
	if handler == nil || handler.Database == nil {
		return nil, fmt.Errorf("database is not initialized")
	}
	return &Server{
		CommandHandler: handler,
		Port:           port,
		health:         hs,
		conns:          make(map[net.Conn]struct{}),
	}, nil
}

// Start binds the configured port, falling back to a random one, and serves
// until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	logger := utils.GetLogger()

	listener, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		logger.Warn("Port " + s.Port + " unavailable. Selecting a random port...")
		listener, err = net.Listen("tcp", ":0")
		if err != nil {
			return fmt.Errorf("error starting server: %w", err)
		}
	}
	return s.Serve(ctx, listener)
}

// Serve accepts clients on listener until ctx is cancelled, then closes
// every open connection and waits for their handlers.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	logger := utils.GetLogger()
	logger.Info("Server is listening on " + listener.Addr().String())

	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	if s.health != nil {
		s.health.SetServing(true)
		defer s.health.SetServing(false)
	}

	defer s.closeConns()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				logger.Info("Listener closed, shutting down")
				return nil
			}
			logger.Error("Error accepting connection: " + err.Error())
			continue
		}
		logger.Info("Accepted client: " + conn.RemoteAddr().String())

		s.mu.Lock()
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.HandleConnection(conn)
		}()
	}
}

func (s *Server) closeConns() {
	s.mu.Lock()
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// HandleConnection serves one client: a stream of msgpack request maps,
// each answered with one msgpack response map.
func (s *Server) HandleConnection(conn net.Conn) {
	logger := utils.GetLogger()
	defer func() {
		logger.Info("Client disconnected: " + conn.RemoteAddr().String())
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	decoder := utils.NewRequestDecoder(bufio.NewReader(conn))
	for {
		var request map[string]interface{}
		if err := decoder.Decode(&request); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				logger.Info("Client closed the connection: " + conn.RemoteAddr().String())
			case errors.Is(err, net.ErrClosed):
			default:
				// The stream cannot be resynchronised after a bad frame.
				logger.Error("Failed to decode request: " + err.Error())
				s.sendError(conn, "malformed request")
			}
			return
		}

		command, _ := request["command"].(string)
		if core.IsWriteCommand(command) {
			logger.Debugf("Write %s from %s", command, conn.RemoteAddr())
		}

		response, err := s.CommandHandler.HandleCommand(request)
		if err != nil {
			s.sendError(conn, err.Error())
			continue
		}
		s.sendResponse(conn, response)
	}
}

// sendResponse serializes the response and sends it to the client
func (s *Server) sendResponse(conn net.Conn, response map[string]interface{}) {
	logger := utils.GetLogger()
	data, err := utils.EncodeResponse(response)
	if err != nil {
		logger.Error("Failed to encode response: " + err.Error())
		return
	}
	if _, err := conn.Write(data); err != nil {
		logger.Error("Failed to send response: " + err.Error())
	}
}

// sendError sends an error message to the client
func (s *Server) sendError(conn net.Conn, errorMessage string) {
	response := map[string]interface{}{"status": "ERROR", "message": errorMessage}
	s.sendResponse(conn, response)
}
