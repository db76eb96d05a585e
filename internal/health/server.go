package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/vskvj3/linkd/internal/utils"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported for the list server.
const ServiceName = "linkd"

// Server exposes grpc.health.v1.Health for the list server.
type Server struct {
	Port       int
	grpcServer *grpc.Server
	status     *grpchealth.Server
}

// NewServer builds the gRPC server. The list service starts NOT_SERVING.
func NewServer(port int) *Server {
	status := grpchealth.NewServer()
	status.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	status.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, status)
	reflection.Register(grpcServer)

	return &Server{Port: port, grpcServer: grpcServer, status: status}
}

// SetServing flips the reported status of the list server.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.status.SetServingStatus("", st)
	s.status.SetServingStatus(ServiceName, st)
}

// Serve blocks serving health checks on lis.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// StartServer listens on the configured port and serves until Stop.
func (s *Server) StartServer() {
	logger := utils.GetLogger()
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
	if err != nil {
		logger.Error("Failed to start health server: " + err.Error())
		return
	}

	logger.Infof("Health server listening on %s", lis.Addr())
	if err := s.Serve(lis); err != nil {
		logger.Error("Health server stopped: " + err.Error())
	}
}

// Stop reports NOT_SERVING to watchers and stops the gRPC server.
func (s *Server) Stop() {
	s.status.Shutdown()
	s.grpcServer.GracefulStop()
}

// Client queries a health server.
type Client struct {
	Conn   *grpc.ClientConn
	client healthpb.HealthClient
}

// NewClient connects to a health server at address.
func NewClient(address string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &Client{Conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Check reports whether the list server is serving.
func (c *Client) Check(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	resp, err := c.client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		return false, err
	}
	return resp.GetStatus() == healthpb.HealthCheckResponse_SERVING, nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.Conn.Close()
}
