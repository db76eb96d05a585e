package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/vskvj3/linkd/internal/core"
	"github.com/vskvj3/linkd/internal/health"
	"github.com/vskvj3/linkd/internal/network"
	"github.com/vskvj3/linkd/internal/utils"
)

func main() {
	homeDir, _ := os.UserHomeDir()

	// Parse command-line arguments
	configPtr := flag.String("config", filepath.Join(homeDir, ".linkd", "linkd.yaml"), "Path of the YAML config file")
	portPtr := flag.Int("port", 0, "Port of server")
	healthPortPtr := flag.Int("health_port", 0, "Port of the gRPC health service")
	debugPtr := flag.Bool("debug", false, "Echo debug logs to stdout")
	flag.Parse()

	// Load configurations
	config, err := utils.LoadConfig(*configPtr)
	if err != nil {
		utils.NewLogger("", true).Error("Error loading configuration: " + err.Error())
		os.Exit(1)
	}
	if *portPtr != 0 {
		config.Port = *portPtr
	}
	if *healthPortPtr != 0 {
		config.HealthPort = *healthPortPtr
	}
	config.Debug = config.Debug || *debugPtr

	logger := utils.NewLogger(config.LogFile, config.Debug)
	logger.Info("Loaded configurations from " + *configPtr)
	if err := config.Validate(); err != nil {
		logger.Error("Invalid configuration: " + err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := core.NewDatabase()
	defer db.Close()
	db.StartCleanup(ctx, time.Duration(config.CleanupInterval)*time.Millisecond)

	healthServer := health.NewServer(config.HealthPort)
	go healthServer.StartServer()
	defer healthServer.Stop()

	server, err := network.NewServer(strconv.Itoa(config.Port), core.NewCommandHandler(db), healthServer)
	if err != nil {
		logger.Error("Server creation failed: " + err.Error())
		return
	}
	if err := server.Start(ctx); err != nil {
		logger.Error(err.Error())
		return
	}
	logger.Info("Server stopped")
}
