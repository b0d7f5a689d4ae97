package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wisefido-monitor/internal/config"
	"wisefido-monitor/internal/service"
	"wisefido-monitor/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 1. load config
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. init logger
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "wisefido-monitor")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer log.Sync()

	// 3. create service
	monitorService, err := service.NewMonitorService(cfg, log)
	if err != nil {
		log.Fatal("Failed to create monitor service", zap.Error(err))
	}
	defer monitorService.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. start simulation + HTTP
	serviceErrChan := make(chan error, 1)
	serviceDone := make(chan struct{})
	go func() {
		defer close(serviceDone)
		if err := monitorService.Start(ctx); err != nil {
			serviceErrChan <- err
		}
	}()

	// 5. wait for signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	case err := <-serviceErrChan:
		log.Error("Service error", zap.Error(err))
		monitorService.Stop()
		os.Exit(1)
	}

	select {
	case <-serviceDone:
	case <-time.After(10 * time.Second):
		log.Warn("Timed out waiting for monitor service to stop")
	}

	log.Info("Monitor service stopped")
}
