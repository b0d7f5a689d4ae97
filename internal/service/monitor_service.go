package service

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/http"
	"time"

	"wisefido-monitor/internal/alarm"
	"wisefido-monitor/internal/config"
	httpapi "wisefido-monitor/internal/http"
	"wisefido-monitor/internal/metrics"
	"wisefido-monitor/internal/monitor"
	"wisefido-monitor/internal/patient"
	"wisefido-monitor/internal/publisher"
	"wisefido-monitor/internal/repository"
	"wisefido-monitor/internal/simulator"
	"wisefido-monitor/pkg/database"
	"wisefido-monitor/pkg/mqtt"
	rediscommon "wisefido-monitor/pkg/redis"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// shutdownTimeout grace period for in-flight HTTP requests on stop
const shutdownTimeout = 5 * time.Second

// MonitorService wires the simulation, its sinks and the HTTP API
type MonitorService struct {
	config *config.Config
	logger *zap.Logger
	runID  string

	monitor *monitor.Monitor
	router  *httpapi.Router
	server  *apiServer

	// optional sinks
	redisClient *rediscommon.Client
	db          *sql.DB
	mqttClient  *mqtt.Client
}

// NewMonitorService seeds the patients and connects every enabled sink.
// An enabled sink that cannot connect is an error.
func NewMonitorService(cfg *config.Config, logger *zap.Logger) (*MonitorService, error) {
	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	// 1. simulation core
	sim := simulator.New(simulator.NewSeededSource(cfg.Simulation.Seed), nil, 0)
	store := patient.NewStore(sim.NewPatients(patient.DefaultSeeds()))
	mon := monitor.New(sim, store, alarm.NewRegistry(), logger)

	s := &MonitorService{
		config:  cfg,
		logger:  logger,
		runID:   runID,
		monitor: mon,
	}

	// 2. Redis: realtime cache + alarm stream
	if cfg.Redis.Enabled {
		client, err := rediscommon.Connect(context.Background(), &cfg.Redis.RedisConfig, rediscommon.DefaultDialTimeout)
		if err != nil {
			return nil, err
		}
		s.redisClient = client

		ttl := time.Duration(cfg.Redis.TTL) * time.Second
		mon.AddTickSink(publisher.NewCacheManager(publisher.NewRedisKVStore(client), cfg.Redis.KeyPrefix, ttl, logger))
		mon.AddAlarmSink(publisher.NewAlarmStream(client, cfg.Redis.AlarmStream, runID, logger))
		logger.Info("Redis sinks enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// 3. PostgreSQL: alarm audit trail
	if cfg.Database.Enabled {
		db, err := database.NewPostgresDB(&cfg.Database.DatabaseConfig)
		if err != nil {
			s.Stop()
			return nil, err
		}
		s.db = db

		audit := repository.NewAlarmAuditRepository(db, runID, logger)
		if err := audit.EnsureSchema(context.Background()); err != nil {
			s.Stop()
			return nil, err
		}
		mon.AddAlarmSink(audit)
		logger.Info("Alarm audit enabled", zap.String("host", cfg.Database.Host))
	}

	// 4. MQTT: alarm notifications
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewClient(&cfg.MQTT.MQTTConfig, logger)
		if err != nil {
			s.Stop()
			return nil, err
		}
		s.mqttClient = client
		mon.AddAlarmSink(publisher.NewMQTTNotifier(client, cfg.MQTT.AlarmTopic, cfg.MQTT.QoS, runID, logger))
	}

	// 5. HTTP (+ metrics)
	s.router = httpapi.NewRouter(logger)
	s.router.RegisterHealthRoutes()
	s.router.RegisterMonitorRoutes(httpapi.NewMonitorHandler(mon, logger))
	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector("wisefido_monitor")
		mon.AddTickSink(collector)
		mon.AddAlarmSink(collector)
		s.router.RegisterMetricsRoutes(collector.Handler())
	}
	s.server = newAPIServer(s.router, shutdownTimeout, logger)

	return s, nil
}

// Monitor simulation controller
func (s *MonitorService) Monitor() *monitor.Monitor {
	return s.monitor
}

// Handler HTTP handler of the API
func (s *MonitorService) Handler() http.Handler {
	return s.router
}

// Start runs the simulation loop and the HTTP server until ctx is cancelled
// or the server fails. The server is shut down before Start returns.
func (s *MonitorService) Start(ctx context.Context) error {
	if s.config.Simulation.TickInterval <= 0 {
		return fmt.Errorf("invalid tick interval: %s", s.config.Simulation.TickInterval)
	}
	l, err := net.Listen("tcp", s.config.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.HTTP.Addr, err)
	}
	return s.serve(ctx, l)
}

func (s *MonitorService) serve(ctx context.Context, l net.Listener) error {
	s.logger.Info("Starting monitor service",
		zap.Duration("tick_interval", s.config.Simulation.TickInterval),
		zap.Bool("redis", s.redisClient != nil),
		zap.Bool("database", s.db != nil),
		zap.Bool("mqtt", s.mqttClient != nil),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	simDone := make(chan struct{})
	go func() {
		defer close(simDone)
		if err := s.monitor.Run(ctx, s.config.Simulation.TickInterval); err != nil {
			s.logger.Error("Simulation loop failed", zap.Error(err))
		}
	}()

	err := s.server.Run(ctx, l)
	cancel()
	<-simDone
	return err
}

// Stop releases the sink connections
func (s *MonitorService) Stop() error {
	s.logger.Info("Stopping monitor service")

	if s.mqttClient != nil {
		s.mqttClient.Disconnect()
	}
	if err := database.Close(s.db); err != nil {
		s.logger.Error("Failed to close database", zap.Error(err))
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			s.logger.Error("Failed to close redis", zap.Error(err))
		}
	}
	return nil
}
