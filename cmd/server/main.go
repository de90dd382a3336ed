package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"battwatch.xyz/battery-health-service/pkg/common"
	"battwatch.xyz/battery-health-service/pkg/config"
	"battwatch.xyz/battery-health-service/pkg/db"
	bhsHttp "battwatch.xyz/battery-health-service/pkg/http"
	"battwatch.xyz/battery-health-service/pkg/maintenance"
	"battwatch.xyz/battery-health-service/pkg/models"
	"battwatch.xyz/battery-health-service/pkg/sim"
	"battwatch.xyz/battery-health-service/pkg/store"
	"battwatch.xyz/battery-health-service/pkg/stream"
)

var demoBatteries = []models.BatteryRecord{
	{Name: "Main Battery Pack", SerialNumber: "BAT-2023-001", InitialCapacity: 5000, CurrentCapacity: 4750, HealthPercentage: 95, CycleCount: 124, ExpectedCycleLife: 800},
	{Name: "Backup Battery", SerialNumber: "BAT-2023-002", InitialCapacity: 4000, CurrentCapacity: 3400, HealthPercentage: 85, CycleCount: 210, ExpectedCycleLife: 600},
	{Name: "Auxiliary Cell A", SerialNumber: "BAT-2022-014", InitialCapacity: 3500, CurrentCapacity: 2625, HealthPercentage: 75, CycleCount: 480, ExpectedCycleLife: 500},
	{Name: "Auxiliary Cell B", SerialNumber: "BAT-2021-032", InitialCapacity: 3500, CurrentCapacity: 2240, HealthPercentage: 64, CycleCount: 612, ExpectedCycleLife: 500},
}

func seedIfEmpty(s store.Store) error {
	batteries, err := s.ListBatteries()
	if err != nil {
		return err
	}
	if len(batteries) > 0 {
		return nil
	}

	now := time.Now()
	for i := range demoBatteries {
		battery := demoBatteries[i]
		battery.Status = models.StatusForHealth(battery.HealthPercentage)
		battery.InstallationDate = now.AddDate(0, -6*(i+1), 0)
		battery.LastUpdated = now
		if _, err := s.CreateBattery(&battery); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	bhsDbType := os.Getenv(common.EnvKeyBHSDBType)
	switch bhsDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	case "postgres":
		dbInstance = db.GetInstance(db.UsePostgresDialector())
	default:
		log.Fatal("Unknown BHS_DB_TYPE: " + bhsDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyBHSHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyBHSDefaultRate), 64); err != nil {
		log.Fatal("Invalid BHS_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyBHSDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid BHS_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := common.GetLogger()

	batteryStore := store.NewGormStore(dbInstance)
	if err := seedIfEmpty(batteryStore); err != nil {
		log.Fatalf("store not reachable: %v", err)
	}

	broadcaster := stream.NewBroadcaster(batteryStore)

	simulator := sim.New(batteryStore, broadcaster, cfg.SimulatorOptions())
	if err := simulator.Start(); err != nil {
		log.Fatalf("failed to start simulator: %v", err)
	}
	logger.Info("simulator started",
		zap.Duration("tick_interval", cfg.Simulator.TickInterval),
		zap.Duration("bulk_interval", cfg.Simulator.BulkInterval),
		zap.Bool("demo_jumps", cfg.Simulator.DemoJumps))

	maint := maintenance.New(batteryStore, maintenance.Options{
		HistoryRetentionDays: cfg.Maintenance.HistoryRetentionDays,
		RunAt:                cfg.Maintenance.RunAt,
	})
	if err := maint.Start(); err != nil {
		log.Fatalf("failed to start maintenance scheduler: %v", err)
	}
	logger.Info("maintenance scheduler started",
		zap.Int("history_retention_days", cfg.Maintenance.HistoryRetentionDays),
		zap.String("run_at", cfg.Maintenance.RunAt))

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	rs := &bhsHttp.RestfulServer{
		Server:           gin.Default(),
		Store:            batteryStore,
		Broadcaster:      broadcaster,
		RateLimiterStore: bhsHttp.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	server := &http.Server{
		Addr:    httpHostPort,
		Handler: cors.AllowAll().Handler(rs.Server),
	}

	go func() {
		logger.Info("Starting HTTP server on: " + httpHostPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	simulator.Stop()
	maint.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("http server shutdown failed: %v", err)
	}
	logger.Info("shutdown complete")
}
