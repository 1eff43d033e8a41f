package main

import (
	"context"
	"log"
	"time"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"
	"ems/backend/internal/commands"
	"ems/backend/internal/pkg/config"
	"ems/backend/internal/pkg/repository/postgresql"
	"ems/backend/internal/pkg/scheduler"
	"ems/backend/internal/router"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalln("config error:", err)
	}

	postgresDB := postgresql.New(
		cfg.DBUsername,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DisableTLS,
	)

	commands.MigrateUP(postgresDB)

	redisDB := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	a, err := auth.New(cfg.PrivateKeyFile)
	if err != nil {
		log.Fatalln("auth error:", err)
	}

	app := web.NewApp()
	r := router.NewRouter(app, postgresDB, redisDB, cfg.ServerPort, a)

	// Refresh the cached dashboard snapshot in the background so wall
	// displays read derived state without hitting postgres per request.
	attendanceRepo := r.AttendanceRepository()
	snapshotJob := scheduler.NewJob("attendance-dashboard", 30*time.Second, func(ctx context.Context) error {
		return attendanceRepo.SnapshotToday(ctx)
	})
	snapshotJob.Start(context.Background())
	defer snapshotJob.Stop()

	if err := r.Init(); err != nil {
		log.Fatalln("server error:", err)
	}
}
