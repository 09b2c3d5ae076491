package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/schoolgrid/timetable/internal/config"
	"github.com/schoolgrid/timetable/internal/controller/httpapi"
	"github.com/schoolgrid/timetable/internal/grid"
	"github.com/schoolgrid/timetable/internal/repository"
	"github.com/schoolgrid/timetable/internal/service"
)

// Server owns the process lifecycle: database pool, migrations, HTTP.
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	pool   *pgxpool.Pool
}

func NewServer(cfg *config.Config, logger *zap.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// Run brings the service up and blocks until SIGINT/SIGTERM.
func (s *Server) Run(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, s.cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("create pgx pool: %w", err)
	}
	defer pool.Close()
	s.pool = pool

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	migrator, err := NewMigrator(pool, s.cfg.MigrationsDir, s.logger)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	days := s.cfg.GridDays
	if len(days) == 0 {
		days = grid.DefaultDays
	}

	periodRepo := repository.NewPeriodRepository(pool)
	sectionRepo := repository.NewSectionRepository(pool)
	examRepo := repository.NewExamRepository(pool)

	periodService := service.NewPeriodService(periodRepo, sectionRepo, days, s.cfg.GridSlots, s.logger)
	assessmentService := service.NewAssessmentService(examRepo, nil, s.logger)

	httpApp := httpapi.NewApp(periodService, assessmentService, s.logger)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.HTTPAddr))
		errCh <- httpApp.Listen(s.cfg.HTTPAddr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		s.logger.Info("Shutting down", zap.String("signal", sig.String()))
		if err := httpApp.Shutdown(); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
	}

	return nil
}
