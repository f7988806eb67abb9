package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/app"
	"github.com/Freeeeeet/clinic_frontdesk/internal/config"
	"github.com/Freeeeeet/clinic_frontdesk/internal/repository"
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
)

// runtime - общие зависимости всех команд
type runtime struct {
	cfg          *config.Config
	logger       *zap.Logger
	pool         *pgxpool.Pool
	appointments *service.AppointmentService
	reports      *service.ReportService
	doctors      *service.DoctorService
	payments     *service.PaymentService
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := app.NewLogger(cfg)

	pool, err := app.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	doctorRepo := repository.NewDoctorRepository(pool)
	appointmentRepo := repository.NewAppointmentRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool)

	return &runtime{
		cfg:          cfg,
		logger:       logger,
		pool:         pool,
		appointments: service.NewAppointmentService(doctorRepo, appointmentRepo, logger),
		reports:      service.NewReportService(appointmentRepo, paymentRepo, logger),
		doctors:      service.NewDoctorService(doctorRepo, logger),
		payments:     service.NewPaymentService(paymentRepo, appointmentRepo, logger),
	}, nil
}

// migrate применяет миграции перед стартом сервиса
func (r *runtime) migrate(ctx context.Context) error {
	migrator, err := app.NewMigrator(r.pool, r.cfg.MigrationsPath, r.logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

func (r *runtime) Close() {
	r.pool.Close()
	_ = r.logger.Sync()
}
