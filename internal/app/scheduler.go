package app

import (
	"context"
	"time"

	"github.com/Freeeeeet/clinic_frontdesk/internal/grouping"
	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
	"go.uber.org/zap"
)

// StatusReporter источник сгруппированных по статусу записей
type StatusReporter interface {
	AppointmentsByStatus(ctx context.Context, cfg grouping.Config, term string) (*service.GroupedView[model.Appointment], error)
}

// Digest периодически пишет в лог сводку записей по статусам
type Digest struct {
	reports  StatusReporter
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewDigest создаёт фоновую задачу сводки
func NewDigest(reports StatusReporter, interval time.Duration, logger *zap.Logger) *Digest {
	return &Digest{
		reports:  reports,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает задачу в отдельной горутине
func (d *Digest) Start(ctx context.Context) {
	d.logger.Info("Starting appointment digest", zap.Duration("interval", d.interval))

	go d.run(ctx)
}

// Stop останавливает задачу
func (d *Digest) Stop() {
	d.logger.Info("Stopping appointment digest")
	close(d.stopChan)
}

func (d *Digest) run(ctx context.Context) {
	// Первый запуск сразу при старте
	d.Report(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			d.Report(ctx)
		case <-d.stopChan:
			d.logger.Info("Appointment digest stopped")
			return
		case <-ctx.Done():
			d.logger.Info("Appointment digest cancelled")
			return
		}
	}
}

// Report формирует одну сводку
func (d *Digest) Report(ctx context.Context) {
	view, err := d.reports.AppointmentsByStatus(ctx, service.DefaultAppointmentConfig(), "")
	if err != nil {
		d.logger.Error("Failed to build appointment digest", zap.Error(err))
		return
	}

	stats := view.Statistics
	fields := []zap.Field{
		zap.Int("total_groups", stats.TotalGroups),
		zap.Int("total_records", stats.TotalRecords),
		zap.String("largest_group", stats.Largest.Name),
		zap.String("smallest_group", stats.Smallest.Name),
	}
	for _, key := range view.Groups.Keys() {
		fields = append(fields, zap.Int("status_"+key, stats.GroupSizes[key]))
	}

	d.logger.Info("Appointment digest", fields...)
}
