package handlers

import (
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	appointments *service.AppointmentService
	reports      *service.ReportService
	logger       *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(
	appointments *service.AppointmentService,
	reports *service.ReportService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		appointments: appointments,
		reports:      reports,
		logger:       logger,
	}
}
