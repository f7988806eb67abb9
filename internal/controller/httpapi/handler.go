// Package httpapi - JSON API стойки регистрации поверх echo
package httpapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/model"
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
)

type Handler struct {
	appointments *service.AppointmentService
	reports      *service.ReportService
	logger       *zap.Logger
}

func NewHandler(appointments *service.AppointmentService, reports *service.ReportService, logger *zap.Logger) *Handler {
	return &Handler{
		appointments: appointments,
		reports:      reports,
		logger:       logger,
	}
}

// ServerOption настраивает NewServer
type ServerOption func(e *echo.Echo, logger *zap.Logger)

// WithRateLimit включает ограничение частоты запросов с одного IP
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(e *echo.Echo, logger *zap.Logger) {
		e.Use(RateLimit(rps, burst, logger))
	}
}

// NewServer собирает echo с middleware и маршрутами
func NewServer(h *Handler, logger *zap.Logger, opts ...ServerOption) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(Recovery(logger))
	e.Use(RequestLogger(logger))
	for _, opt := range opts {
		opt(e, logger)
	}

	h.RegisterRoutes(e.Group("/api/v1"))

	return e
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	doctors := api.Group("/doctors/:id")
	doctors.GET("/slots", h.DaySlots)
	doctors.GET("/recommendations", h.Recommendations)
	doctors.GET("/next-available", h.NextAvailable)

	appointments := api.Group("/appointments")
	appointments.GET("/grouped", h.GroupedAppointments)
	appointments.POST("/validate", h.Validate)
	appointments.POST("", h.Book)
	appointments.POST("/series", h.BookSeries)
	appointments.POST("/duplicate", h.DuplicateToNextWeek)
	appointments.POST("/:id/duplicate", h.DuplicateAppointment)
	appointments.PATCH("/:id/status", h.UpdateStatus)

	api.GET("/payments/grouped", h.GroupedPayments)
}

// -- Doctor schedule --

func (h *Handler) DaySlots(c echo.Context) error {
	date, err := model.ParseDate(c.QueryParam("date"))
	if err != nil {
		return badRequest(err)
	}

	slots, err := h.appointments.DaySlots(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) Recommendations(c echo.Context) error {
	date, err := model.ParseDate(c.QueryParam("date"))
	if err != nil {
		return badRequest(err)
	}

	duration := defaultDuration
	if raw := c.QueryParam("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(err)
		}
	}

	slots, err := h.appointments.RecommendSlots(c.Request().Context(), c.Param("id"), date, duration)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *Handler) NextAvailable(c echo.Context) error {
	from, err := model.ParseDate(c.QueryParam("from"))
	if err != nil {
		return badRequest(err)
	}

	date, ok, err := h.appointments.NextAvailableDate(c.Request().Context(), c.Param("id"), from, c.QueryParam("time"))
	if err != nil {
		return fail(err)
	}
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no availability found")
	}
	return c.JSON(http.StatusOK, nextAvailableResponse{Date: model.FormatDate(date)})
}

// -- Appointments --

func (h *Handler) Validate(c echo.Context) error {
	var req validateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	date, err := model.ParseDate(req.Date)
	if err != nil {
		return badRequest(err)
	}

	conflicts, err := h.appointments.ValidateAppointment(c.Request().Context(), service.ValidationRequest{
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Duration:  req.Duration,
		ExcludeID: req.ExcludeID,
	})
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, conflictsResponse{Conflicts: conflicts})
}

func (h *Handler) Book(c echo.Context) error {
	var req appointmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	draft, err := req.toDraft()
	if err != nil {
		return badRequest(err)
	}

	appointment, err := h.appointments.Book(c.Request().Context(), draft)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, appointment)
}

func (h *Handler) BookSeries(c echo.Context) error {
	var req seriesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	draft, err := req.Appointment.toDraft()
	if err != nil {
		return badRequest(err)
	}

	result, err := h.appointments.BookSeries(c.Request().Context(), draft, req.Options)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) DuplicateToNextWeek(c echo.Context) error {
	var req duplicateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	result, err := h.appointments.DuplicateToNextWeek(c.Request().Context(), req.AppointmentIDs)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, result)
}

// DuplicateAppointment копирует одну запись по options; ?preview=true только показывает результат
func (h *Handler) DuplicateAppointment(c echo.Context) error {
	var opts model.DuplicationOptions
	if err := c.Bind(&opts); err != nil {
		return badRequest(err)
	}

	ctx := c.Request().Context()

	if preview, _ := strconv.ParseBool(c.QueryParam("preview")); preview {
		partition, err := h.appointments.PreviewDuplication(ctx, c.Param("id"), opts)
		if err != nil {
			return fail(err)
		}
		return c.JSON(http.StatusOK, partition)
	}

	result, err := h.appointments.DuplicateAppointment(ctx, c.Param("id"), opts)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	if err := h.appointments.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Reports --

func (h *Handler) GroupedAppointments(c echo.Context) error {
	cfg, err := groupingConfig(c, service.DefaultAppointmentConfig())
	if err != nil {
		return badRequest(err)
	}

	view, err := h.reports.AppointmentsByStatus(c.Request().Context(), cfg, c.QueryParam("q"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *Handler) GroupedPayments(c echo.Context) error {
	cfg, err := groupingConfig(c, service.DefaultPaymentConfig())
	if err != nil {
		return badRequest(err)
	}

	view, err := h.reports.PaymentsByStatus(c.Request().Context(), cfg, c.QueryParam("q"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, view)
}
