package v1

import (
	"net/http"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	svc *service.AppointmentService
}

func NewAppointmentHandler(svc *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func (h *AppointmentHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/appointments")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
}

// List accepts patient_id, doctor_id, status and date (YYYY-MM-DD) filters.
func (h *AppointmentHandler) List(c *gin.Context) {
	q := &appointment.ListAppointmentsQuery{}

	var ok bool
	if q.PatientID, ok = queryUUID(c, "patient_id"); !ok {
		return
	}
	if q.DoctorID, ok = queryUUID(c, "doctor_id"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := appointment.AppointmentStatus(raw)
		if !status.IsValid() {
			respondServiceError(c, appointment.ErrInvalidStatus)
			return
		}
		q.Status = &status
	}
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid date: want YYYY-MM-DD")
			return
		}
		q.Date = &d
	}

	appts, err := h.svc.ListAppointments(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appts)
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var cmd appointment.CreateAppointmentCommand
	if !bindJSON(c, &cmd) {
		return
	}

	a, err := h.svc.ScheduleAppointment(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, a, "appointment scheduled")
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	a, err := h.svc.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if a == nil {
		respondServiceError(c, appointment.ErrAppointmentNotFound)
		return
	}
	respondOK(c, a)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var cmd appointment.UpdateAppointmentCommand
	if !bindJSON(c, &cmd) {
		return
	}

	a, err := h.svc.UpdateAppointment(c.Request.Context(), id, &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, a)
}
