package v1

import (
	"strings"

	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	patients     *service.PatientService
	appointments *service.AppointmentService
	records      *service.MedicalRecordService
}

func NewPatientHandler(patients *service.PatientService, appointments *service.AppointmentService, records *service.MedicalRecordService) *PatientHandler {
	return &PatientHandler{patients: patients, appointments: appointments, records: records}
}

func (h *PatientHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/patients")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.GET("/:id/overview", h.Overview)
	g.GET("/:id/appointments", h.ListAppointments)
	g.GET("/:id/medical-records", h.ListRecords)
	g.POST("/:id/medical-records", h.CreateRecord)
}

func (h *PatientHandler) List(c *gin.Context) {
	q := &patient.ListPatientsQuery{Search: strings.TrimSpace(c.Query("search"))}
	patients, err := h.patients.ListPatients(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var cmd patient.CreatePatientCommand
	if !bindJSON(c, &cmd) {
		return
	}

	p, err := h.patients.RegisterPatient(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p, "patient registered")
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	p, err := h.patients.GetPatient(c.Request.Context(), id, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if p == nil {
		respondServiceError(c, patient.ErrPatientNotFound)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var cmd patient.UpdatePatientCommand
	if !bindJSON(c, &cmd) {
		return
	}

	p, err := h.patients.UpdatePatient(c.Request.Context(), id, &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *PatientHandler) Overview(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	overview, err := h.patients.Overview(c.Request.Context(), id, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if overview == nil {
		respondServiceError(c, patient.ErrPatientNotFound)
		return
	}
	respondOK(c, overview)
}

func (h *PatientHandler) ListAppointments(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	appts, err := h.appointments.ListPatientAppointments(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, appts)
}

func (h *PatientHandler) ListRecords(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	records, err := h.records.ListPatientRecords(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, records)
}

// CreateRecord takes the patient from the path; any patient_id in the body is ignored.
func (h *PatientHandler) CreateRecord(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var cmd mr.CreateRecordCommand
	if !bindJSON(c, &cmd) {
		return
	}
	cmd.PatientID = id

	created, err := h.records.CreateRecord(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created, "medical record created")
}
