package v1

import (
	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

// MedicalRecordHandler serves the read side; records are created under
// /patients/:id/medical-records.
type MedicalRecordHandler struct {
	svc *service.MedicalRecordService
}

func NewMedicalRecordHandler(svc *service.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{svc: svc}
}

func (h *MedicalRecordHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/medical-records")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func (h *MedicalRecordHandler) List(c *gin.Context) {
	q := &mr.ListRecordsQuery{}

	var ok bool
	if q.PatientID, ok = queryUUID(c, "patient_id"); !ok {
		return
	}
	if q.DoctorID, ok = queryUUID(c, "doctor_id"); !ok {
		return
	}

	records, err := h.svc.ListRecords(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, records)
}

func (h *MedicalRecordHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	record, err := h.svc.GetRecord(c.Request.Context(), id, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if record == nil {
		respondServiceError(c, mr.ErrRecordNotFound)
		return
	}
	respondOK(c, record)
}
