package v1

import (
	"strconv"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type MedicationHandler struct {
	svc *service.MedicationService
}

func NewMedicationHandler(svc *service.MedicationService) *MedicationHandler {
	return &MedicationHandler{svc: svc}
}

func (h *MedicationHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/medications")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
}

func (h *MedicationHandler) List(c *gin.Context) {
	lowStock, _ := strconv.ParseBool(c.Query("low_stock"))

	var (
		meds []*medication.Medication
		err  error
	)
	if lowStock {
		meds, err = h.svc.LowStock(c.Request.Context())
	} else {
		meds, err = h.svc.ListMedications(c.Request.Context(), nil)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, meds)
}

func (h *MedicationHandler) Create(c *gin.Context) {
	var cmd medication.CreateMedicationCommand
	if !bindJSON(c, &cmd) {
		return
	}

	m, err := h.svc.AddMedication(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, m, "medication added")
}

func (h *MedicationHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	m, err := h.svc.GetMedication(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if m == nil {
		respondServiceError(c, medication.ErrMedicationNotFound)
		return
	}
	respondOK(c, m)
}

func (h *MedicationHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var cmd medication.UpdateMedicationCommand
	if !bindJSON(c, &cmd) {
		return
	}

	m, err := h.svc.UpdateMedication(c.Request.Context(), id, &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, m)
}
