package v1

import (
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type LabTestHandler struct {
	svc *service.LabTestService
}

func NewLabTestHandler(svc *service.LabTestService) *LabTestHandler {
	return &LabTestHandler{svc: svc}
}

func (h *LabTestHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/lab-tests")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.PUT("/:id/results", h.RecordResults)
}

func (h *LabTestHandler) List(c *gin.Context) {
	q := &labtest.ListLabTestsQuery{}

	var ok bool
	if q.PatientID, ok = queryUUID(c, "patient_id"); !ok {
		return
	}
	if raw := c.Query("status"); raw != "" {
		status := labtest.Status(raw)
		if !status.IsValid() {
			respondServiceError(c, labtest.ErrInvalidStatus)
			return
		}
		q.Status = &status
	}

	tests, err := h.svc.ListLabTests(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, tests)
}

func (h *LabTestHandler) Create(c *gin.Context) {
	var cmd labtest.RequestLabTestCommand
	if !bindJSON(c, &cmd) {
		return
	}

	t, err := h.svc.RequestLabTest(c.Request.Context(), &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, t, "lab test requested")
}

func (h *LabTestHandler) Get(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	t, err := h.svc.GetLabTest(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if t == nil {
		respondServiceError(c, labtest.ErrLabTestNotFound)
		return
	}
	respondOK(c, t)
}

func (h *LabTestHandler) Update(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var cmd labtest.UpdateLabTestCommand
	if !bindJSON(c, &cmd) {
		return
	}

	t, err := h.svc.UpdateLabTest(c.Request.Context(), id, &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, t)
}

func (h *LabTestHandler) RecordResults(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var cmd labtest.RecordResultsCommand
	if !bindJSON(c, &cmd) {
		return
	}

	t, err := h.svc.RecordResults(c.Request.Context(), id, &cmd, callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, t)
}
