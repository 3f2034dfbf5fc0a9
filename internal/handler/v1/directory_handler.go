package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

// DirectoryHandler serves the read-only registers: staff, referrals,
// health programs and equipment.
type DirectoryHandler struct {
	staff    *service.StaffService
	facility *service.FacilityService
}

func NewDirectoryHandler(staff *service.StaffService, facility *service.FacilityService) *DirectoryHandler {
	return &DirectoryHandler{staff: staff, facility: facility}
}

func (h *DirectoryHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/staff", h.ListStaff)
	rg.GET("/staff/doctors", h.ListDoctors)
	rg.GET("/staff/:id", h.GetStaffMember)
	rg.GET("/referrals", h.ListReferrals)
	rg.GET("/health-programs", h.ListHealthPrograms)
	rg.GET("/equipment", h.ListEquipment)
}

func (h *DirectoryHandler) ListStaff(c *gin.Context) {
	q := &staff.ListStaffQuery{}
	if raw := c.Query("role"); raw != "" {
		role := domain.Role(raw)
		if !role.IsValid() {
			respondError(c, http.StatusBadRequest, "invalid role")
			return
		}
		q.Role = &role
	}

	members, err := h.staff.ListStaff(c.Request.Context(), q)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, members)
}

// ListDoctors feeds the doctor picker on the appointment and record forms.
func (h *DirectoryHandler) ListDoctors(c *gin.Context) {
	doctors, err := h.staff.ListDoctors(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, doctors)
}

func (h *DirectoryHandler) GetStaffMember(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	m, err := h.staff.GetStaffMember(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if m == nil {
		respondServiceError(c, staff.ErrStaffMemberNotFound)
		return
	}
	respondOK(c, m)
}

func (h *DirectoryHandler) ListReferrals(c *gin.Context) {
	refs, err := h.facility.ListReferrals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, refs)
}

func (h *DirectoryHandler) ListHealthPrograms(c *gin.Context) {
	programs, err := h.facility.ListHealthPrograms(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, programs)
}

func (h *DirectoryHandler) ListEquipment(c *gin.Context) {
	items, err := h.facility.ListEquipment(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, items)
}
