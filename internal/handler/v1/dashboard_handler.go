package v1

import (
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	reports   *service.ReportService
}

func NewDashboardHandler(dashboard *service.DashboardService, reports *service.ReportService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, reports: reports}
}

func (h *DashboardHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/reports/summary", h.Reports)
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	d, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, d)
}

func (h *DashboardHandler) Reports(c *gin.Context) {
	r, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, r)
}
