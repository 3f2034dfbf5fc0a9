package v1

import (
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Services struct {
	Auth         *service.AuthService
	Patients     *service.PatientService
	Appointments *service.AppointmentService
	Records      *service.MedicalRecordService
	LabTests     *service.LabTestService
	Medications  *service.MedicationService
	Staff        *service.StaffService
	Facility     *service.FacilityService
	Dashboard    *service.DashboardService
	Reports      *service.ReportService
}

type RouterDeps struct {
	Config   *config.Config
	Services Services
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

func NewRouter(d RouterDeps) *gin.Engine {
	gin.SetMode(d.Config.Server.GinMode)

	r := gin.New()
	r.HandleMethodNotAllowed = false
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.Tracing(d.Config.Tracing.ServiceName),
		middleware.Logger(d.Log),
		middleware.Metrics(d.Metrics),
		middleware.CORS(d.Config.CORS),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": d.Config.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler(d.Gatherer)))

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "route not found")
	})

	rl := d.Config.RateLimit
	api := r.Group("/api/v1", middleware.RateLimit(middleware.NewLimiter(rate.Limit(rl.RequestsPerSecond), rl.BurstSize)))

	authH := NewAuthHandler(d.Services.Auth)
	loginLimiter := middleware.NewLimiter(rate.Limit(float64(rl.AuthRequestsPerMinute)/60), rl.AuthRequestsPerMinute)
	api.POST("/auth/login", middleware.RateLimit(loginLimiter), authH.Login)
	api.POST("/auth/refresh", middleware.RateLimit(loginLimiter), authH.Refresh)

	protected := api.Group("", middleware.Auth(d.Services.Auth))
	protected.POST("/auth/logout", authH.Logout)
	protected.GET("/auth/me", authH.Me)

	NewDashboardHandler(d.Services.Dashboard, d.Services.Reports).Register(protected)
	NewPatientHandler(d.Services.Patients, d.Services.Appointments, d.Services.Records).Register(protected)
	NewAppointmentHandler(d.Services.Appointments).Register(protected)
	NewMedicalRecordHandler(d.Services.Records).Register(protected)
	NewLabTestHandler(d.Services.LabTests).Register(protected)
	NewMedicationHandler(d.Services.Medications).Register(protected)
	NewDirectoryHandler(d.Services.Staff, d.Services.Facility).Register(protected)

	return r
}
