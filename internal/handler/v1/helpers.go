package v1

import (
	"errors"
	"net/http"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/labtest"
	mr "github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/medication"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain/staff"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/middleware"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/service"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/auth"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, APIResponse[any]{Data: data})
}

func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, APIResponse[any]{Data: data, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

func respondServiceError(c *gin.Context, err error) {
	var validErr *service.ValidationError
	if errors.As(err, &validErr) {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation failed",
			Fields: validErr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, appointment.ErrAppointmentNotFound),
		errors.Is(err, mr.ErrRecordNotFound),
		errors.Is(err, labtest.ErrLabTestNotFound),
		errors.Is(err, medication.ErrMedicationNotFound),
		errors.Is(err, staff.ErrStaffMemberNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "NOT_FOUND"})

	case errors.Is(err, appointment.ErrInvalidStatus),
		errors.Is(err, labtest.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})

	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "access denied", Code: "FORBIDDEN"})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials", Code: "INVALID_CREDENTIALS"})

	case errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrTokenTypeMismatch):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error(), Code: "INVALID_TOKEN"})

	default:
		_ = c.Error(err)
		logger.FromContext(c.Request.Context(), zap.L()).Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request: " + err.Error()})
		return false
	}

	return true
}

func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + param + ": must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID reads an optional UUID filter. The bool is false when the
// value was present but malformed and a 400 has been written.
func queryUUID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + key + ": must be a valid UUID"})
		return nil, false
	}
	return &id, true
}

// callerFrom builds the service caller from the verified token claims.
func callerFrom(c *gin.Context) service.Caller {
	caller := service.Caller{
		IP:        c.ClientIP(),
		RequestID: middleware.RequestIDFrom(c),
	}
	if claims := middleware.ClaimsFrom(c); claims != nil {
		caller.UserID = claims.UserID
		caller.Name = claims.Name
		caller.Role = claims.Role
	}
	return caller
}
