package service

import (
	"errors"
	"strings"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/google/uuid"
)

var ErrForbidden = errors.New("forbidden: insufficient permissions")

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Caller identifies who is making a request. Handlers build it from the
// verified token and the HTTP request.
type Caller struct {
	UserID    uuid.UUID
	Name      string
	Role      domain.Role
	IP        string
	RequestID string
}

func (c Caller) require(roles ...domain.Role) error {
	if !c.Role.OneOf(roles...) {
		return ErrForbidden
	}
	return nil
}

type AuditEntry struct {
	Caller       Caller
	Action       domain.AuditAction
	ResourceType string
	ResourceID   string
	Changes      string
}
