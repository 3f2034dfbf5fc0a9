package service

import (
	"context"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinicdesk/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/clinicdesk/pkg/metrics"
	"go.uber.org/zap"
)

const (
	auditWriteTimeout = 5 * time.Second
	auditDrainTimeout = 10 * time.Second
)

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

// AuditService records who touched which record. Writes happen on a
// background worker so that request latency does not include them.
type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	metrics *metrics.Collector
	entries chan *domain.AuditLog
	done    chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAuditService(repo AuditRepository, bufferSize int, m *metrics.Collector, log *zap.Logger) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		entries: make(chan *domain.AuditLog, bufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync queues entry without blocking. A full queue drops the entry and
// counts it; entries arriving after Shutdown are ignored.
func (s *AuditService) LogAsync(ctx context.Context, entry AuditEntry) {
	al := &domain.AuditLog{
		UserID:       entry.Caller.UserID,
		UserRole:     entry.Caller.Role,
		IPAddress:    entry.Caller.IP,
		RequestID:    entry.Caller.RequestID,
		Action:       entry.Action,
		ResourceType: entry.ResourceType,
		ResourceID:   entry.ResourceID,
		Changes:      entry.Changes,
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}

	select {
	case s.entries <- al:
	default:
		s.metrics.AuditBufferDropped.Inc()
		logger.FromContext(ctx, s.log).Warn("audit queue full, dropping entry",
			zap.String("action", string(entry.Action)),
			zap.String("resource", entry.ResourceType),
			zap.String("resource_id", entry.ResourceID),
		)
	}
}

// Shutdown stops accepting entries and waits for the queue to drain.
func (s *AuditService) Shutdown() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.entries)
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-time.After(auditDrainTimeout):
		s.log.Warn("audit queue not drained before timeout", zap.Int("pending", len(s.entries)))
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		if err := s.write(entry); err != nil {
			s.log.Error("failed to persist audit entry",
				zap.String("action", string(entry.Action)),
				zap.String("resource_id", entry.ResourceID),
				zap.String("request_id", entry.RequestID),
				zap.Error(err),
			)
			continue
		}
		s.metrics.AuditEntriesTotal.Inc()
	}
}

func (s *AuditService) write(entry *domain.AuditLog) error {
	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()
	return s.repo.Create(ctx, entry)
}
