package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/healthnet/scheduling/internal/domain"
	"github.com/healthnet/scheduling/pkg/metrics"
)

// AuditEntry is the event record the scheduling core hands to the audit
// collaborator after every successful mutation.
type AuditEntry struct {
	Username    string
	UserRole    domain.Role
	Action      domain.AuditAction
	EntityKind  domain.EntityKind
	EntityID    string
	Field       string // changed field name, or "N/A"
	Description string
	RequestID   string
	IPAddress   string
}

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

type AuditService struct {
	repo    AuditRepository
	log     *zap.Logger
	metrics *metrics.Collector
	entries chan *domain.AuditLog
	done    chan struct{}
}

const auditBufferSize = 10_000

func NewAuditService(repo AuditRepository, m *metrics.Collector, log *zap.Logger) *AuditService {
	svc := &AuditService{
		repo:    repo,
		log:     log,
		metrics: m,
		entries: make(chan *domain.AuditLog, auditBufferSize),
		done:    make(chan struct{}),
	}
	go svc.worker()
	return svc
}

// LogAsync enqueues an audit entry for async persistence.
// If the buffer is full, the entry is dropped and a warning is emitted.
func (s *AuditService) LogAsync(ctx context.Context, entry AuditEntry) {
	field := entry.Field
	if field == "" {
		field = "N/A"
	}
	al := &domain.AuditLog{
		Username:    entry.Username,
		UserRole:    entry.UserRole,
		Action:      entry.Action,
		EntityKind:  entry.EntityKind,
		EntityID:    entry.EntityID,
		Field:       field,
		Description: entry.Description,
		RequestID:   entry.RequestID,
		IPAddress:   entry.IPAddress,
	}

	select {
	case s.entries <- al:
	default:
		s.metrics.AuditBufferDropped.Inc()
		s.log.Warn("audit log buffer full, dropping entry",
			zap.String("action", string(entry.Action)),
			zap.String("entity", string(entry.EntityKind)),
		)
	}
}

func (s *AuditService) Shutdown() {
	close(s.entries)
	select {
	case <-s.done:
	case <-time.After(10 * time.Second):
		s.log.Warn("audit service shutdown timed out; some entries may be lost")
	}
}

func (s *AuditService) worker() {
	defer close(s.done)
	for entry := range s.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Error("failed to persist audit log", zap.Error(err))
		} else {
			s.metrics.AuditEntriesTotal.Inc()
		}
		cancel()
	}
}
