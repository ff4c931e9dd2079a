// Package service implements the append-only audit trail mutations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mssola/useragent"

	"github.com/mjza/mra-core-sub001/internal/auditlog/metrics"
	"github.com/mjza/mra-core-sub001/internal/auditlog/models"
	"github.com/mjza/mra-core-sub001/internal/query"
	domainerrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

// Store is the persistence surface the service depends on.
type Store interface {
	Insert(ctx context.Context, e *models.Entry) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Entry, error)
	AppendComments(ctx context.Context, id int64, comments string, at time.Time) (*models.Entry, error)
	Delete(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID int64, where query.Expression) ([]models.Entry, error)
}

// Publisher receives an event after each committed mutation.
type Publisher interface {
	Publish(ctx context.Context, ev models.Event) error
}

type Service struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InsertRequest carries the caller-supplied part of a new audit entry. The
// rest (actor, IP, user agent) is lifted from the request context.
type InsertRequest struct {
	MethodRoute string
	Method      string
	Path        string
	Query       string
	Body        []byte
	Comments    string
}

func (s *Service) Insert(ctx context.Context, req InsertRequest) (*models.Entry, error) {
	entry := &models.Entry{
		MethodRoute: req.MethodRoute,
		Snapshot:    buildSnapshot(ctx, req),
		Comments:    req.Comments,
		IPAddress:   requestcontext.ClientIP(ctx),
		UserID:      requestcontext.UserID(ctx),
		CreatedAt:   requestcontext.Now(ctx),
	}

	id, err := s.store.Insert(ctx, entry)
	if err != nil {
		s.metrics.RecordMutation("insert", "error")
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to create audit log.")
	}
	entry.LogID = id

	s.metrics.RecordMutation("insert", "ok")
	s.publish(ctx, models.EventInserted, entry)
	return entry, nil
}

// Update appends comments to an existing entry. The stored text is joined
// with the new text so both remain present afterwards.
func (s *Service) Update(ctx context.Context, id int64, comments string) (*models.Entry, error) {
	entry, err := s.store.AppendComments(ctx, id, comments, requestcontext.Now(ctx))
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.RecordMutation("update", "not_found")
		return nil, domainerrors.New(domainerrors.CodeNotFound, fmt.Sprintf("AuditLog with id %d not found.", id))
	}
	if err != nil {
		s.metrics.RecordMutation("update", "error")
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to update audit log.")
	}

	s.metrics.RecordMutation("update", "ok")
	s.publish(ctx, models.EventUpdated, entry)
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	entry, err := s.store.GetByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.RecordMutation("delete", "not_found")
		return domainerrors.New(domainerrors.CodeNotFound, fmt.Sprintf("AuditLog with id %d not found.", id))
	}
	if err != nil {
		s.metrics.RecordMutation("delete", "error")
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to delete audit log.")
	}

	if err := s.store.Delete(ctx, id); err != nil {
		s.metrics.RecordMutation("delete", "error")
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to delete audit log.")
	}

	s.metrics.RecordMutation("delete", "ok")
	s.publish(ctx, models.EventDeleted, entry)
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Entry, error) {
	entry, err := s.store.GetByID(ctx, id)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, domainerrors.New(domainerrors.CodeNotFound, fmt.Sprintf("AuditLog with id %d not found.", id))
	}
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to read audit log.")
	}
	return entry, nil
}

// List returns the acting user's audit entries, oldest first. Optional
// created_atAfter / created_atBefore parameters merge an inclusive range
// onto the created_at column; an unparseable bound matches nothing rather
// than erroring.
func (s *Service) List(ctx context.Context, params map[string]string) ([]models.Entry, error) {
	where := query.NewFieldMap()
	query.AddDateRangeFilter(where, params, "created_at")

	entries, err := s.store.ListByUser(ctx, requestcontext.UserID(ctx), where)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to list audit logs.")
	}
	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}

func (s *Service) publish(ctx context.Context, action string, entry *models.Entry) {
	if s.publisher == nil {
		return
	}
	ev := models.Event{
		Action:    action,
		LogID:     entry.LogID,
		UserID:    entry.UserID,
		Route:     entry.MethodRoute,
		RequestID: requestcontext.RequestID(ctx),
		Timestamp: requestcontext.Now(ctx),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "publishing audit event failed",
			slog.String("action", action),
			slog.Int64("log_id", entry.LogID),
			slog.String("error", err.Error()))
	}
}

func buildSnapshot(ctx context.Context, req InsertRequest) models.RequestSnapshot {
	snapshot := models.RequestSnapshot{
		Method:    req.Method,
		Path:      req.Path,
		Query:     req.Query,
		Body:      req.Body,
		UserAgent: requestcontext.UserAgent(ctx),
	}
	if snapshot.UserAgent != "" {
		ua := useragent.New(snapshot.UserAgent)
		name, version := ua.Browser()
		snapshot.Browser = name
		snapshot.BrowserVersion = version
		snapshot.OS = ua.OS()
		snapshot.Mobile = ua.Mobile()
	}
	return snapshot
}
