// Package service implements the singleton-per-user profile lifecycle.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mjza/mra-core-sub001/internal/userdetails/metrics"
	"github.com/mjza/mra-core-sub001/internal/userdetails/models"
	domainerrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
	"github.com/mjza/mra-core-sub001/pkg/requestcontext"
)

// Store is the persistence surface. Create must report a duplicate through
// sentinel.ErrDuplicate even when the race is lost at the constraint.
type Store interface {
	Create(ctx context.Context, d *models.UserDetails) error
	GetByUserID(ctx context.Context, userID int64) (*models.UserDetails, error)
	Update(ctx context.Context, d *models.UserDetails) error
}

// GenderCatalog answers whether a gender id references a seeded gender type.
type GenderCatalog interface {
	GenderTypeExists(ctx context.Context, id int64) (bool, error)
	GenderIDRange(ctx context.Context) (int64, int64, error)
}

type Service struct {
	store   Store
	genders GenderCatalog
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, genders GenderCatalog, opts ...Option) *Service {
	s := &Service{
		store:   store,
		genders: genders,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the profile row for userID. A missing row is not an error:
// the caller gets a synthetic row with only the identity populated. Update
// deliberately does not share this leniency.
func (s *Service) Get(ctx context.Context, userID int64) (*models.UserDetails, error) {
	d, err := s.store.GetByUserID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.RecordOperation("get", "absent")
		return &models.UserDetails{UserID: userID}, nil
	}
	if err != nil {
		s.metrics.RecordOperation("get", "error")
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to read user details.")
	}
	s.metrics.RecordOperation("get", "ok")
	return d, nil
}

func (s *Service) Create(ctx context.Context, userID int64, in models.Input) (*models.UserDetails, error) {
	if err := s.validateGender(ctx, in.GenderID); err != nil {
		s.metrics.RecordOperation("create", "invalid_gender")
		return nil, err
	}

	d := &models.UserDetails{
		UserID:    userID,
		Creator:   requestcontext.UserID(ctx),
		CreatedAt: requestcontext.Now(ctx),
	}
	in.Apply(d)

	if err := s.store.Create(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrDuplicate) {
			s.metrics.RecordOperation("create", "duplicate")
			return nil, domainerrors.NewKind(domainerrors.CodeDuplicate, domainerrors.KindDuplicateUserDetails,
				fmt.Sprintf("UserDetails for user %d already exists.", userID))
		}
		s.metrics.RecordOperation("create", "error")
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to create user details.")
	}

	s.metrics.RecordOperation("create", "ok")
	return d, nil
}

func (s *Service) Update(ctx context.Context, userID int64, in models.Input) (*models.UserDetails, error) {
	if err := s.validateGender(ctx, in.GenderID); err != nil {
		s.metrics.RecordOperation("update", "invalid_gender")
		return nil, err
	}

	current, err := s.store.GetByUserID(ctx, userID)
	if errors.Is(err, sentinel.ErrNotFound) {
		s.metrics.RecordOperation("update", "not_found")
		return nil, s.notFound(userID)
	}
	if err != nil {
		s.metrics.RecordOperation("update", "error")
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to update user details.")
	}

	in.Apply(current)
	updator := requestcontext.UserID(ctx)
	now := requestcontext.Now(ctx)
	current.Updator = &updator
	current.UpdatedAt = &now

	if err := s.store.Update(ctx, current); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordOperation("update", "not_found")
			return nil, s.notFound(userID)
		}
		s.metrics.RecordOperation("update", "error")
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to update user details.")
	}

	s.metrics.RecordOperation("update", "ok")
	return current, nil
}

func (s *Service) notFound(userID int64) error {
	return domainerrors.NewKind(domainerrors.CodeNotFound, domainerrors.KindUserDetailsNotFound,
		fmt.Sprintf("UserDetails for user %d not found.", userID))
}

func (s *Service) validateGender(ctx context.Context, genderID *int) error {
	if genderID == nil {
		return nil
	}
	exists, err := s.genders.GenderTypeExists(ctx, int64(*genderID))
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to validate gender id.")
	}
	if exists {
		return nil
	}
	min, max, err := s.genders.GenderIDRange(ctx)
	if err != nil {
		return domainerrors.Wrap(err, domainerrors.CodeInternal, "Failed to validate gender id.")
	}
	return domainerrors.NewKind(domainerrors.CodeValidation, domainerrors.KindInvalidGenderID,
		fmt.Sprintf("Gender id must be between %d and %d.", min, max))
}
