// Package service implements the coordinate-driven geo resolver over the
// static reference hierarchy.
//
// Validation order is deliberate and identical across operations:
// coordinate range first, then existence, then the support flag. A
// malformed request never touches reference data, and "not found" stays
// distinguishable from "found but unsupported" so callers can render
// different guidance.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	geometrics "github.com/mjza/mra-core-sub001/internal/geo/metrics"
	"github.com/mjza/mra-core-sub001/internal/geo/models"
	"github.com/mjza/mra-core-sub001/internal/query"
	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
)

// Store abstracts the reference-data source.
type Store interface {
	CountryAt(ctx context.Context, lon, lat float64) (models.Country, error)
	CountryByCode(ctx context.Context, code string) (models.Country, error)
	CountryByID(ctx context.Context, id int64) (models.Country, error)
	ListCountries(ctx context.Context, where query.Expression, limit, offset int) ([]models.Country, error)
	StatesByCountry(ctx context.Context, countryID int64) ([]models.State, error)
	StateInCountry(ctx context.Context, countryID, stateID int64) (models.State, error)
	StateAt(ctx context.Context, countryID int64, lon, lat float64) (models.State, error)
	CitiesByState(ctx context.Context, stateID int64) ([]models.City, error)
	NearestCityInState(ctx context.Context, stateID int64, lon, lat float64) (models.City, error)
	AddressesAt(ctx context.Context, lon, lat float64) ([]models.Address, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *geometrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *geometrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

const coordinatesOutOfRangeMessage = "Longitude must be between -180 and 180 and latitude between -90 and 90."

func validCoordinates(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}

// ResolveLocation resolves (country, state, city) for a point in one
// hierarchical walk.
func (s *Service) ResolveLocation(ctx context.Context, lon, lat float64) (*models.Location, error) {
	if !validCoordinates(lon, lat) {
		s.metrics.RecordResolution("location", "out_of_range")
		return nil, dErrors.NewKind(dErrors.CodeValidation, dErrors.KindCoordinatesOutOfRange,
			coordinatesOutOfRangeMessage)
	}

	country, err := s.store.CountryAt(ctx, lon, lat)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.RecordResolution("location", "country_not_found")
			return nil, dErrors.NewKind(dErrors.CodeNotFound, dErrors.KindCountryNotFound,
				"No country was found for the given coordinates.")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve country")
	}
	if !country.IsSupported {
		s.metrics.RecordResolution("location", "country_unsupported")
		return nil, dErrors.NewKind(dErrors.CodeValidation, dErrors.KindCountryUnsupported,
			fmt.Sprintf("Country '%s' is not supported.", country.CountryName))
	}

	state, err := s.store.StateAt(ctx, country.ID, lon, lat)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve state")
	}
	city, err := s.store.NearestCityInState(ctx, state.ID, lon, lat)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve city")
	}

	s.metrics.RecordResolution("location", "ok")
	return &models.Location{
		CountryID:   country.ID,
		CountryCode: country.ISOCode,
		CountryName: country.CountryName,
		StateID:     state.ID,
		StateName:   state.StateName,
		CityID:      city.ID,
		CityName:    city.CityName,
	}, nil
}

// ResolveAddress returns the street-level records at a point, nearest
// first. Zero matches is an empty slice, not an error; a point in an
// unsupported country is rejected before addresses are returned.
func (s *Service) ResolveAddress(ctx context.Context, lon, lat float64) ([]models.Address, error) {
	if !validCoordinates(lon, lat) {
		s.metrics.RecordResolution("address", "out_of_range")
		return nil, dErrors.NewKind(dErrors.CodeValidation, dErrors.KindCoordinatesOutOfRange,
			coordinatesOutOfRangeMessage)
	}

	country, err := s.store.CountryAt(ctx, lon, lat)
	switch {
	case err == nil:
		if !country.IsSupported {
			s.metrics.RecordResolution("address", "country_unsupported")
			return nil, dErrors.NewKind(dErrors.CodeValidation, dErrors.KindCountryUnsupported,
				fmt.Sprintf("Country '%s' is not supported.", country.CountryName))
		}
	case errors.Is(err, sentinel.ErrNotFound):
		// No containing country: the address set cannot match either.
		s.metrics.RecordResolution("address", "country_not_found")
		return []models.Address{}, nil
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve country")
	}

	addresses, err := s.store.AddressesAt(ctx, lon, lat)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load addresses")
	}
	s.metrics.RecordResolution("address", "ok")
	return addresses, nil
}

// StatesByCountryCode returns the ordered state set of the country with
// the given ISO code.
func (s *Service) StatesByCountryCode(ctx context.Context, code string) ([]models.State, error) {
	country, err := s.store.CountryByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NewKind(dErrors.CodeNotFound, dErrors.KindCountryNotFound,
				fmt.Sprintf("Country with code '%s' not found.", code))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load country")
	}
	return s.statesOf(ctx, country)
}

// StatesByCountryID returns the ordered state set of the country with the
// given id.
func (s *Service) StatesByCountryID(ctx context.Context, id int64) ([]models.State, error) {
	country, err := s.store.CountryByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NewKind(dErrors.CodeNotFound, dErrors.KindCountryNotFound,
				fmt.Sprintf("Country with id %d not found.", id))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load country")
	}
	return s.statesOf(ctx, country)
}

func (s *Service) statesOf(ctx context.Context, country models.Country) ([]models.State, error) {
	if !country.IsSupported {
		return nil, dErrors.NewKind(dErrors.CodeValidation, dErrors.KindCountryUnsupported,
			fmt.Sprintf("Country '%s' is not supported.", country.CountryName))
	}
	states, err := s.store.StatesByCountry(ctx, country.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load states")
	}
	return states, nil
}

// CitiesByState returns the ordered city set of a state, resolving the
// country first so country-level failures take precedence.
func (s *Service) CitiesByState(ctx context.Context, countryID, stateID int64) ([]models.City, error) {
	country, err := s.store.CountryByID(ctx, countryID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NewKind(dErrors.CodeNotFound, dErrors.KindCountryNotFound,
				fmt.Sprintf("Country with id %d not found.", countryID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load country")
	}
	if !country.IsSupported {
		return nil, dErrors.NewKind(dErrors.CodeValidation, dErrors.KindCountryUnsupported,
			fmt.Sprintf("Country '%s' is not supported.", country.CountryName))
	}

	state, err := s.store.StateInCountry(ctx, countryID, stateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.NewKind(dErrors.CodeNotFound, dErrors.KindStateNotFound,
				fmt.Sprintf("State with id %d not found in country %d.", stateID, countryID))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load state")
	}

	cities, err := s.store.CitiesByState(ctx, state.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load cities")
	}
	return cities, nil
}

// GetCountries is a paginated, filterable read over the country table.
// Pagination is validated before the store is queried; a filter matching
// nothing returns an empty slice.
func (s *Service) GetCountries(ctx context.Context, where query.Expression, p *query.Pagination) ([]models.Country, error) {
	if err := query.ValidatePagination(p); err != nil {
		return nil, err
	}
	countries, err := s.store.ListCountries(ctx, where, p.LimitInt(), p.OffsetInt())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load countries")
	}
	return countries, nil
}
