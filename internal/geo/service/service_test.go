package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mjza/mra-core-sub001/internal/geo/store"
	"github.com/mjza/mra-core-sub001/internal/query"
	dErrors "github.com/mjza/mra-core-sub001/pkg/domain-errors"
)

type GeoServiceSuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func TestGeoServiceSuite(t *testing.T) {
	suite.Run(t, new(GeoServiceSuite))
}

func (s *GeoServiceSuite) SetupTest() {
	s.svc = New(store.NewInMemory())
	s.ctx = context.Background()
}

func (s *GeoServiceSuite) TestResolveLocationCalgary() {
	loc, err := s.svc.ResolveLocation(s.ctx, -114.12839, 51.07462)
	s.Require().NoError(err)
	s.Equal("CA", loc.CountryCode)
	s.Equal("Alberta", loc.StateName)
	s.Equal("Calgary", loc.CityName)
}

func (s *GeoServiceSuite) TestResolveLocationOpenOcean() {
	_, err := s.svc.ResolveLocation(s.ctx, 0, 0)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryNotFound))
	s.False(dErrors.HasKind(err, dErrors.KindCountryUnsupported), "not-found and unsupported must never conflate")
}

func (s *GeoServiceSuite) TestResolveLocationOutOfRange() {
	_, err := s.svc.ResolveLocation(s.ctx, 360, -360)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCoordinatesOutOfRange),
		"range check runs before any reference lookup")
}

func (s *GeoServiceSuite) TestResolveLocationUnsupportedCountry() {
	// Havana: inside the seeded Cuba box, which is flagged unsupported.
	_, err := s.svc.ResolveLocation(s.ctx, -82.3520, 23.1370)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryUnsupported))
}

func (s *GeoServiceSuite) TestResolveAddressCalgary() {
	addresses, err := s.svc.ResolveAddress(s.ctx, -114.12839, 51.07462)
	s.Require().NoError(err)
	s.Require().NotEmpty(addresses)
	s.Equal("Crowchild Trail NW", addresses[0].StreetName, "nearest address first")
	for _, a := range addresses {
		s.Equal("CA", a.CountryCode)
		s.Equal("Calgary", a.CityName)
	}
}

func (s *GeoServiceSuite) TestResolveAddressNoMatches() {
	// Saskatchewan prairie: inside Canada, no seeded address nearby.
	addresses, err := s.svc.ResolveAddress(s.ctx, -105.0, 51.5)
	s.Require().NoError(err)
	s.Empty(addresses)
}

func (s *GeoServiceSuite) TestResolveAddressUnsupportedCountry() {
	_, err := s.svc.ResolveAddress(s.ctx, -82.3520, 23.1370)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryUnsupported))
}

func (s *GeoServiceSuite) TestStatesByCountryCode() {
	states, err := s.svc.StatesByCountryCode(s.ctx, "CA")
	s.Require().NoError(err)
	s.Require().Len(states, 4)
	s.Equal("Alberta", states[0].StateName, "states are ordered")

	states, err = s.svc.StatesByCountryCode(s.ctx, "ca")
	s.Require().NoError(err)
	s.Len(states, 4, "code lookup is case-insensitive")
}

func (s *GeoServiceSuite) TestStatesByCountryCodeNotFound() {
	_, err := s.svc.StatesByCountryCode(s.ctx, "XX")
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryNotFound))
	s.Equal("Country with code 'XX' not found.", dErrors.MessageOf(err))
}

func (s *GeoServiceSuite) TestStatesByCountryCodeUnsupported() {
	_, err := s.svc.StatesByCountryCode(s.ctx, "CU")
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryUnsupported))
}

func (s *GeoServiceSuite) TestStatesByCountryID() {
	states, err := s.svc.StatesByCountryID(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(states, 2)

	_, err = s.svc.StatesByCountryID(s.ctx, 99)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryNotFound))
}

func (s *GeoServiceSuite) TestCitiesByState() {
	cities, err := s.svc.CitiesByState(s.ctx, 1, 1)
	s.Require().NoError(err)
	s.Require().Len(cities, 2)
	s.Equal("Calgary", cities[0].CityName)
	s.Equal("Edmonton", cities[1].CityName)
}

func (s *GeoServiceSuite) TestCitiesByStateErrorPrecedence() {
	// Unknown country wins over unknown state.
	_, err := s.svc.CitiesByState(s.ctx, 99, 1)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryNotFound))

	// Known country, unknown state: StateNotFound naming both ids.
	_, err = s.svc.CitiesByState(s.ctx, 1, 42)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindStateNotFound))
	s.Equal("State with id 42 not found in country 1.", dErrors.MessageOf(err))

	// State id exists but belongs to another country.
	_, err = s.svc.CitiesByState(s.ctx, 2, 1)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindStateNotFound))

	// Unsupported country blocks the state lookup.
	_, err = s.svc.CitiesByState(s.ctx, 3, 1)
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindCountryUnsupported))
}

func (s *GeoServiceSuite) TestGetCountries() {
	where := query.NewFieldMap().Set("iso_code", query.Scalar{Value: "CA"})
	countries, err := s.svc.GetCountries(s.ctx, where, &query.Pagination{Limit: 10, Offset: 0})
	s.Require().NoError(err)
	s.Require().Len(countries, 1)
	s.Equal("Canada", countries[0].CountryName)
	s.True(countries[0].IsSupported)
}

func (s *GeoServiceSuite) TestGetCountriesNoMatches() {
	where := query.NewFieldMap().Set("iso_code", query.Scalar{Value: "XYZ"})
	countries, err := s.svc.GetCountries(s.ctx, where, &query.Pagination{Limit: 10, Offset: 0})
	s.Require().NoError(err)
	s.Empty(countries, "empty match is not an error")
}

func (s *GeoServiceSuite) TestGetCountriesValidatesPaginationFirst() {
	_, err := s.svc.GetCountries(s.ctx, nil, &query.Pagination{Limit: -1, Offset: 0})
	s.Require().Error(err)
	s.True(dErrors.HasKind(err, dErrors.KindInvalidPagination))
}
