// Package store holds the static geographic reference data: an immutable
// country/state/city hierarchy plus a geo-indexed address set, seeded once.
package store

import (
	"context"
	"sort"
	"strings"

	"github.com/mjza/mra-core-sub001/internal/geo/models"
	"github.com/mjza/mra-core-sub001/internal/query"
	"github.com/mjza/mra-core-sub001/pkg/platform/sentinel"
)

// addressRadiusDeg bounds how far (in degrees) an address may sit from a
// queried point and still count as "at" it.
const addressRadiusDeg = 0.05

// InMemory is the seeded reference-data source. All slices are immutable
// after construction, so reads need no locking.
type InMemory struct {
	countries []models.Country
	states    []models.State
	cities    []models.City
	addresses []models.Address
}

// NewInMemory seeds the hierarchy.
func NewInMemory() *InMemory {
	return &InMemory{
		countries: seedCountries(),
		states:    seedStates(),
		cities:    seedCities(),
		addresses: seedAddresses(),
	}
}

// CountryAt returns the first seeded country whose box contains the point.
func (s *InMemory) CountryAt(_ context.Context, lon, lat float64) (models.Country, error) {
	for _, c := range s.countries {
		if c.Box.Contains(lon, lat) {
			return c, nil
		}
	}
	return models.Country{}, sentinel.ErrNotFound
}

// CountryByCode looks a country up by ISO code, case-insensitively.
func (s *InMemory) CountryByCode(_ context.Context, code string) (models.Country, error) {
	for _, c := range s.countries {
		if strings.EqualFold(c.ISOCode, code) {
			return c, nil
		}
	}
	return models.Country{}, sentinel.ErrNotFound
}

// CountryByID looks a country up by id.
func (s *InMemory) CountryByID(_ context.Context, id int64) (models.Country, error) {
	for _, c := range s.countries {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Country{}, sentinel.ErrNotFound
}

// ListCountries returns countries matching where, ordered by id.
func (s *InMemory) ListCountries(_ context.Context, where query.Expression, limit, offset int) ([]models.Country, error) {
	var matched []models.Country
	for _, c := range s.countries {
		if query.Matches(where, c.Row()) {
			matched = append(matched, c)
		}
	}
	if offset >= len(matched) {
		return []models.Country{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	out := make([]models.Country, end-offset)
	copy(out, matched[offset:end])
	return out, nil
}

// StatesByCountry returns the country's states ordered by name.
func (s *InMemory) StatesByCountry(_ context.Context, countryID int64) ([]models.State, error) {
	var out []models.State
	for _, st := range s.states {
		if st.CountryID == countryID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StateName < out[j].StateName })
	return out, nil
}

// StateInCountry returns the state with the given id within the country.
func (s *InMemory) StateInCountry(_ context.Context, countryID, stateID int64) (models.State, error) {
	for _, st := range s.states {
		if st.ID == stateID && st.CountryID == countryID {
			return st, nil
		}
	}
	return models.State{}, sentinel.ErrNotFound
}

// StateAt returns the state of the country containing the point, falling
// back to the nearest state when the approximate boxes leave a gap.
func (s *InMemory) StateAt(_ context.Context, countryID int64, lon, lat float64) (models.State, error) {
	var candidates []models.State
	for _, st := range s.states {
		if st.CountryID != countryID {
			continue
		}
		if st.Box.Contains(lon, lat) {
			return st, nil
		}
		candidates = append(candidates, st)
	}
	if len(candidates) == 0 {
		return models.State{}, sentinel.ErrNotFound
	}
	best := candidates[0]
	bestDist := boxDistanceSq(best.Box, lon, lat)
	for _, st := range candidates[1:] {
		if d := boxDistanceSq(st.Box, lon, lat); d < bestDist {
			best, bestDist = st, d
		}
	}
	return best, nil
}

// CitiesByState returns a state's cities ordered by name.
func (s *InMemory) CitiesByState(_ context.Context, stateID int64) ([]models.City, error) {
	var out []models.City
	for _, c := range s.cities {
		if c.StateID == stateID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CityName < out[j].CityName })
	return out, nil
}

// NearestCityInState returns the state's city closest to the point.
func (s *InMemory) NearestCityInState(_ context.Context, stateID int64, lon, lat float64) (models.City, error) {
	var best models.City
	bestDist := -1.0
	for _, c := range s.cities {
		if c.StateID != stateID {
			continue
		}
		d := distSq(c.Lon, c.Lat, lon, lat)
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist < 0 {
		return models.City{}, sentinel.ErrNotFound
	}
	return best, nil
}

// AddressesAt returns addresses within the lookup radius of the point,
// nearest first.
func (s *InMemory) AddressesAt(_ context.Context, lon, lat float64) ([]models.Address, error) {
	type scored struct {
		addr models.Address
		d    float64
	}
	var matched []scored
	for _, a := range s.addresses {
		d := distSq(a.Lon, a.Lat, lon, lat)
		if d <= addressRadiusDeg*addressRadiusDeg {
			matched = append(matched, scored{addr: a, d: d})
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].d < matched[j].d })
	out := make([]models.Address, len(matched))
	for i, m := range matched {
		out[i] = m.addr
	}
	return out, nil
}

// distSq is the squared equirectangular distance in degrees. Adequate at
// the city scale of the seed data; no great-circle math needed.
func distSq(lon1, lat1, lon2, lat2 float64) float64 {
	dLon := lon1 - lon2
	dLat := lat1 - lat2
	return dLon*dLon + dLat*dLat
}

func boxDistanceSq(b models.BoundingBox, lon, lat float64) float64 {
	cx := clamp(lon, b.MinLon, b.MaxLon)
	cy := clamp(lat, b.MinLat, b.MaxLat)
	return distSq(lon, lat, cx, cy)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
