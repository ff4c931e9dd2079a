package store

import "github.com/mjza/mra-core-sub001/internal/geo/models"

// Seed data for the geographic hierarchy. Bounding boxes are approximate;
// where two boxes would overlap at a seeded city, the boxes are trimmed so
// each city centre falls inside exactly one state.

func seedCountries() []models.Country {
	return []models.Country{
		{ID: 1, ISOCode: "CA", CountryName: "Canada", IsSupported: true,
			Box: models.BoundingBox{MinLon: -141.0, MinLat: 41.7, MaxLon: -52.6, MaxLat: 83.1}},
		{ID: 2, ISOCode: "US", CountryName: "United States", IsSupported: true,
			Box: models.BoundingBox{MinLon: -124.8, MinLat: 24.5, MaxLon: -66.9, MaxLat: 41.69}},
		{ID: 3, ISOCode: "CU", CountryName: "Cuba", IsSupported: false,
			Box: models.BoundingBox{MinLon: -85.0, MinLat: 19.8, MaxLon: -74.1, MaxLat: 23.3}},
	}
}

func seedStates() []models.State {
	return []models.State{
		{ID: 1, CountryID: 1, StateName: "Alberta",
			Box: models.BoundingBox{MinLon: -120.0, MinLat: 49.0, MaxLon: -110.0, MaxLat: 60.0}},
		{ID: 2, CountryID: 1, StateName: "British Columbia",
			Box: models.BoundingBox{MinLon: -139.1, MinLat: 48.3, MaxLon: -120.01, MaxLat: 60.0}},
		{ID: 3, CountryID: 1, StateName: "Ontario",
			Box: models.BoundingBox{MinLon: -95.2, MinLat: 41.7, MaxLon: -74.3, MaxLat: 56.9}},
		{ID: 4, CountryID: 1, StateName: "Saskatchewan",
			Box: models.BoundingBox{MinLon: -109.99, MinLat: 49.0, MaxLon: -101.4, MaxLat: 60.0}},
		{ID: 5, CountryID: 2, StateName: "New York",
			Box: models.BoundingBox{MinLon: -79.8, MinLat: 40.5, MaxLon: -71.8, MaxLat: 41.69}},
		{ID: 6, CountryID: 2, StateName: "California",
			Box: models.BoundingBox{MinLon: -124.4, MinLat: 32.5, MaxLon: -114.1, MaxLat: 41.69}},
	}
}

func seedCities() []models.City {
	return []models.City{
		{ID: 1, StateID: 1, CityName: "Calgary", Lon: -114.0719, Lat: 51.0447},
		{ID: 2, StateID: 1, CityName: "Edmonton", Lon: -113.4938, Lat: 53.5461},
		{ID: 3, StateID: 2, CityName: "Vancouver", Lon: -123.1207, Lat: 49.2827},
		{ID: 4, StateID: 3, CityName: "Toronto", Lon: -79.3832, Lat: 43.6532},
		{ID: 5, StateID: 4, CityName: "Saskatoon", Lon: -106.6702, Lat: 52.1579},
		{ID: 6, StateID: 5, CityName: "New York City", Lon: -74.0060, Lat: 40.7128},
		{ID: 7, StateID: 6, CityName: "Los Angeles", Lon: -118.2437, Lat: 34.0522},
	}
}

func seedAddresses() []models.Address {
	return []models.Address{
		{ID: 1, StreetName: "Crowchild Trail NW", PostalCode: "T2N 4T4",
			CityID: 1, CityName: "Calgary", CountryID: 1, CountryCode: "CA",
			Lon: -114.1289, Lat: 51.0743},
		{ID: 2, StreetName: "Kensington Road NW", PostalCode: "T2N 3P9",
			CityID: 1, CityName: "Calgary", CountryID: 1, CountryCode: "CA",
			Lon: -114.1051, Lat: 51.0521},
		{ID: 3, StreetName: "University Drive NW", PostalCode: "T2N 1N4",
			CityID: 1, CityName: "Calgary", CountryID: 1, CountryCode: "CA",
			Lon: -114.1302, Lat: 51.0780},
		{ID: 4, StreetName: "Queen Street West", PostalCode: "M5V 2A5",
			CityID: 4, CityName: "Toronto", CountryID: 1, CountryCode: "CA",
			Lon: -79.3912, Lat: 43.6479},
		{ID: 5, StreetName: "Broadway", PostalCode: "10012",
			CityID: 6, CityName: "New York City", CountryID: 2, CountryCode: "US",
			Lon: -74.0015, Lat: 40.7260},
		{ID: 6, StreetName: "Calle Obispo", PostalCode: "10100",
			CityID: 0, CityName: "Havana", CountryID: 3, CountryCode: "CU",
			Lon: -82.3520, Lat: 23.1370},
	}
}
