// Package models holds the geographic reference hierarchy:
// country -> state -> city, plus geocoded street addresses.
package models

// BoundingBox is an axis-aligned lon/lat rectangle. The seed data uses
// approximate boxes; containment is a closed-interval check.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// Contains reports whether the point lies inside the box, borders included.
func (b BoundingBox) Contains(lon, lat float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon && lat >= b.MinLat && lat <= b.MaxLat
}

// Country is one row of the static country table. IsSupported gates all
// geo-dependent functionality for points and lookups resolving to it.
type Country struct {
	ID          int64  `json:"country_id"`
	ISOCode     string `json:"iso_code"`
	CountryName string `json:"country_name"`
	IsSupported bool   `json:"is_supported"`
	Box         BoundingBox
}

// Row projects the country for the predicate evaluator using the column
// names a relational rendition of the table would carry.
func (c Country) Row() map[string]any {
	return map[string]any{
		"country_id":   c.ID,
		"iso_code":     c.ISOCode,
		"country_name": c.CountryName,
		"is_supported": c.IsSupported,
	}
}

// State belongs to exactly one country.
type State struct {
	ID        int64  `json:"state_id"`
	CountryID int64  `json:"country_id"`
	StateName string `json:"state_name"`
	Box       BoundingBox
}

// City belongs to exactly one state; Lon/Lat is the city centre.
type City struct {
	ID       int64   `json:"city_id"`
	StateID  int64   `json:"state_id"`
	CityName string  `json:"city_name"`
	Lon      float64 `json:"longitude"`
	Lat      float64 `json:"latitude"`
}

// Address is one geocoded street-level record with its city and country
// embedded, as callers render it without further lookups.
type Address struct {
	ID          int64   `json:"address_id"`
	StreetName  string  `json:"street_name"`
	PostalCode  string  `json:"postal_code"`
	CityID      int64   `json:"city_id"`
	CityName    string  `json:"city_name"`
	CountryID   int64   `json:"country_id"`
	CountryCode string  `json:"country_code"`
	Lon         float64 `json:"longitude"`
	Lat         float64 `json:"latitude"`
}

// Location is the result of a hierarchical point resolution.
type Location struct {
	CountryID   int64  `json:"country_id"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	StateID     int64  `json:"state_id"`
	StateName   string `json:"state_name"`
	CityID      int64  `json:"city_id"`
	CityName    string `json:"city_name"`
}
