// Package domain contains the core data types for the Lunchmap application.
// This package has zero external dependencies and is imported by every other
// internal package (client, service, repo, handler).
package domain

import (
	"fmt"
	"strings"
)

// Coordinate is a point on the map in floating-point degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// InRange reports whether the coordinate lies within valid WGS84 bounds.
func (c Coordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// Shop is a registered point of interest on the map.
// ID is assigned by the server; coordinates never change after creation.
type Shop struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	URL       string  `json:"url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location returns the shop's coordinate.
func (s Shop) Location() Coordinate {
	return Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// ShopInput is the body of POST /api/shops.
type ShopInput struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	URL       string  `json:"url"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate enforces the only client-side rule for shops: a non-blank name.
// Address, phone and url are passed through verbatim.
func (in ShopInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	return nil
}

// Location returns the coordinate the shop will be registered at.
func (in ShopInput) Location() Coordinate {
	return Coordinate{Latitude: in.Latitude, Longitude: in.Longitude}
}
