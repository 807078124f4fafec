package geo

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point holds finite in-range coordinates.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// DistanceKm computes the great-circle distance between two points using the
// haversine formula.
func DistanceKm(from, to Point) (float64, error) {
	if !from.Valid() || !to.Valid() {
		return 0, ErrInvalidCoordinate
	}

	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// DeliveryFee floors the distance to whole kilometers and multiplies by the
// per-kilometer rate. Deterministic, no side effects.
func DeliveryFee(from, to Point, ratePerKm decimal.Decimal) (decimal.Decimal, error) {
	distance, err := DistanceKm(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	km := int64(math.Floor(distance))
	return ratePerKm.Mul(decimal.NewFromInt(km)), nil
}
