package utils

import "math"

const (
	earthRadiusKM = 6371.0

	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// KMHPerMPS converts metres per second to kilometres per hour.
	KMHPerMPS = 3.6
)

// HaversineKM returns the great-circle distance between two points in kilometres.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

// ClampLatitude limits lat to [-90, 90].
func ClampLatitude(lat float64) float64 {
	return clamp(lat, MinLatitude, MaxLatitude)
}

// ClampLongitude limits lng to [-180, 180].
func ClampLongitude(lng float64) float64 {
	return clamp(lng, MinLongitude, MaxLongitude)
}

// ValidCoordinate reports whether lat and lng are finite and within bounds.
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= MinLatitude && lat <= MaxLatitude && lng >= MinLongitude && lng <= MaxLongitude
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
