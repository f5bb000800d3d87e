package geo

import "math"

const earthRadiusKm = 6371

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the great-circle distance between two points in whole
// kilometers, using the haversine formula. Inputs are degrees. Callers are
// responsible for guarding against NaN coordinates.
func Distance(lat1, lon1, lat2, lon2 float64) int {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return int(math.Round(earthRadiusKm * c))
}
