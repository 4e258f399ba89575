package tracking

// DefaultRoutePoints is the length of a generated route trace.
const DefaultRoutePoints = 20

const (
	routeStartSpread = 0.5
	routeStep        = 0.0005
)

// Route is a trace of past positions for one device.
type Route struct {
	DeviceID string     `json:"device_id"`
	Points   []Position `json:"points"`
}

// GenerateRoute builds a mock trace near the first reference location. A
// non-positive points selects DefaultRoutePoints.
func (s *Simulator) GenerateRoute(deviceID string, points int) Route {
	if points <= 0 {
		points = DefaultRoutePoints
	}
	origin := s.opts.Locations[0].Position
	start := Position{
		Lat: origin.Lat + (s.rng.Float64()-0.5)*routeStartSpread,
		Lng: origin.Lng + (s.rng.Float64()-0.5)*routeStartSpread,
	}.Clamped()

	pts := make([]Position, 0, points)
	pts = append(pts, start)
	for i := 1; i < points; i++ {
		pts = append(pts, RandomWalk(pts[i-1], routeStep, s.rng))
	}
	return Route{DeviceID: deviceID, Points: pts}
}
