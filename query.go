package fleettracker

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/fleet-tracker/converter"
	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// lowerParams flattens a query to its first values with lower-cased keys.
func lowerParams(q url.Values) map[string]string {
	m := make(map[string]string, len(q))
	for k, v := range q {
		if len(v) > 0 {
			m[strings.ToLower(k)] = strings.TrimSpace(v[0])
		}
	}
	return m
}

func parseStatus(s string) (tracking.Status, error) {
	if s == "" {
		return "", nil
	}
	st := tracking.Status(strings.ToLower(s))
	if !st.Valid() {
		return "", &QueryError{Msg: "Unsupported status: " + s + ". Use online, idle or offline."}
	}
	return st, nil
}

func parseVehicleMonitoring(params map[string]string) (converter.Filter, error) {
	st, err := parseStatus(params["status"])
	if err != nil {
		return converter.Filter{}, err
	}
	return converter.Filter{VehicleRef: params["vehicleref"], Status: string(st)}, nil
}

func parseFloat(name, s string) (float64, error) {
	if s == "" {
		return 0, &QueryError{Msg: "Missing parameter: " + name + "."}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &QueryError{Msg: "Parameter " + name + " must be a number."}
	}
	return v, nil
}

func parsePosition(params map[string]string) (tracking.Position, error) {
	lat, err := parseFloat("lat", params["lat"])
	if err != nil {
		return tracking.Position{}, err
	}
	lng, err := parseFloat("lng", params["lng"])
	if err != nil {
		return tracking.Position{}, err
	}
	if !utils.ValidCoordinate(lat, lng) {
		return tracking.Position{}, &QueryError{Msg: "Coordinates out of range."}
	}
	return tracking.Position{Lat: lat, Lng: lng}, nil
}
