package fleettracker

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theoremus-urban-solutions/fleet-tracker/geocode"
	"github.com/theoremus-urban-solutions/fleet-tracker/tracking"
)

type deviceResponse struct {
	tracking.Device
	Address string `json:"address"`
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	params := lowerParams(r.URL.Query())
	status, err := parseStatus(params["status"])
	if err != nil {
		writeQueryError(w, err)
		return
	}

	snap := s.app.Tracker.Snapshot()
	devices := snap.Devices()
	if q := params["q"]; q != "" {
		devices = geocode.SearchDevices(devices, q)
	}
	if status != "" {
		filtered := devices[:0]
		for _, d := range devices {
			if d.Status == status {
				filtered = append(filtered, d)
			}
		}
		devices = filtered
	}
	writeJSON(w, http.StatusOK, tracking.NewSnapshot(snap.Seq(), snap.TakenAt(), devices))
}

func (s *Server) handleDevice(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	d, ok := s.app.Tracker.Snapshot().Device(id)
	if !ok {
		writeError(w, http.StatusNotFound, "No such device: "+id)
		return
	}
	writeJSON(w, http.StatusOK, deviceResponse{Device: d, Address: geocode.ReverseGeocode(d.Position)})
}

func (s *Server) handleDeviceRoute(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	route, ok := s.app.Tracker.Route(id)
	if !ok {
		writeError(w, http.StatusNotFound, "No such device: "+id)
		return
	}
	writeJSON(w, http.StatusOK, route)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Tracker.Snapshot()
	writeJSON(w, http.StatusOK, tracking.Summarize(snap, s.app.Tracker.Interval()))
}

type reverseResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
}

func (s *Server) handleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	pos, err := parsePosition(lowerParams(r.URL.Query()))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reverseResponse{
		Latitude:  pos.Lat,
		Longitude: pos.Lng,
		Address:   geocode.ReverseGeocode(pos),
		City:      geocode.Nearest(pos).Name,
	})
}

func (s *Server) handleAddressSearch(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, geocode.SearchByAddress(lowerParams(r.URL.Query())["q"]))
}
