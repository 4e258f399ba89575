package fleettracker

import (
	"net/http"

	"github.com/theoremus-urban-solutions/fleet-tracker/utils"
)

type healthResponse struct {
	Status   string `json:"status"`
	Seq      uint64 `json:"seq"`
	TakenAt  string `json:"taken_at"`
	Devices  int    `json:"devices"`
	Interval string `json:"tick_interval"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.app.Tracker.Snapshot()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Seq:      snap.Seq(),
		TakenAt:  utils.Iso8601(snap.TakenAt()),
		Devices:  snap.Len(),
		Interval: s.app.Tracker.Interval().String(),
	})
}
