package fleettracker

import "net/http"

func (s *Server) handleVehicleMonitoringJSON(w http.ResponseWriter, r *http.Request) {
	s.vehicleMonitoring(w, r, "json")
}

func (s *Server) handleVehicleMonitoringXML(w http.ResponseWriter, r *http.Request) {
	s.vehicleMonitoring(w, r, "xml")
}

func (s *Server) vehicleMonitoring(w http.ResponseWriter, r *http.Request, format string) {
	f, err := parseVehicleMonitoring(lowerParams(r.URL.Query()))
	if err != nil {
		writeQueryError(w, err)
		return
	}
	buf, err := s.app.VehicleMonitoring(f, format)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	if format == "xml" {
		writeBytes(w, "application/xml", buf)
		return
	}
	writeBytes(w, "application/json", buf)
}

func (s *Server) handleVehiclePositionsPB(w http.ResponseWriter, r *http.Request) {
	buf, err := s.app.VehiclePositions("pb")
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeBytes(w, "application/x-protobuf", buf)
}

func (s *Server) handleVehiclePositionsJSON(w http.ResponseWriter, r *http.Request) {
	buf, err := s.app.VehiclePositions("json")
	if err != nil {
		writeQueryError(w, err)
		return
	}
	writeBytes(w, "application/json", buf)
}
