package fleettracker

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/fleet-tracker/internal"
	"github.com/theoremus-urban-solutions/fleet-tracker/phonebook"
)

func (s *Server) handleListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := s.app.Persons.List(r.Context())
	if err != nil {
		internal.Logf("list persons: %v", err)
		writeError(w, http.StatusBadGateway, "phonebook unavailable")
		return
	}
	writeJSON(w, http.StatusOK, phonebook.Filter(persons, lowerParams(r.URL.Query())["filter"]))
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var p phonebook.Person
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	created, err := s.app.Persons.Add(r.Context(), p)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, created)
	case errors.Is(err, phonebook.ErrDuplicateEntry):
		writeError(w, http.StatusConflict, phonebook.CanonicalName(p.Name)+" is already added to phonebook")
	case errors.Is(err, phonebook.ErrInvalidPerson):
		writeError(w, http.StatusBadRequest, "name is required")
	default:
		internal.Logf("add person: %v", err)
		writeError(w, http.StatusBadGateway, "phonebook unavailable")
	}
}
