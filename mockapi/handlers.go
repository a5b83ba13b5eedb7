package mockapi

import (
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jcarver/wellpath/client"
)

// Info handles GET /info. No authentication required.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.siteInfo())
}

func urlParamInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil
}

// participantFromRequest resolves the {participantID} URL parameter. When
// the participant does not exist it writes the not-found contract body
// and reports false.
func (s *Server) participantFromRequest(w http.ResponseWriter, r *http.Request) (client.Participant, bool) {
	id, ok := urlParamInt(r, "participantID")
	if !ok {
		writeParticipantMissing(w)
		return client.Participant{}, false
	}
	p, found := s.data.participants[id]
	if !found {
		writeParticipantMissing(w)
		return client.Participant{}, false
	}
	return p, true
}

// GetParticipant handles GET /participant/get/{participantID}.
func (s *Server) GetParticipant(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// GetDemographics handles GET /participant/get/{participantID}/demographics.
func (s *Server) GetDemographics(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.data.demographics[p.ID])
}

// GetHealthOverview handles GET /participant/get/{participantID}/health_overview.
func (s *Server) GetHealthOverview(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.data.overviews[p.ID])
}

// ListRecentVisits handles GET /participant/case_notes/{participantID}/list/all.
// The full visit list is returned unpaginated.
func (s *Server) ListRecentVisits(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	visits := s.data.visits[p.ID]
	if visits == nil {
		visits = []client.RecentVisit{}
	}
	writeJSON(w, http.StatusOK, visits)
}

// BPHistory handles GET /participant/stats/bp/history/{participantID}.
func (s *Server) BPHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	page, pageSize := parsePagination(r)
	writeJSON(w, http.StatusOK, paginate(s.data.bp[p.ID], page, pageSize))
}

// WeightHistory handles GET /participant/stats/weight/history/{participantID}.
func (s *Server) WeightHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	page, pageSize := parsePagination(r)
	writeJSON(w, http.StatusOK, paginate(s.data.weight[p.ID], page, pageSize))
}

// GlucoseHistory handles GET /participant/stats/glucose/history/{participantID}.
func (s *Server) GlucoseHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	page, pageSize := parsePagination(r)
	writeJSON(w, http.StatusOK, paginate(s.data.glucose[p.ID], page, pageSize))
}

// Medications handles GET /participant/medications/{participantID}/search.
func (s *Server) Medications(w http.ResponseWriter, r *http.Request) {
	p, ok := s.participantFromRequest(w, r)
	if !ok {
		return
	}
	page, pageSize := parsePagination(r)
	writeJSON(w, http.StatusOK, paginate(s.data.medications[p.ID], page, pageSize))
}

// LookupParticipants handles POST /participant/lookup. Name filters match
// case-insensitive prefixes; an empty filter matches everyone.
func (s *Server) LookupParticipants(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJSON[client.ParticipantLookupRequest](w, r)
	if !ok {
		return
	}

	var matches []client.ParticipantLookupResponse
	for _, id := range sortedParticipantIDs(s.data) {
		p := s.data.participants[id]
		if !matchesPrefix(p.FirstName, req.FirstName) || !matchesPrefix(p.LastName, req.LastName) {
			continue
		}
		if req.Program != nil && *req.Program != string(p.Program) {
			continue
		}
		matches = append(matches, client.ParticipantLookupResponse{
			ID:             p.ID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			PhoneNumberOne: strPtr(p.PhoneNumberOne),
			Program:        string(p.Program),
			Location:       firstVisitLocation(s.data, p.ID),
		})
	}

	page, pageSize := parsePagination(r)
	writeJSON(w, http.StatusOK, paginate(matches, page, pageSize))
}

func matchesPrefix(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(value), strings.ToLower(filter))
}

func firstVisitLocation(d *dataset, participantID int) int {
	if visits := d.visits[participantID]; len(visits) > 0 {
		return visits[0].Location
	}
	return 0
}

func sortedParticipantIDs(d *dataset) []int {
	return slices.Sorted(maps.Keys(d.participants))
}

// ListGoals handles GET /participant/goals/{id}/all, where {id} is a
// participant id.
func (s *Server) ListGoals(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "id")
	if !ok {
		writeParticipantMissing(w)
		return
	}
	p, found := s.data.participants[id]
	if !found {
		writeParticipantMissing(w)
		return
	}
	goals := s.data.goals[p.ID]
	if goals == nil {
		goals = []client.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

// ListGoalSteps handles GET /participant/goals/{id}/steps, where {id} is
// a goal id.
func (s *Server) ListGoalSteps(w http.ResponseWriter, r *http.Request) {
	goalID, ok := urlParamInt(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	steps := s.data.steps[goalID]
	if steps == nil {
		steps = []client.GoalStep{}
	}
	writeJSON(w, http.StatusOK, steps)
}

// ListLocations handles GET /location/all.
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.data.locations)
}

// GetLocation handles GET /location/{locationID}.
func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(r, "locationID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid location id")
		return
	}
	for _, loc := range s.data.locations {
		if loc.ID == id {
			writeJSON(w, http.StatusOK, loc)
			return
		}
	}
	writeError(w, http.StatusNotFound, "no such location")
}

// ResearcherQuery handles POST /researcher/query. The filter body is
// accepted but only the last_name filter is applied; everything else in
// the demo dataset passes through.
func (s *Server) ResearcherQuery(w http.ResponseWriter, r *http.Request) {
	filter, ok := decodeJSON[map[string]any](w, r)
	if !ok {
		return
	}

	rows := s.data.researchers
	if lastName, found := filter["last_name"].(string); found && lastName != "" {
		filtered := make([]client.ResearcherParticipant, 0, len(rows))
		for _, row := range rows {
			if matchesPrefix(row.LastName, lastName) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	page, pageSize := parsePagination(r)
	writeJSON(w, http.StatusOK, paginate(rows, page, pageSize))
}
