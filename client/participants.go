package client

import (
	"context"
	"fmt"
	"net/http"
)

// FetchParticipant retrieves one participant by id. The second return is
// false when no such participant exists.
func (c *Client) FetchParticipant(ctx context.Context, id int) (Participant, bool, error) {
	return fetchOptional[Participant](ctx, c, fmt.Sprintf("/participant/get/%d", id))
}

// Demographics retrieves a participant's demographics block. A 404 decodes
// the server's {"participant_exists": false} body into the Related wrapper.
func (c *Client) Demographics(ctx context.Context, id int) (Related[ParticipantDemographics], error) {
	return fetchRelated[ParticipantDemographics](ctx, c, fmt.Sprintf("/participant/get/%d/demographics", id))
}

// HealthOverview retrieves a participant's health overview block.
func (c *Client) HealthOverview(ctx context.Context, id int) (Related[ParticipantHealthOverview], error) {
	return fetchRelated[ParticipantHealthOverview](ctx, c, fmt.Sprintf("/participant/get/%d/health_overview", id))
}

// fetchRelated handles the per-participant related-data contract: 200
// carries the data, 404 carries {"participant_exists": false}.
func fetchRelated[T any](ctx context.Context, c *Client, endpoint string) (Related[T], error) {
	resp, err := c.do(ctx, http.MethodGet, endpoint, nil, true)
	if err != nil {
		return Related[T]{}, err
	}
	defer resp.Body.Close()

	switch {
	case is2xx(resp.StatusCode):
		var data T
		if err := decodeJSON(resp.Body, endpoint, &data); err != nil {
			return Related[T]{}, err
		}
		return Related[T]{ParticipantExists: true, Data: &data}, nil
	case resp.StatusCode == http.StatusNotFound:
		var notFound Related[T]
		if err := decodeJSON(resp.Body, endpoint, &notFound); err != nil {
			return Related[T]{}, err
		}
		notFound.Data = nil
		return notFound, nil
	default:
		drain(resp.Body)
		return Related[T]{}, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}
}

// RecentVisits lists all case-note visits for a participant. The second
// return is false when the participant does not exist.
func (c *Client) RecentVisits(ctx context.Context, id int) ([]RecentVisit, bool, error) {
	return fetchOptional[[]RecentVisit](ctx, c, fmt.Sprintf("/participant/case_notes/%d/list/all", id))
}

// BPHistory retrieves one page of blood pressure history.
func (c *Client) BPHistory(ctx context.Context, id int, q PageQuery) (Page[BloodPressureStats], bool, error) {
	return fetchPage[BloodPressureStats](ctx, c, fmt.Sprintf("/participant/stats/bp/history/%d", id), q)
}

// WeightHistory retrieves one page of weight history.
func (c *Client) WeightHistory(ctx context.Context, id int, q PageQuery) (Page[WeightEntry], bool, error) {
	return fetchPage[WeightEntry](ctx, c, fmt.Sprintf("/participant/stats/weight/history/%d", id), q)
}

// GlucoseHistory retrieves one page of glucose history.
func (c *Client) GlucoseHistory(ctx context.Context, id int, q PageQuery) (Page[GlucoseEntry], bool, error) {
	return fetchPage[GlucoseEntry](ctx, c, fmt.Sprintf("/participant/stats/glucose/history/%d", id), q)
}

// Medications retrieves one page of a participant's medications.
func (c *Client) Medications(ctx context.Context, id int, q PageQuery) (Page[MedicationEntry], bool, error) {
	return fetchPage[MedicationEntry](ctx, c, fmt.Sprintf("/participant/medications/%d/search", id), q)
}

// LookupParticipants searches participants by name/program. Unlike the
// per-resource lookups, any non-2xx here is a hard failure.
func (c *Client) LookupParticipants(ctx context.Context, req ParticipantLookupRequest, q PageQuery) (Page[ParticipantLookupResponse], error) {
	endpoint := "/participant/lookup"
	var page Page[ParticipantLookupResponse]
	if err := c.postJSON(ctx, q.encode(endpoint), req, &page, true); err != nil {
		return Page[ParticipantLookupResponse]{}, err
	}
	if err := page.validate(endpoint, q); err != nil {
		return Page[ParticipantLookupResponse]{}, err
	}
	return page, nil
}

// Goals lists a participant's goals.
func (c *Client) Goals(ctx context.Context, participantID int) ([]Goal, error) {
	var goals []Goal
	err := c.getJSON(ctx, fmt.Sprintf("/participant/goals/%d/all", participantID), &goals, true)
	return goals, err
}

// GoalSteps lists the steps of a goal.
func (c *Client) GoalSteps(ctx context.Context, goalID int) ([]GoalStep, error) {
	var steps []GoalStep
	err := c.getJSON(ctx, fmt.Sprintf("/participant/goals/%d/steps", goalID), &steps, true)
	return steps, err
}
