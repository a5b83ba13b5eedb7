package client

import (
	"context"
	"fmt"
)

// Locations lists all program sites.
func (c *Client) Locations(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := c.getJSON(ctx, "/location/all", &locations, true)
	return locations, err
}

// Location retrieves one site by id. The second return is false when no
// such site exists.
func (c *Client) Location(ctx context.Context, id int) (Location, bool, error) {
	return fetchOptional[Location](ctx, c, fmt.Sprintf("/location/%d", id))
}

// OrganizeLocations resolves parent_location ids into nested values for
// display. Locations referencing an unknown parent keep a nil parent.
func OrganizeLocations(locations []Location) []LocationWithParent {
	byID := make(map[int]Location, len(locations))
	for _, loc := range locations {
		byID[loc.ID] = loc
	}

	out := make([]LocationWithParent, 0, len(locations))
	for _, loc := range locations {
		item := LocationWithParent{ID: loc.ID, Name: loc.Name, Program: loc.Program}
		if loc.ParentLocation != nil {
			if parent, ok := byID[*loc.ParentLocation]; ok {
				item.ParentLocation = &LocationWithParent{
					ID:      parent.ID,
					Name:    parent.Name,
					Program: parent.Program,
				}
			}
		}
		out = append(out, item)
	}
	return out
}

// LocationWithParent is a Location with its parent resolved.
type LocationWithParent struct {
	ID             int                 `json:"id"`
	Name           string              `json:"name"`
	Program        Program             `json:"program"`
	ParentLocation *LocationWithParent `json:"parent_location,omitempty"`
}
