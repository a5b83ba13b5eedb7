package client

import "context"

// ResearcherQuery runs a researcher query. The filter map is passed to the
// server as-is (e.g. {"age": ">25"}).
func (c *Client) ResearcherQuery(ctx context.Context, query map[string]any, q PageQuery) (Page[ResearcherParticipant], error) {
	endpoint := "/researcher/query"
	var page Page[ResearcherParticipant]
	if err := c.postJSON(ctx, q.encode(endpoint), query, &page, true); err != nil {
		return Page[ResearcherParticipant]{}, err
	}
	if err := page.validate(endpoint, q); err != nil {
		return Page[ResearcherParticipant]{}, err
	}
	return page, nil
}

// SiteInfo fetches the deployed server's build information. This endpoint
// requires no authentication.
func (c *Client) SiteInfo(ctx context.Context) (SiteInfo, error) {
	var info SiteInfo
	err := c.getJSON(ctx, "/info", &info, false)
	return info, err
}
