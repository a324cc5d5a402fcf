package gateway

import (
	"context"
	"net/url"

	"github.com/Leonguyen2004/ptit-pttkht-btl/internal/league"
)

// SearchStadiums returns stadiums whose name contains the substring. An empty
// name returns every stadium.
func (c *Client) SearchStadiums(ctx context.Context, name string) ([]league.Stadium, error) {
	query := url.Values{}
	query.Set("name", name)

	var stadiums []league.Stadium
	if err := c.getJSON(ctx, "/api/stadiums", query, &stadiums); err != nil {
		return nil, err
	}
	return stadiums, nil
}

// FindStadiumByID looks a stadium up through the search endpoint; the backend
// has no direct stadium-by-id lookup.
func (c *Client) FindStadiumByID(ctx context.Context, id int64) (*league.Stadium, error) {
	stadiums, err := c.SearchStadiums(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range stadiums {
		if stadiums[i].ID == id {
			return &stadiums[i], nil
		}
	}
	return nil, nil
}

// CreateStadium persists a new stadium.
func (c *Client) CreateStadium(ctx context.Context, stadium league.Stadium) (league.Stadium, error) {
	var created league.Stadium
	if err := c.postJSON(ctx, "/api/stadiums", stadium, &created); err != nil {
		return league.Stadium{}, err
	}
	return created, nil
}
