package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Freeeeeet/campus_bot/internal/model"
)

type groupsResponse struct {
	Results []model.GroupResult `json:"results"`
}

// SearchGroups ищет группы по строке запроса
func (p *Portal) SearchGroups(ctx context.Context, query string) ([]model.GroupResult, error) {
	params := url.Values{}
	params.Set("search_group", query)

	body, err := p.client.get(ctx, groupsPath+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}

	var resp groupsResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return nil, fmt.Errorf("%w: decode groups: %v", ErrFetchFailure, err)
	}

	groups := make([]model.GroupResult, 0, len(resp.Results))
	for _, g := range resp.Results {
		if g.ID == "" {
			continue
		}
		groups = append(groups, g)
	}
	return groups, nil
}
