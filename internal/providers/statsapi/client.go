// Package statsapi implements the providers interfaces against the public
// MLB StatsAPI and maps its responses to domain models.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"mlb-splits-service/internal/domain"
	"mlb-splits-service/internal/providers"
)

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches people, rosters and situational splits from the StatsAPI.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a StatsAPI client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
	}
}

// SearchPeople runs the free-text person search and returns every candidate.
func (c *Client) SearchPeople(ctx context.Context, name string) ([]domain.Person, error) {
	endpoint := fmt.Sprintf("%s/people/search?name=%s", c.baseURL, url.QueryEscape(name))

	var payload searchResponse
	if err := c.getJSON(ctx, endpoint, "people/search", &payload); err != nil {
		return nil, err
	}

	people := make([]domain.Person, 0, len(payload.People))
	for _, p := range payload.People {
		people = append(people, mapPerson(p))
	}
	return people, nil
}

// Person fetches one person's canonical record by id.
func (c *Client) Person(ctx context.Context, personID int) (domain.Person, error) {
	endpoint := fmt.Sprintf("%s/people/%d", c.baseURL, personID)

	var payload peopleResponse
	if err := c.getJSON(ctx, endpoint, "people", &payload); err != nil {
		return domain.Person{}, err
	}
	if len(payload.People) == 0 {
		return domain.Person{}, &providers.RequestError{
			Provider:   ProviderName,
			Endpoint:   "people",
			StatusCode: http.StatusNotFound,
		}
	}
	return mapPerson(payload.People[0]), nil
}

// Roster fetches a team's current roster.
func (c *Client) Roster(ctx context.Context, teamID int) ([]domain.Person, error) {
	endpoint := fmt.Sprintf("%s/teams/%d/roster", c.baseURL, teamID)

	var payload rosterResponse
	if err := c.getJSON(ctx, endpoint, "teams/roster", &payload); err != nil {
		return nil, err
	}

	people := make([]domain.Person, 0, len(payload.Roster))
	for _, entry := range payload.Roster {
		people = append(people, mapPerson(entry.Person))
	}
	return people, nil
}

// SituationalSplits fetches one person's regular-season hitting splits versus
// left- and right-handed pitching for the given season.
func (c *Client) SituationalSplits(ctx context.Context, personID, season int) (providers.SplitSet, error) {
	q := url.Values{}
	q.Set("stats", "statSplits")
	q.Set("sitCodes", SitCodeVsLeft+","+SitCodeVsRight)
	q.Set("group", "hitting")
	q.Set("gameType", "R")
	q.Set("season", strconv.Itoa(season))
	endpoint := fmt.Sprintf("%s/people/%d/stats?%s", c.baseURL, personID, q.Encode())

	var payload statsResponse
	if err := c.getJSON(ctx, endpoint, "people/stats", &payload); err != nil {
		return providers.SplitSet{}, err
	}

	return providers.SplitSet{
		VsLeft:  pickSituational(payload, SitCodeVsLeft),
		VsRight: pickSituational(payload, SitCodeVsRight),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, name string, payload any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &providers.RequestError{
			Provider:   ProviderName,
			Endpoint:   name,
			StatusCode: resp.StatusCode,
		}
	}

	return json.NewDecoder(resp.Body).Decode(payload)
}
