package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"football-scoreboard/internal/domain"
	"football-scoreboard/internal/timeutil"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	seasonPageSize = "1000"
	userAgent      = "football-scoreboard/1.0"
)

var leaguePaths = map[domain.League]string{
	domain.LeagueNFL:    "football/nfl",
	domain.LeagueNCAAFB: "football/college-football",
}

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client fetches scoreboard and ranking data from the ESPN site API and
// maps them to domain models.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// FetchGames retrieves the season scoreboard for a league and maps it to
// normalized game records. Malformed events are dropped, not fatal.
func (c *Client) FetchGames(ctx context.Context, league domain.League) ([]domain.Game, error) {
	path, ok := leaguePaths[league]
	if !ok {
		return nil, fmt.Errorf("espn: unknown league %q", league)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path+"/scoreboard", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("dates", timeutil.SeasonWindow(c.now()))
	q.Set("limit", seasonPageSize)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	var payload scoreboardResponse
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}

	games := make([]domain.Game, 0, len(payload.Events))
	for _, ev := range payload.Events {
		if game, ok := mapEvent(ev, league); ok {
			games = append(games, game)
		}
	}
	return games, nil
}

// FetchRankings retrieves the current college football poll (the first
// ranking in the feed, normally the AP Top 25) as abbr -> rank.
func (c *Client) FetchRankings(ctx context.Context) (map[string]int, error) {
	path := leaguePaths[domain.LeagueNCAAFB]
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+path+"/rankings", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	var payload rankingsResponse
	if err := c.doJSON(req, &payload); err != nil {
		return nil, err
	}
	if len(payload.Rankings) == 0 {
		return map[string]int{}, nil
	}

	out := make(map[string]int)
	for _, r := range payload.Rankings[0].Ranks {
		abbr := strings.ToUpper(strings.TrimSpace(r.Team.Abbreviation))
		if abbr == "" || r.Current <= 0 {
			continue
		}
		out[abbr] = r.Current
	}
	return out, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("espn: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
