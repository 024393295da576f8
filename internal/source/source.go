// Package source pulls newly published listings from the marketplace.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"earnbot/internal/model"
)

// StalenessWindow is the minimum age a listing must reach before it is
// considered "new" for notification purposes. The delay lets upstream
// metadata (rewards, skills) settle before users are notified.
const StalenessWindow = 12 * time.Hour

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches listings from the marketplace JSON API.
type Client struct {
	client HTTPClient
	url    string
}

// New creates a Client that pulls listings from the given endpoint.
func New(client HTTPClient, url string) *Client {
	return &Client{client: client, url: url}
}

// Fetch downloads the current listings and returns those past the
// staleness window, in the order the API supplied them.
func (c *Client) Fetch(ctx context.Context) ([]model.Listing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "EarnNotifyBot/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var raw []apiListing
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	listings := make([]model.Listing, 0, len(raw))
	for _, r := range raw {
		listings = append(listings, r.toListing())
	}
	return FilterFresh(listings, time.Now()), nil
}

// FilterFresh returns the listings whose publish time is at least
// StalenessWindow before now. Listings without a publish time are
// never returned.
func FilterFresh(listings []model.Listing, now time.Time) []model.Listing {
	cutoff := now.Add(-StalenessWindow)
	var fresh []model.Listing
	for _, l := range listings {
		if l.PublishedAt != nil && !l.PublishedAt.After(cutoff) {
			fresh = append(fresh, l)
		}
	}
	return fresh
}

type apiListing struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Deadline         *time.Time `json:"deadline"`
	USDValue         *float64   `json:"usdValue"`
	Token            *string    `json:"token"`
	RewardAmount     *float64   `json:"rewardAmount"`
	Type             string     `json:"type"`
	Skills           []string   `json:"skills"`
	Region           string     `json:"region"`
	PublishedAt      *time.Time `json:"publishedAt"`
	Sponsor          sponsor    `json:"sponsor"`
	CompensationType string     `json:"compensationType"`
	MinRewardAsk     *float64   `json:"minRewardAsk"`
	MaxRewardAsk     *float64   `json:"maxRewardAsk"`
}

type sponsor struct {
	Name string `json:"name"`
}

func (r apiListing) toListing() model.Listing {
	return model.Listing{
		ID:           r.ID,
		Title:        r.Title,
		Slug:         r.Slug,
		Type:         model.ListingType(r.Type),
		Deadline:     r.Deadline,
		PublishedAt:  r.PublishedAt,
		Skills:       r.Skills,
		Sponsor:      r.Sponsor.Name,
		Region:       r.Region,
		Compensation: r.toCompensation(),
	}
}

// toCompensation maps the API's nullable reward fields onto the closed
// compensation variant. Inconsistent payloads degrade to shapes the
// renderer treats as "Amount TBD" instead of failing the batch.
func (r apiListing) toCompensation() model.Compensation {
	switch model.CompensationKind(r.CompensationType) {
	case model.CompVariable:
		return model.VariableCompensation()
	case model.CompRange:
		var minAsk, maxAsk float64
		if r.MinRewardAsk != nil {
			minAsk = *r.MinRewardAsk
		}
		if r.MaxRewardAsk != nil {
			maxAsk = *r.MaxRewardAsk
		}
		return model.RangeCompensation(minAsk, maxAsk)
	default:
		var usd, amount float64
		var token string
		if r.USDValue != nil {
			usd = *r.USDValue
		}
		if r.RewardAmount != nil {
			amount = *r.RewardAmount
		}
		if r.Token != nil {
			token = *r.Token
		}
		return model.FixedCompensation(usd, token, amount)
	}
}
