// Package directory fetches random visitor profiles from randomuser.me.
package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/evcraddock/golden-profile/internal/metrics"
)

// DefaultURL is the randomuser.me API endpoint.
const DefaultURL = "https://randomuser.me/api/"

// Profile is a visitor card shown on the AI page.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Picture  string `json:"picture"`
	Location string `json:"location"`
	Username string `json:"username"`
}

// Fallback is served whenever the directory cannot be reached.
var Fallback = Profile{
	Name:     "Anonymous Cat Lover",
	Email:    "catlover@example.com",
	Picture:  "https://via.placeholder.com/150/FFD3A5/000000?text=🐱",
	Location: "Somewhere in the world",
	Username: "catlover",
}

// randomUserResponse is the subset of the randomuser.me payload we read.
type randomUserResponse struct {
	Results []struct {
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
		Email   string `json:"email"`
		Picture struct {
			Large string `json:"large"`
		} `json:"picture"`
		Location struct {
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"location"`
		Login *struct {
			Username string `json:"username"`
		} `json:"login"`
	} `json:"results"`
}

// Client fetches profiles from randomuser.me.
type Client struct {
	http *resty.Client

	// Overridable for testing.
	url string
}

// NewClient creates a directory client. An empty url uses DefaultURL.
func NewClient(url string, timeout time.Duration) *Client {
	if url == "" {
		url = DefaultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: resty.New().
			SetHeader("Accept", "application/json").
			SetTimeout(timeout).
			SetRetryCount(0),
		url: url,
	}
}

// FetchProfile returns a random profile, or Fallback on any failure.
func (c *Client) FetchProfile(ctx context.Context) Profile {
	p, err := c.lookup(ctx)
	if err != nil {
		metrics.UpstreamCallsTotal.WithLabelValues("randomuser", "fallback").Inc()
		zerolog.Ctx(ctx).Warn().Err(err).Msg("random user lookup failed, using fallback")
		return Fallback
	}
	metrics.UpstreamCallsTotal.WithLabelValues("randomuser", "ok").Inc()
	return p
}

func (c *Client) lookup(ctx context.Context) (Profile, error) {
	var result randomUserResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"inc": "name,email,picture,location",
			"nat": "us,gb,ca,au,nz",
		}).
		SetResult(&result).
		Get(c.url)
	if err != nil {
		return Profile{}, fmt.Errorf("sending request: %w", err)
	}
	if resp.IsError() {
		return Profile{}, fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	if len(result.Results) == 0 {
		return Profile{}, fmt.Errorf("no results")
	}

	u := result.Results[0]
	first, last := strings.TrimSpace(u.Name.First), strings.TrimSpace(u.Name.Last)
	if first == "" && last == "" {
		return Profile{}, fmt.Errorf("result has no name")
	}

	username := ""
	if u.Login != nil {
		username = u.Login.Username
	}
	if username == "" {
		username = strings.ToLower(first + last)
	}

	return Profile{
		Name:     strings.TrimSpace(first + " " + last),
		Email:    u.Email,
		Picture:  u.Picture.Large,
		Location: fmt.Sprintf("%s, %s", u.Location.City, u.Location.Country),
		Username: username,
	}, nil
}
