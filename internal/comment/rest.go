package comment

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// postgrestError is the error body returned by a PostgREST endpoint.
type postgrestError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *postgrestError) absent() bool {
	switch e.Code {
	case "PGRST116", "PGRST205", undefinedTable:
		return true
	}
	return strings.Contains(e.Message, "relation") || strings.Contains(e.Message, "does not exist")
}

// RESTStore persists comments through a PostgREST-compatible HTTP API,
// such as a hosted Supabase project.
type RESTStore struct {
	client *resty.Client
	path   string
}

// NewRESTStore creates a store that talks to baseURL with the given access key.
func NewRESTStore(baseURL, apiKey, table string, timeout time.Duration) *RESTStore {
	client := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/")).
		SetHeader("apikey", apiKey).
		SetAuthToken(apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetRetryCount(0)

	return &RESTStore{
		client: client,
		path:   "/rest/v1/" + url.PathEscape(table),
	}
}

// Insert posts a new row and returns the representation the server stored.
func (s *RESTStore) Insert(ctx context.Context, in Input) (*Comment, error) {
	var created []*Comment
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody([]Input{in}).
		SetResult(&created).
		SetError(&postgrestError{}).
		Post(s.path)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("inserting comment: %w", restErr(resp))
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("inserting comment: empty response")
	}
	return created[0], nil
}

// QueryAll returns all comments, newest first.
func (s *RESTStore) QueryAll(ctx context.Context) ([]*Comment, error) {
	comments := []*Comment{}
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"select": "*",
			"order":  "created_at.desc,id.desc",
		}).
		SetResult(&comments).
		SetError(&postgrestError{}).
		Get(s.path)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("listing comments: %w", restErr(resp))
	}
	return comments, nil
}

// restErr turns an error response into an error, mapping a missing table
// onto ErrCollectionAbsent.
func restErr(resp *resty.Response) error {
	pe, ok := resp.Error().(*postgrestError)
	if !ok || pe == nil || (pe.Code == "" && pe.Message == "") {
		return fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	if pe.absent() {
		return fmt.Errorf("%w: %s", ErrCollectionAbsent, pe.Message)
	}
	if resp.StatusCode() == http.StatusNotFound && pe.Code == "" {
		return fmt.Errorf("%w: %s", ErrCollectionAbsent, pe.Message)
	}
	return fmt.Errorf("%s (%s)", pe.Message, pe.Code)
}
