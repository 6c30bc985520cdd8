package smoke

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// client wraps http.Client. Redirects are not followed so the root
// redirect can be asserted.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL: baseURL,
	}
}

type response struct {
	status   int
	location string
	body     []byte
}

func (c *client) do(ctx context.Context, method, path string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &response{status: resp.StatusCode, location: resp.Header.Get("Location"), body: body}, nil
}

type activityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func (c *client) activities(ctx context.Context) (map[string]activityView, error) {
	resp, err := c.do(ctx, http.MethodGet, "/activities")
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusOK {
		return nil, fmt.Errorf("GET /activities: status %d", resp.status)
	}
	var out map[string]activityView
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	return out, nil
}

// action posts to /activities/{name}/{verb}?email= and decodes the
// message/detail body.
func (c *client) action(ctx context.Context, name, verb, email string) (int, map[string]string, error) {
	path := "/activities/" + url.PathEscape(name) + "/" + verb + "?email=" + url.QueryEscape(email)
	resp, err := c.do(ctx, http.MethodPost, path)
	if err != nil {
		return 0, nil, err
	}
	var out map[string]string
	if err := json.Unmarshal(resp.body, &out); err != nil {
		return resp.status, nil, fmt.Errorf("decode %s response: %w", verb, err)
	}
	return resp.status, out, nil
}
