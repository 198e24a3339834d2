package health

import (
	"context"
	"fmt"
	"net/http"
)

// HTTPChecker probes a downstream service over HTTP. Any 2xx is up.
type HTTPChecker struct {
	name   string
	url    string
	client *http.Client
}

func NewHTTPChecker(name, url string, client *http.Client) *HTTPChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPChecker{name: name, url: url, client: client}
}

func (c *HTTPChecker) Name() string {
	return c.name
}

func (c *HTTPChecker) Check(ctx context.Context) Result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return down(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return down(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode/100 != 2 {
		return down(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return Result{Status: StatusUp}
}
