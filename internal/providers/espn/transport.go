package espn

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// throttledTransport paces outbound requests so season-wide refreshes
// never hammer the upstream API.
type throttledTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *throttledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// NewThrottledClient returns an http.Client limited to requestsPerMinute
// upstream calls, with a small burst allowance for the initial warm fetch.
func NewThrottledClient(timeout time.Duration, requestsPerMinute int) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute)
	return &http.Client{
		Timeout: timeout,
		Transport: &throttledTransport{
			base:    http.DefaultTransport,
			limiter: limiter,
		},
	}
}
