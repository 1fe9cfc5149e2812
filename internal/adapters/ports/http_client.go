package ports

import "net/http"

// HTTPClient is the subset of *http.Client used by the transport,
// so tests can substitute a fake
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
