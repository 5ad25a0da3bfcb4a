package storefront

import (
	"net/http"
	"net/http/httptest"
	"strings"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

// recordingStatus captures user-visible outcome messages
type recordingStatus struct {
	successes []string
	failures  []string
}

func (s *recordingStatus) Success(msg string) { s.successes = append(s.successes, msg) }
func (s *recordingStatus) Failure(msg string) { s.failures = append(s.failures, msg) }

// recordingCatalog captures what the catalog renderer was handed
type recordingCatalog struct {
	renders int
	last    []Product
	lastAdd AddToCartFunc
}

func (r *recordingCatalog) RenderCatalog(products []Product, add AddToCartFunc) {
	r.renders++
	r.last = products
	r.lastAdd = add
}

// recordingCart captures cart renders and unavailability reports
type recordingCart struct {
	renders     int
	last        []Line
	unavailable []string
}

func (r *recordingCart) RenderLines(lines []Line) {
	r.renders++
	r.last = lines
}

func (r *recordingCart) RenderUnavailable(reason string) {
	r.unavailable = append(r.unavailable, reason)
}

// recordingNav captures navigation targets
type recordingNav struct {
	targets []string
}

func (n *recordingNav) Navigate(path string) { n.targets = append(n.targets, path) }

// newTestServer spins up an httptest server and a client pointed at it
func newTestServer(handler http.HandlerFunc) (*httptest.Server, *Client) {
	server := httptest.NewServer(handler)
	client := NewClient(server.URL)
	return server, client
}

// deadClient returns a client whose server is already gone, so every
// call fails at the transport
func deadClient() *Client {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()
	return NewClient(url)
}
