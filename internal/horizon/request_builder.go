package horizon

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Order of returned records for paged endpoints.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// requestBuilder is the shared base of all endpoint builders. It owns the
// parsed server URL and the HTTP transport handle, plus the endpoint path
// segments and query parameters accumulated so far.
type requestBuilder struct {
	httpClient *http.Client
	serverURL  *url.URL
	segments   []string
	params     url.Values
}

func newRequestBuilder(httpClient *http.Client, serverURL *url.URL, segments ...string) requestBuilder {
	return requestBuilder{
		httpClient: httpClient,
		serverURL:  serverURL,
		segments:   segments,
		params:     url.Values{},
	}
}

func (b *requestBuilder) setParam(key, value string) {
	b.params.Set(key, value)
}

func (b *requestBuilder) setInt64Param(key string, value int64) {
	b.params.Set(key, strconv.FormatInt(value, 10))
}

// endpoint names the builder's target for logs and metrics.
func (b *requestBuilder) endpoint() string {
	if len(b.segments) == 0 {
		return "root"
	}
	return strings.Join(b.segments, "/")
}

// BuildURL derives the request URL from the server URL: path segments are
// appended after any existing base path, the query string uses standard
// encoding and stays empty when no parameters were set. The server URL is
// never mutated, so repeated calls yield equal strings.
func (b *requestBuilder) BuildURL() string {
	u := *b.serverURL

	path := strings.TrimSuffix(u.Path, "/")
	for _, seg := range b.segments {
		path += "/" + url.PathEscape(seg)
	}
	if path == "" {
		path = "/"
	}
	u.Path = path
	u.RawPath = ""
	u.RawQuery = b.params.Encode()

	return u.String()
}
