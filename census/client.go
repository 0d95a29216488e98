package census

import (
	"net/http"
	"os"
	"time"

	"github.com/censuskit/censuskit/constants"
	"github.com/censuskit/censuskit/rate_limiter"
)

// Client calls the Census Data API. The zero value is not usable - construct
// with NewClient. Clients are stateless between calls and safe to reuse.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate_limiter.APILimiter
	timeout    time.Duration
}

type ClientOption func(*Client)

// WithAPIKey sets the Census API key. A key is optional for low-volume use.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithBaseURL overrides the API root, used by tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

func WithLimiter(limiter *rate_limiter.APILimiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: constants.DefaultBaseURL,
		apiKey:  os.Getenv(constants.EnvAPIKey),
		timeout: constants.DefaultRequestTimeout,
		limiter: rate_limiter.NewAPILimiter(rate_limiter.DefaultCensusAPIDefinition()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.httpClient = newHTTPClient(c.timeout)
	return c
}
