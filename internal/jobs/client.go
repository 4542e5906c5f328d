package jobs

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL         = "https://api.adzuna.com"
	userAgent      = "spigell/jobfit"
	defaultCountry = "us"
	// Adzuna default page size used by the web client.
	defaultPerPage = 10
)

type Client struct {
	appID      string
	apiKey     string
	country    string
	logger     *zap.Logger
	now        func() time.Time
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New creates an Adzuna client. Without credentials every search returns the
// built-in sample jobs.
func New(logger *zap.Logger, appID, apiKey, country string) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if country == "" {
		country = defaultCountry
	}

	return &Client{
		appID:   appID,
		apiKey:  apiKey,
		country: country,
		logger:  logger,
		now:     time.Now,
		APIURL:  apiURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
	}
}

func (c *Client) configured() bool {
	return c.appID != "" && c.apiKey != ""
}
