package places

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"donation_finder/internal/config"
	"donation_finder/pkg/contextx"
	"donation_finder/pkg/httpx"
	"donation_finder/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	searchFieldMask = "places.id,places.displayName,places.formattedAddress,places.location," +
		"places.rating,places.businessStatus,places.types,places.priceLevel,places.userRatingCount"
	detailsFieldMask = "id,displayName,formattedAddress,rating,userRatingCount,reviews,photos," +
		"regularOpeningHours,internationalPhoneNumber,websiteUri,businessStatus"

	maxResultCount = 20

	callsLogEvery = 10
)

// Client calls the Google Places API (New). Calls are sequential; a fixed
// delay is enforced between consecutive calls of the same kind.
type Client struct {
	httpClient *http.Client
	baseURL    string

	searchDelay  time.Duration
	detailsDelay time.Duration

	lastSearchCall  time.Time
	lastDetailsCall time.Time
	totalAPICalls   int
}

func NewClient(cfg config.Places) *Client {
	transport := httpx.NewLoggingRoundTripper(
		httpx.NewAPIKeyRoundTripper(http.DefaultTransport, cfg.APIKey, searchFieldMask),
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
	)

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.HTTPTimeout,
		},
		baseURL:      cfg.BaseURL,
		searchDelay:  cfg.SearchDelay,
		detailsDelay: cfg.DetailsDelay,
	}
}

// TotalAPICalls reports how many provider calls this client has issued.
func (c *Client) TotalAPICalls() int {
	return c.totalAPICalls
}

func (c *Client) waitSearchSlot(ctx context.Context) error {
	return c.waitForNextSlot(ctx, &c.lastSearchCall, c.searchDelay)
}

func (c *Client) waitDetailsSlot(ctx context.Context) error {
	return c.waitForNextSlot(ctx, &c.lastDetailsCall, c.detailsDelay)
}

func (c *Client) waitForNextSlot(ctx context.Context, last *time.Time, interval time.Duration) error {
	defer c.countCall(ctx)

	if last.IsZero() {
		*last = time.Now()
		return nil
	}

	elapsed := time.Since(*last)
	if elapsed >= interval {
		*last = time.Now()
		return nil
	}

	wait := interval - elapsed
	logger(ctx).Debug("rate limiting", slog.Duration("wait", wait))

	select {
	case <-time.After(wait):
		*last = time.Now()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) countCall(ctx context.Context) {
	c.totalAPICalls++
	if c.totalAPICalls%callsLogEvery == 0 {
		logger(ctx).Info("provider call count", slog.Int(logx.FieldAPICalls, c.totalAPICalls))
	}
}
