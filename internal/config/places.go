package config

import "time"

type Places struct {
	// Checked right before the first search so that clean/email-test work
	// without a key. GOOGLE_MAPS_API_KEY is accepted as a fallback name.
	APIKey  string `env:"GOOGLE_PLACES_API_KEY" json:"-"`
	BaseURL string `env:"PLACES_BASE_URL" envDefault:"https://places.googleapis.com/v1"`

	// Fixed delays between outbound calls, per the provider's soft limits.
	SearchDelay  time.Duration `env:"PLACES_SEARCH_DELAY" envDefault:"1200ms"`
	DetailsDelay time.Duration `env:"PLACES_DETAILS_DELAY" envDefault:"800ms"`
	ScrapeDelay  time.Duration `env:"SCRAPE_DELAY" envDefault:"600ms"`

	HTTPTimeout time.Duration `env:"PLACES_HTTP_TIMEOUT" envDefault:"30s"`
}
