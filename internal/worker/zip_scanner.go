package worker

import (
	"context"
	"fmt"
	"sync"

	"donation_finder/internal/domain"
	"donation_finder/internal/domain/entity"
	service "donation_finder/internal/domain/service/finder"
	"donation_finder/internal/infrastructure/output"
	"donation_finder/internal/infrastructure/zipcode"
	"donation_finder/pkg/contextx"
	"donation_finder/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// ZipScanner resolves ZIP codes to coordinates and runs one search per ZIP.
// The configured ZIP list drives batch runs.
type ZipScanner struct {
	finder *service.FinderService
	zips   *zipcode.Table

	mu       sync.Mutex
	zipCodes []string
}

func NewZipScanner(finder *service.FinderService, zips *zipcode.Table) *ZipScanner {
	return &ZipScanner{
		finder: finder,
		zips:   zips,
	}
}

// BatchResult aggregates a batch run: per-ZIP result lists, the merged list
// and the per-ZIP files written along the way.
type BatchResult struct {
	PerZip map[string][]entity.Place
	Merged []entity.Place
	Files  []string
}

// SearchZip resolves the ZIP through the coordinate table and searches around
// it. A ZIP missing from the table falls back to a plain text search: the
// keywords are expanded with the ZIP itself, the radius is doubled and the
// results keep API order because distances from the fallback origin would be
// meaningless.
func (s *ZipScanner) SearchZip(ctx context.Context, zip string, req entity.SearchRequest) ([]entity.Place, error) {
	entry, err := s.zips.Lookup(zip)
	if err != nil {
		logger(ctx).Warn("zip code not in coordinate table, using text search fallback", "zip_code", zip)

		keywords := req.Keywords
		if len(keywords) == 0 {
			keywords = service.DefaultKeywords
		}

		req.Origin = zipcode.FallbackOrigin
		req.Keywords = zipcode.FallbackKeywords(keywords, zip)
		req.RadiusMeters *= 2
		req.SortByDistance = false

		return s.finder.Find(ctx, req)
	}

	logger(ctx).Info("zip code resolved",
		"zip_code", zip,
		"city", entry.City,
		"state", entry.State,
	)

	req.Origin = entry.Coordinates()
	req.SortByDistance = true

	return s.finder.Find(ctx, req)
}

// Run searches every configured ZIP sequentially. The total result cap is
// split evenly across ZIP codes. A failed ZIP is logged and skipped. When
// outputBase is set, each ZIP's results are also written to their own files.
func (s *ZipScanner) Run(ctx context.Context, req entity.SearchRequest, outputBase string, format output.Format) (*BatchResult, error) {
	zips := s.ZipCodes()
	if len(zips) == 0 {
		return nil, domain.NewError(errcodes.ValidationError, "no zip codes configured for batch search")
	}

	perZipCap := req.MaxResults / len(zips)
	if perZipCap < 1 {
		perZipCap = 1
	}

	result := &BatchResult{PerZip: make(map[string][]entity.Place, len(zips))}

	for _, zip := range zips {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		logger(ctx).Info("processing zip code", "zip_code", zip)

		zipReq := req
		zipReq.MaxResults = perZipCap

		places, err := s.SearchZip(ctx, zip, zipReq)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}

			logger(ctx).Error("zip code search failed", "zip_code", zip, "error", err)
			continue
		}

		result.PerZip[zip] = places
		result.Merged = append(result.Merged, places...)

		if len(places) == 0 {
			logger(ctx).Info("no donation opportunities found", "zip_code", zip)
			continue
		}

		logger(ctx).Info("donation opportunities found", "zip_code", zip, "count", len(places))

		if outputBase != "" {
			files, err := output.Write(ctx, places, fmt.Sprintf("%s_%s", outputBase, zip), format)
			if err != nil {
				return result, fmt.Errorf("output.Write: %w", err)
			}

			result.Files = append(result.Files, files...)
		}
	}

	logger(ctx).Info("batch scan completed",
		"zip_codes", len(zips),
		"results", len(result.Merged),
	)

	return result, nil
}
