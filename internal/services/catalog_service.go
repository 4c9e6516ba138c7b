package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/sirupsen/logrus"

	"yelloride/internal/cache"
	intconfig "yelloride/internal/config"
	"yelloride/internal/domain"
	"yelloride/internal/domain/models"
	"yelloride/internal/repositories"
)

// Cache keys for the catalog aggregates. Imports and clears invalidate all
// of them together.
const (
	cacheKeyRegions = "catalog:regions"
	cacheKeyStats   = "catalog:stats"
)

type CatalogService struct {
	RouteRepo repositories.RouteRepository
	Cache     *cache.Cache
	DB        *sql.DB

	DefaultPageSize int
	MaxPageSize     int
}

func (s CatalogService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s CatalogService) routes() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

func (s CatalogService) pageSize(requested int) int {
	def, max := s.DefaultPageSize, s.MaxPageSize
	if def <= 0 {
		def = 20
	}
	if max <= 0 {
		max = 100
	}
	if requested <= 0 {
		return def
	}
	if requested > max {
		return max
	}
	return requested
}

// Page is a paginated catalog listing.
type Page struct {
	Items      []models.RouteEntry `json:"items"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"limit"`
	TotalPages int                 `json:"pages"`
}

func (s CatalogService) List(filter models.RouteFilter, page, pageSize int) (Page, error) {
	if page < 1 {
		page = 1
	}
	size := s.pageSize(pageSize)

	items, total, err := s.routes().List(filter, page, size)
	if err != nil {
		return Page{}, err
	}

	pages := total / size
	if total%size != 0 {
		pages++
	}
	return Page{Items: items, Total: total, Page: page, PageSize: size, TotalPages: pages}, nil
}

func (s CatalogService) ListAll() ([]models.RouteEntry, error) {
	return s.routes().ListAll()
}

// Match resolves a departure/arrival pair. lang selects which name columns
// to compare; anything other than "eng" means Korean.
func (s CatalogService) Match(departure, arrival, lang, region string) (*models.RouteEntry, error) {
	if strings.TrimSpace(departure) == "" {
		return nil, domain.ValidationError{Field: "departure", Msg: "departure is required"}
	}
	if strings.TrimSpace(arrival) == "" {
		return nil, domain.ValidationError{Field: "arrival", Msg: "arrival is required"}
	}
	return s.routes().MatchRoute(departure, arrival, lang, region)
}

func (s CatalogService) Departures(region string) ([]models.Place, error) {
	return s.routes().Departures(region)
}

func (s CatalogService) Arrivals(region, departure string) ([]models.Place, error) {
	return s.routes().Arrivals(region, departure)
}

// Regions serves the region picker, read through the cache when enabled.
func (s CatalogService) Regions(ctx context.Context) ([]models.RegionSummary, error) {
	var cached []models.RegionSummary
	if err := s.Cache.Get(ctx, cacheKeyRegions, &cached); err == nil {
		return cached, nil
	}

	regions, err := s.routes().Regions()
	if err != nil {
		return nil, err
	}
	if err := s.Cache.Set(ctx, cacheKeyRegions, regions); err != nil {
		logrus.WithError(err).Warn("catalog regions cache write failed")
	}
	return regions, nil
}

func (s CatalogService) Stats(ctx context.Context) (models.CatalogStats, error) {
	var cached models.CatalogStats
	if err := s.Cache.Get(ctx, cacheKeyStats, &cached); err == nil {
		return cached, nil
	}

	stats, err := s.routes().Stats()
	if err != nil {
		return models.CatalogStats{}, err
	}
	if err := s.Cache.Set(ctx, cacheKeyStats, stats); err != nil {
		logrus.WithError(err).Warn("catalog stats cache write failed")
	}
	return stats, nil
}

// Import appends catalog entries after validating each one, then drops the
// cached aggregates.
func (s CatalogService) Import(ctx context.Context, items []models.RouteEntry) (int, error) {
	if len(items) == 0 {
		return 0, domain.ValidationError{Field: "items", Msg: "no entries to import"}
	}
	for i := range items {
		it := &items[i]
		it.Region = strings.TrimSpace(it.Region)
		if it.Region == "" {
			return 0, domain.ValidationError{Field: "region", Msg: "region is required"}
		}
		if strings.TrimSpace(it.DepartureKor) == "" && strings.TrimSpace(it.DepartureEng) == "" {
			return 0, domain.ValidationError{Field: "departure", Msg: "departure name is required"}
		}
		if strings.TrimSpace(it.ArrivalKor) == "" && strings.TrimSpace(it.ArrivalEng) == "" {
			return 0, domain.ValidationError{Field: "arrival", Msg: "arrival name is required"}
		}
	}

	n, err := s.routes().BulkInsert(items)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	logrus.WithField("count", n).Info("catalog import completed")
	return n, nil
}

// Clear empties the catalog and the cached aggregates.
func (s CatalogService) Clear(ctx context.Context) (int64, error) {
	n, err := s.routes().DeleteAll()
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	logrus.WithField("deleted", n).Info("catalog cleared")
	return n, nil
}

func (s CatalogService) invalidate(ctx context.Context) {
	if err := s.Cache.Invalidate(ctx, cacheKeyRegions, cacheKeyStats); err != nil {
		logrus.WithError(err).Warn("catalog cache invalidation failed")
	}
}
