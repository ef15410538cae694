package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jmylchreest/crawldesk-api/internal/analytics"
	"github.com/jmylchreest/crawldesk-api/internal/models"
)

// UsageCache holds computed usage snapshots.
type UsageCache = analytics.SnapshotCache[analytics.SnapshotKey, analytics.Snapshot]

// NewUsageCache creates a usage cache on the wall clock.
func NewUsageCache(ttl time.Duration) *UsageCache {
	return analytics.NewSnapshotCache[analytics.SnapshotKey, analytics.Snapshot](ttl, nil)
}

// UsageRequest selects the usage snapshot to return.
type UsageRequest struct {
	ProfileID       string
	Product         string
	IncludePrevious bool
	ForceRefresh    bool
}

// UsageService builds account usage snapshots for the dashboard.
type UsageService struct {
	profiles *ProfileService
	clients  ClientFactory
	cache    *UsageCache
	logger   *slog.Logger

	sf singleflight.Group
}

// NewUsageService creates a new usage service.
func NewUsageService(profiles *ProfileService, clients ClientFactory, cache *UsageCache, logger *slog.Logger) *UsageService {
	return &UsageService{
		profiles: profiles,
		clients:  clients,
		cache:    cache,
		logger:   logger,
	}
}

// Snapshot returns the usage snapshot of a profile. A cached snapshot is
// returned with Cached set unless ForceRefresh is requested; a fresh
// snapshot always replaces the cached one. Concurrent misses for the same
// key share one upstream call.
func (s *UsageService) Snapshot(ctx context.Context, req UsageRequest) (analytics.Snapshot, error) {
	product := strings.TrimSpace(req.Product)
	if product == "" {
		product = models.DefaultProduct
	}

	profile, err := s.profiles.WithTokens(ctx, req.ProfileID)
	if err != nil {
		return analytics.Snapshot{}, err
	}

	key := analytics.SnapshotKey{
		ProfileID:       profile.ID,
		Product:         product,
		IncludePrevious: req.IncludePrevious,
	}
	if !req.ForceRefresh {
		if snap, ok := s.cache.Get(key); ok {
			snap.Cached = true
			return snap, nil
		}
	}

	// Forced and cached reads never share a flight. The fetch ignores the
	// caller's cancellation; a cancelled caller stops waiting for it.
	flight := fmt.Sprintf("%s|%s|%t|%t", key.ProfileID, key.Product, key.IncludePrevious, req.ForceRefresh)
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan(flight, func() (any, error) {
		if !req.ForceRefresh {
			if snap, ok := s.cache.Get(key); ok {
				snap.Cached = true
				return snap, nil
			}
		}
		return s.fetch(fetchCtx, profile, key)
	})

	select {
	case <-ctx.Done():
		return analytics.Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return analytics.Snapshot{}, res.Err
		}
		if res.Shared {
			s.logger.Debug("usage snapshot shared with concurrent request", "profile_id", profile.ID)
		}
		return res.Val.(analytics.Snapshot).Clone(), nil
	}
}

func (s *UsageService) fetch(ctx context.Context, profile *models.Profile, key analytics.SnapshotKey) (analytics.Snapshot, error) {
	client, err := s.clients(*profile.Tokens)
	if err != nil {
		return analytics.Snapshot{}, err
	}

	res, err := client.AccountSnapshot(ctx, key.Product, key.IncludePrevious)
	if err != nil {
		return analytics.Snapshot{}, err
	}
	if err := res.Err(); err != nil {
		s.logger.Warn("account usage request failed",
			"profile_id", profile.ID,
			"status", res.StatusCode,
			"error", err,
		)
		return analytics.Snapshot{}, err
	}

	payload := res.JSON()
	if payload == nil {
		payload = analytics.Payload{}
	}

	snap := analytics.NewSnapshot(
		analytics.ProfileRef{ID: profile.ID, Name: profile.Name, Product: key.Product},
		res.StatusCode,
		payload,
		res.Headers,
		key.IncludePrevious,
	)
	s.cache.Set(key, snap)

	s.logger.Info("usage snapshot refreshed",
		"profile_id", profile.ID,
		"product", key.Product,
		"include_previous", key.IncludePrevious,
		"domains", len(snap.Summary.Domains),
		"cached_entries", s.cache.Len(),
		"cache_ttl", s.cache.TTL(),
	)
	return snap, nil
}
