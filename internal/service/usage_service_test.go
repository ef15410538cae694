package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jmylchreest/crawldesk-api/internal/analytics"
	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/crawlbase"
	"github.com/jmylchreest/crawldesk-api/internal/models"
)

type usageFixture struct {
	svc     *UsageService
	profile *models.Profile
	client  *fakeClient
	tokens  *[]models.ProfileTokens
	now     *time.Time
	calls   *atomic.Int32
}

func setupUsageService(t *testing.T, body string) usageFixture {
	t.Helper()
	profiles, _ := setupProfileService(t)
	profile := createProfile(t, profiles, "main")

	calls := &atomic.Int32{}
	client := &fakeClient{
		account: func(context.Context, string, bool) (*crawlbase.Response, error) {
			calls.Add(1)
			return jsonResponse(200, body), nil
		},
	}
	var tokens []models.ProfileTokens

	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	cache := analytics.NewSnapshotCache[analytics.SnapshotKey, analytics.Snapshot](time.Minute, func() time.Time { return now })

	svc := NewUsageService(profiles, factoryFor(client, &tokens), cache, testLogger())
	return usageFixture{svc: svc, profile: profile, client: client, tokens: &tokens, now: &now, calls: calls}
}

// ========================================
// UsageService Tests
// ========================================

func TestUsageService_MissThenHit(t *testing.T) {
	f := setupUsageService(t, `{"totalSuccess": 80, "totalFailed": 20, "totalDue": 12.5}`)
	ctx := context.Background()
	req := UsageRequest{ProfileID: f.profile.ID}

	first, err := f.svc.Snapshot(ctx, req)
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if first.Cached {
		t.Error("first snapshot should not be cached")
	}
	if first.Summary.SuccessRate != 80.0 || first.Summary.TotalRequests() != 100 {
		t.Errorf("Summary = %+v", first.Summary)
	}
	if first.Profile.Product != models.DefaultProduct || first.Profile.Name != "main" {
		t.Errorf("Profile = %+v", first.Profile)
	}

	// Callers own their copy.
	first.Raw["totalSuccess"] = -1
	first.Summary.Domains = append(first.Summary.Domains, analytics.DomainUsage{Domain: "x"})

	second, err := f.svc.Snapshot(ctx, req)
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if !second.Cached {
		t.Error("second snapshot should be cached")
	}
	if second.Raw["totalSuccess"] != float64(80) || len(second.Summary.Domains) != 0 {
		t.Errorf("cached snapshot was mutated through a returned copy: %+v", second)
	}
	if n := f.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	if (*f.tokens)[0].Normal != "normal-main" {
		t.Errorf("client built with tokens %+v", (*f.tokens)[0])
	}
}

func TestUsageService_KeyIncludesProductAndPrevious(t *testing.T) {
	f := setupUsageService(t, `{"totalSuccess": 1}`)
	ctx := context.Background()

	for _, req := range []UsageRequest{
		{ProfileID: f.profile.ID},
		{ProfileID: f.profile.ID, IncludePrevious: true},
		{ProfileID: f.profile.ID, Product: "scraper"},
	} {
		snap, err := f.svc.Snapshot(ctx, req)
		if err != nil {
			t.Fatalf("Snapshot(%+v) error: %v", req, err)
		}
		if snap.Cached {
			t.Errorf("Snapshot(%+v) should be a miss", req)
		}
	}
	if n := f.calls.Load(); n != 3 {
		t.Errorf("upstream calls = %d, want 3", n)
	}
}

func TestUsageService_ForceRefreshStillWrites(t *testing.T) {
	f := setupUsageService(t, `{"totalSuccess": 1}`)
	ctx := context.Background()
	req := UsageRequest{ProfileID: f.profile.ID}

	if _, err := f.svc.Snapshot(ctx, req); err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	forced, err := f.svc.Snapshot(ctx, UsageRequest{ProfileID: f.profile.ID, ForceRefresh: true})
	if err != nil {
		t.Fatalf("Snapshot(force) error: %v", err)
	}
	if forced.Cached {
		t.Error("forced snapshot should not be cached")
	}
	if n := f.calls.Load(); n != 2 {
		t.Errorf("upstream calls = %d, want 2", n)
	}

	after, _ := f.svc.Snapshot(ctx, req)
	if !after.Cached || f.calls.Load() != 2 {
		t.Error("snapshot after force refresh should hit the refreshed entry")
	}
}

func TestUsageService_TTLExpiry(t *testing.T) {
	f := setupUsageService(t, `{"totalSuccess": 1}`)
	ctx := context.Background()
	req := UsageRequest{ProfileID: f.profile.ID}

	_, _ = f.svc.Snapshot(ctx, req)

	*f.now = f.now.Add(time.Minute)
	if snap, _ := f.svc.Snapshot(ctx, req); !snap.Cached {
		t.Error("snapshot exactly at ttl should still be cached")
	}

	*f.now = f.now.Add(time.Second)
	if snap, _ := f.svc.Snapshot(ctx, req); snap.Cached {
		t.Error("snapshot past ttl should be refetched")
	}
	if n := f.calls.Load(); n != 2 {
		t.Errorf("upstream calls = %d, want 2", n)
	}
}

func TestUsageService_UpstreamFailure(t *testing.T) {
	f := setupUsageService(t, "")
	f.client.account = func(context.Context, string, bool) (*crawlbase.Response, error) {
		f.calls.Add(1)
		return jsonResponse(401, `{"error": "invalid token", "message": "Token not valid"}`), nil
	}
	ctx := context.Background()
	req := UsageRequest{ProfileID: f.profile.ID}

	_, err := f.svc.Snapshot(ctx, req)
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("Snapshot() error = %v, want ErrUpstream", err)
	}
	if apperr.StatusCode(err) != 401 || apperr.Message(err, "") != "Token not valid" {
		t.Errorf("error = %v (status %d)", err, apperr.StatusCode(err))
	}

	_, _ = f.svc.Snapshot(ctx, req)
	if n := f.calls.Load(); n != 2 {
		t.Errorf("failures must not be cached: upstream calls = %d, want 2", n)
	}
}

func TestUsageService_TransportError(t *testing.T) {
	f := setupUsageService(t, "")
	f.client.account = func(context.Context, string, bool) (*crawlbase.Response, error) {
		return nil, apperr.Upstream(0, "failed to reach Crawlbase", errors.New("dial tcp: refused"))
	}

	_, err := f.svc.Snapshot(context.Background(), UsageRequest{ProfileID: f.profile.ID})
	if !errors.Is(err, apperr.ErrUpstream) || apperr.StatusCode(err) != 0 {
		t.Errorf("Snapshot() error = %v, want ErrUpstream with status 0", err)
	}
}

func TestUsageService_MissingProfile(t *testing.T) {
	f := setupUsageService(t, `{}`)
	_, err := f.svc.Snapshot(context.Background(), UsageRequest{ProfileID: "missing"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Snapshot() error = %v, want ErrNotFound", err)
	}
	if len(f.client.Calls()) != 0 {
		t.Error("no upstream call expected for a missing profile")
	}
}

func TestUsageService_ConcurrentMissesCollapse(t *testing.T) {
	f := setupUsageService(t, "")
	gate := make(chan struct{})
	f.client.account = func(context.Context, string, bool) (*crawlbase.Response, error) {
		f.calls.Add(1)
		<-gate
		return jsonResponse(200, `{"totalSuccess": 5}`), nil
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := f.svc.Snapshot(context.Background(), UsageRequest{ProfileID: f.profile.ID})
			if err == nil && snap.Summary.TotalSuccess != 5 {
				err = errors.New("unexpected summary")
			}
			errs <- err
		}()
	}

	for f.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	close(gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("Snapshot() error: %v", err)
		}
	}
	if n := f.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

func TestUsageService_CancelledCallerDoesNotFailFlight(t *testing.T) {
	f := setupUsageService(t, "")
	entered := make(chan struct{}, 4)
	gate := make(chan struct{})
	f.client.account = func(ctx context.Context, _ string, _ bool) (*crawlbase.Response, error) {
		f.calls.Add(1)
		entered <- struct{}{}
		<-gate
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return jsonResponse(200, `{"totalSuccess": 7}`), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := f.svc.Snapshot(ctx, UsageRequest{ProfileID: f.profile.ID})
		leaderErr <- err
	}()
	<-entered

	follower := make(chan error, 1)
	go func() {
		snap, err := f.svc.Snapshot(context.Background(), UsageRequest{ProfileID: f.profile.ID})
		if err == nil && snap.Summary.TotalSuccess != 7 {
			err = errors.New("unexpected summary")
		}
		follower <- err
	}()

	cancel()
	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller error = %v, want context.Canceled", err)
	}

	close(gate)
	if err := <-follower; err != nil {
		t.Errorf("follower Snapshot() error: %v", err)
	}
	if n := f.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}

	snap, err := f.svc.Snapshot(context.Background(), UsageRequest{ProfileID: f.profile.ID})
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}
	if !snap.Cached || snap.Summary.TotalSuccess != 7 {
		t.Errorf("snapshot after flight = cached %v success %d, want cached 7", snap.Cached, snap.Summary.TotalSuccess)
	}
}

func TestUsageService_ForceRefreshDoesNotJoinCachedFlight(t *testing.T) {
	f := setupUsageService(t, "")
	entered := make(chan struct{}, 4)
	gate := make(chan struct{})
	f.client.account = func(context.Context, string, bool) (*crawlbase.Response, error) {
		f.calls.Add(1)
		entered <- struct{}{}
		<-gate
		return jsonResponse(200, `{"totalSuccess": 3}`), nil
	}

	results := make(chan analytics.Snapshot, 2)
	errs := make(chan error, 2)
	run := func(force bool) {
		snap, err := f.svc.Snapshot(context.Background(), UsageRequest{ProfileID: f.profile.ID, ForceRefresh: force})
		errs <- err
		results <- snap
	}

	go run(false)
	<-entered
	go run(true)

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		close(gate)
		t.Fatal("forced refresh joined the in-flight cached read")
	}
	close(gate)

	for range 2 {
		if err := <-errs; err != nil {
			t.Errorf("Snapshot() error: %v", err)
		}
		if snap := <-results; snap.Cached {
			t.Error("fresh snapshots must not be marked cached")
		}
	}
	if n := f.calls.Load(); n != 2 {
		t.Errorf("upstream calls = %d, want 2", n)
	}
}
