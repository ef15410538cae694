package service

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/jmylchreest/crawldesk-api/internal/crawlbase"
	"github.com/jmylchreest/crawldesk-api/internal/crypto"
	"github.com/jmylchreest/crawldesk-api/internal/database/migrations"
	"github.com/jmylchreest/crawldesk-api/internal/models"
	"github.com/jmylchreest/crawldesk-api/internal/repository"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestRepos creates repositories on an in-memory database with
// migrations applied.
func setupTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()

	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return repository.NewRepositories(db)
}

func setupProfileService(t *testing.T) (*ProfileService, *repository.Repositories) {
	t.Helper()
	cipher, err := crypto.NewCipher(testKey)
	if err != nil {
		t.Fatalf("NewCipher() error: %v", err)
	}
	repos := setupTestRepos(t)
	return NewProfileService(repos, cipher, testLogger()), repos
}

func createProfile(t *testing.T, svc *ProfileService, name string) *models.Profile {
	t.Helper()
	p, err := svc.Create(context.Background(), ProfileInput{
		Name:        name,
		TokenNormal: "normal-" + name,
		TokenJS:     "js-" + name,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return p
}

// jsonResponse builds an upstream response from a raw body.
func jsonResponse(status int, body string) *crawlbase.Response {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return crawlbase.NewResponse(status, []byte(body), h)
}

type call struct {
	method string
	path   string
	params map[string]string
}

// fakeClient records calls and answers from canned functions.
type fakeClient struct {
	mu    sync.Mutex
	calls []call

	account func(ctx context.Context, product string, includePrevious bool) (*crawlbase.Response, error)
	send    func(method, path string, params map[string]string) (*crawlbase.Response, error)
	scrape  func(pageURL string) (*crawlbase.Response, error)
}

func (f *fakeClient) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeClient) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func (f *fakeClient) Get(_ context.Context, path string, params map[string]string) (*crawlbase.Response, error) {
	f.record(call{method: "GET", path: path, params: params})
	return f.send("GET", path, params)
}

func (f *fakeClient) Post(_ context.Context, path string, form map[string]string) (*crawlbase.Response, error) {
	f.record(call{method: "POST", path: path, params: form})
	return f.send("POST", path, form)
}

func (f *fakeClient) AccountSnapshot(ctx context.Context, product string, includePrevious bool) (*crawlbase.Response, error) {
	f.record(call{method: "GET", path: "/account", params: map[string]string{"product": product}})
	return f.account(ctx, product, includePrevious)
}

func (f *fakeClient) Scrape(_ context.Context, pageURL string) (*crawlbase.Response, error) {
	f.record(call{method: "GET", path: "/", params: map[string]string{"url": pageURL}})
	return f.scrape(pageURL)
}

// factoryFor returns a ClientFactory handing out client and recording the
// tokens it was built with.
func factoryFor(client *fakeClient, seen *[]models.ProfileTokens) ClientFactory {
	var mu sync.Mutex
	return func(tokens models.ProfileTokens) (CrawlbaseAPI, error) {
		if seen != nil {
			mu.Lock()
			*seen = append(*seen, tokens)
			mu.Unlock()
		}
		return client, nil
	}
}
