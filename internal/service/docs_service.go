package service

import (
	"context"
	"log/slog"

	"github.com/jmylchreest/crawldesk-api/internal/docs"
)

// ExampleRef describes the example that was run, with its rendered path.
type ExampleRef struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Method string `json:"method"`
	Path   string `json:"path"`
}

// ExampleRequest is what was sent upstream.
type ExampleRequest struct {
	Params map[string]string `json:"params"`
}

// ExampleResponse is what the upstream API answered.
type ExampleResponse struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Data       any               `json:"data"`
}

// ExampleRun is the outcome of running a catalog example.
type ExampleRun struct {
	Example  ExampleRef      `json:"example"`
	Request  ExampleRequest  `json:"request"`
	Response ExampleResponse `json:"response"`
}

// DocsService serves the documentation catalog and runs its examples.
type DocsService struct {
	catalog  *docs.Catalog
	profiles *ProfileService
	clients  ClientFactory
	logger   *slog.Logger
}

// NewDocsService creates a new docs service.
func NewDocsService(catalog *docs.Catalog, profiles *ProfileService, clients ClientFactory, logger *slog.Logger) *DocsService {
	return &DocsService{
		catalog:  catalog,
		profiles: profiles,
		clients:  clients,
		logger:   logger,
	}
}

// Catalog returns the section tree.
func (s *DocsService) Catalog() []docs.Node {
	return s.catalog.List()
}

// RunExample renders an example with the profile's tokens and sends it
// upstream. A non-2xx answer is returned as is; only a failed request is
// an error.
func (s *DocsService) RunExample(ctx context.Context, exampleID, profileID string, overrides map[string]any) (*ExampleRun, error) {
	example, err := s.catalog.FindExample(exampleID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.WithTokens(ctx, profileID)
	if err != nil {
		return nil, err
	}

	req := docs.Render(example, *profile.Tokens, overrides)

	client, err := s.clients(*profile.Tokens)
	if err != nil {
		return nil, err
	}

	s.logger.Info("running doc example",
		"example_id", example.ID,
		"profile_id", profile.ID,
		"method", req.Method,
	)

	send := client.Post
	if req.IsGet() {
		send = client.Get
	}
	res, err := send(ctx, req.Path, req.Params)
	if err != nil {
		return nil, err
	}

	return &ExampleRun{
		Example: ExampleRef{
			ID:     example.ID,
			Title:  example.Title,
			Method: example.Method,
			Path:   req.Path,
		},
		Request:  ExampleRequest{Params: req.Params},
		Response: ExampleResponse{StatusCode: res.StatusCode, Headers: res.Headers, Data: res.Data},
	}, nil
}
