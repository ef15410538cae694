package docs

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
	"github.com/jmylchreest/crawldesk-api/internal/models"
)

// ========================================
// Catalog Tests
// ========================================

func TestDefault_Sections(t *testing.T) {
	var ids []string
	for _, s := range Default().List() {
		ids = append(ids, s.ID)
		if s.Kind != KindSection {
			t.Errorf("top-level node %s has kind %q", s.ID, s.Kind)
		}
	}
	want := []string{"crawling-api", "scrapers", "proxy-mode", "try-api", "product-suite"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("section ids mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_ExampleIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	examples := Default().Examples()
	if len(examples) < 50 {
		t.Errorf("expected the full example set, got %d", len(examples))
	}
	for _, ex := range examples {
		if seen[ex.ID] {
			t.Errorf("duplicate example id %s", ex.ID)
		}
		seen[ex.ID] = true
	}
}

func TestFindExample(t *testing.T) {
	tests := []struct {
		id     string
		method string
		path   string
	}{
		{"crawling-api-hello-world", "GET", "/?token={token}&url=https://example.org"},
		{"crawling-api-post", "POST", "/"},
		{"walmart-category", "GET", "/?scraper=walmart-category"},
		{"account-get", "GET", "/account?product=crawling-api"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			ex, err := Default().FindExample(tt.id)
			if err != nil {
				t.Fatalf("FindExample() error: %v", err)
			}
			if ex.Method != tt.method || ex.Path != tt.path {
				t.Errorf("got %s %s, want %s %s", ex.Method, ex.Path, tt.method, tt.path)
			}
		})
	}
}

func TestFindExample_SectionIDIsNotAnExample(t *testing.T) {
	for _, id := range []string{"amazon", "missing", "crawling-api"} {
		_, err := Default().FindExample(id)
		if !errors.Is(err, apperr.ErrNotFound) {
			t.Errorf("FindExample(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestFindExample_DepthFirstFirstMatch(t *testing.T) {
	c, err := Parse([]byte(`
sections:
  - id: a
    title: A
    children:
      - id: a1
        title: A1
        children:
          - {kind: example, id: dup, title: deep, method: GET, path: /deep}
      - {kind: example, id: dup, title: shallow, method: GET, path: /shallow}
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ex, err := c.FindExample("dup")
	if err != nil {
		t.Fatalf("FindExample() error: %v", err)
	}
	if ex.Title != "deep" {
		t.Errorf("Title = %q, want deep", ex.Title)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown kind":       "sections: [{id: a, title: A, kind: widget}]",
		"example no path":    "sections: [{id: a, title: A, children: [{kind: example, id: e, method: GET}]}]",
		"missing id":         "sections: [{title: A}]",
		"example with child": "sections: [{id: a, children: [{kind: example, id: e, method: GET, path: /, children: [{id: x}]}]}]",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	sections := Default().List()
	sections[0].Children[0].Title = "mutated"
	if Default().List()[0].Children[0].Title == "mutated" {
		t.Error("List() exposes the shared catalog")
	}
}

func TestNode_MarshalJSON(t *testing.T) {
	c, _ := Parse([]byte(`
sections:
  - id: s
    title: S
    description: d
    children:
      - {id: empty, title: E}
      - {kind: example, id: e, title: Ex, method: GET, path: /x, description: run}
`))
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got := string(data)
	for _, want := range []string{
		`{"kind":"section","id":"empty","title":"E","description":"","children":[]}`,
		`{"kind":"example","id":"e","title":"Ex","method":"GET","path":"/x","description":"run","sample_params":{},"notes":null}`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("json %s\nmissing %s", got, want)
		}
	}
}

// ========================================
// Render Tests
// ========================================

func TestRender_GetExample(t *testing.T) {
	ex, _ := Default().FindExample("crawling-api-javascript")
	req := Render(ex, models.ProfileTokens{Normal: "N", JavaScript: "JS"}, nil)

	if !req.IsGet() {
		t.Error("expected GET request")
	}
	if req.Path != "/" {
		t.Errorf("Path = %q, want /", req.Path)
	}
	want := map[string]string{"token": "JS", "url": "https://example.org"}
	if diff := cmp.Diff(want, req.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_TokenFallback(t *testing.T) {
	ex := Node{Kind: KindExample, ID: "x", Method: "GET", Path: "/?a={js_token}&b={proxy_token}&c={storage_token}&d={token}"}
	req := Render(ex, models.ProfileTokens{Normal: "N", Proxy: "P"}, nil)
	want := map[string]string{"a": "N", "b": "P", "c": "N", "d": "N"}
	if diff := cmp.Diff(want, req.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_Precedence(t *testing.T) {
	ex := Node{
		Kind:         KindExample,
		ID:           "x",
		Method:       "PUT",
		Path:         "/{token}/run?url=https://a.example&device=desktop&empty=",
		SampleParams: map[string]string{"url": "https://b.example", "token": "{token}"},
	}
	req := Render(ex, models.ProfileTokens{Normal: "N"}, map[string]any{"device": "mobile", "page": float64(2), "js": true})

	if req.IsGet() {
		t.Error("PUT should be dispatched as a form POST")
	}
	if req.Path != "/N/run" {
		t.Errorf("Path = %q, want /N/run", req.Path)
	}
	want := map[string]string{
		"url":    "https://b.example",
		"token":  "N",
		"device": "mobile",
		"page":   "2",
		"js":     "true",
	}
	if diff := cmp.Diff(want, req.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_UnresolvedPlaceholderKept(t *testing.T) {
	ex, _ := Default().FindExample("crawling-api-parameters")
	req := Render(ex, models.ProfileTokens{Normal: "N"}, nil)
	if req.Params["url"] != "{url}" {
		t.Errorf("url = %q, want literal {url}", req.Params["url"])
	}
}
