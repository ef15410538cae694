// Package docs holds the catalog of Crawlbase request examples and renders
// them into concrete requests for a profile.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
)

// Node kinds.
const (
	KindSection = "section"
	KindExample = "example"
)

// Node is either a section with children or a runnable example.
type Node struct {
	Kind         string            `yaml:"kind" json:"kind" enum:"section,example"`
	ID           string            `yaml:"id" json:"id"`
	Title        string            `yaml:"title" json:"title"`
	Description  string            `yaml:"description" json:"description"`
	Children     []Node            `yaml:"children" json:"children,omitempty"`
	Method       string            `yaml:"method" json:"method,omitempty"`
	Path         string            `yaml:"path" json:"path,omitempty"`
	SampleParams map[string]string `yaml:"sample_params" json:"sample_params,omitempty"`
	Notes        string            `yaml:"notes" json:"notes,omitempty"`
}

// IsExample reports whether the node is a runnable example.
func (n Node) IsExample() bool {
	return n.Kind == KindExample
}

// MarshalJSON emits the fields relevant to the node kind. Sections always
// carry a children array; examples always carry sample_params.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.IsExample() {
		params := n.SampleParams
		if params == nil {
			params = map[string]string{}
		}
		var notes *string
		if n.Notes != "" {
			notes = &n.Notes
		}
		return json.Marshal(struct {
			Kind         string            `json:"kind"`
			ID           string            `json:"id"`
			Title        string            `json:"title"`
			Method       string            `json:"method"`
			Path         string            `json:"path"`
			Description  string            `json:"description"`
			SampleParams map[string]string `json:"sample_params"`
			Notes        *string           `json:"notes"`
		}{KindExample, n.ID, n.Title, n.Method, n.Path, n.Description, params, notes})
	}

	children := n.Children
	if children == nil {
		children = []Node{}
	}
	return json.Marshal(struct {
		Kind        string `json:"kind"`
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Children    []Node `json:"children"`
	}{KindSection, n.ID, n.Title, n.Description, children})
}

func (n Node) clone() Node {
	if n.Children != nil {
		children := make([]Node, len(n.Children))
		for i, c := range n.Children {
			children[i] = c.clone()
		}
		n.Children = children
	}
	if n.SampleParams != nil {
		params := make(map[string]string, len(n.SampleParams))
		for k, v := range n.SampleParams {
			params[k] = v
		}
		n.SampleParams = params
	}
	return n
}

// Catalog is a tree of documentation sections.
type Catalog struct {
	Sections []Node `yaml:"sections" json:"sections"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// Default returns the built-in catalog.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = Parse(catalogYAML)
	})
	if defaultCatalogErr != nil {
		panic(fmt.Sprintf("docs: built-in catalog is invalid: %v", defaultCatalogErr))
	}
	return defaultCatalog
}

// Parse decodes a YAML catalog. Nodes without a kind are sections.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i := range c.Sections {
		if err := normalize(&c.Sections[i]); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func normalize(n *Node) error {
	if n.Kind == "" {
		n.Kind = KindSection
	}
	if n.ID == "" {
		return fmt.Errorf("catalog node %q has no id", n.Title)
	}
	switch n.Kind {
	case KindSection:
		for i := range n.Children {
			if err := normalize(&n.Children[i]); err != nil {
				return err
			}
		}
	case KindExample:
		if n.Method == "" || n.Path == "" {
			return fmt.Errorf("catalog example %q needs a method and a path", n.ID)
		}
		if len(n.Children) > 0 {
			return fmt.Errorf("catalog example %q cannot have children", n.ID)
		}
	default:
		return fmt.Errorf("catalog node %q has unknown kind %q", n.ID, n.Kind)
	}
	return nil
}

// List returns a copy of the section tree.
func (c *Catalog) List() []Node {
	out := make([]Node, len(c.Sections))
	for i, s := range c.Sections {
		out[i] = s.clone()
	}
	return out
}

// FindExample returns the first example with the given id in depth-first order.
func (c *Catalog) FindExample(id string) (Node, error) {
	for _, s := range c.Sections {
		if n, ok := findIn(s, id); ok {
			return n.clone(), nil
		}
	}
	return Node{}, apperr.NotFound("example %q not found", id)
}

func findIn(n Node, id string) (Node, bool) {
	for _, child := range n.Children {
		if child.IsExample() {
			if child.ID == id {
				return child, true
			}
			continue
		}
		if found, ok := findIn(child, id); ok {
			return found, true
		}
	}
	return Node{}, false
}

// Examples returns every example in depth-first order.
func (c *Catalog) Examples() []Node {
	var out []Node
	var walk func(Node)
	walk = func(n Node) {
		for _, child := range n.Children {
			if child.IsExample() {
				out = append(out, child.clone())
			} else {
				walk(child)
			}
		}
	}
	for _, s := range c.Sections {
		walk(s)
	}
	return out
}
