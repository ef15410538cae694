// Package linkfactory expands URL presets into link batches and encodes them for export.
package linkfactory

import (
	"sort"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
)

// Variable is a named placeholder of a preset pattern with its default values.
type Variable struct {
	Name     string   `json:"name"`
	Defaults []string `json:"defaults"`
}

// Preset is a reusable URL template targeting one Crawlbase scraper.
type Preset struct {
	ID                string     `json:"id"`
	Label             string     `json:"label"`
	Description       string     `json:"description"`
	ScraperKey        string     `json:"scraper_key"`
	Pattern           string     `json:"pattern"`
	Variables         []Variable `json:"variables"`
	RecommendedFormat string     `json:"recommended_format"`
	Notes             string     `json:"notes,omitempty"`
}

func (p Preset) clone() Preset {
	vars := make([]Variable, len(p.Variables))
	for i, v := range p.Variables {
		vars[i] = Variable{Name: v.Name, Defaults: append([]string(nil), v.Defaults...)}
	}
	p.Variables = vars
	return p
}

// Registry is an immutable set of presets. Accessors hand out copies.
type Registry struct {
	order []string
	byID  map[string]Preset
}

// NewRegistry builds a registry. A preset without a recommended format gets xlsx.
// Later duplicates of an ID replace earlier ones.
func NewRegistry(presets ...Preset) *Registry {
	r := &Registry{byID: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		if p.RecommendedFormat == "" {
			p.RecommendedFormat = FormatXLSX
		}
		if _, seen := r.byID[p.ID]; !seen {
			r.order = append(r.order, p.ID)
		}
		r.byID[p.ID] = p.clone()
	}
	return r
}

var defaultRegistry = NewRegistry(builtinPresets...)

// Default returns the process-wide registry of built-in presets.
func Default() *Registry {
	return defaultRegistry
}

// List returns all presets in registration order.
func (r *Registry) List() []Preset {
	out := make([]Preset, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].clone())
	}
	return out
}

// Get returns the preset with the given ID.
func (r *Registry) Get(id string) (Preset, error) {
	p, ok := r.byID[id]
	if !ok {
		return Preset{}, apperr.NotFound("no preset with id %q", id)
	}
	return p.clone(), nil
}

// IDs returns the registered preset IDs, sorted.
func (r *Registry) IDs() []string {
	ids := append([]string(nil), r.order...)
	sort.Strings(ids)
	return ids
}
