package linkfactory

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/jmylchreest/crawldesk-api/internal/apperr"
)

// Result is the output of a generation request.
type Result struct {
	Preset Preset
	Links  []string
}

// Generate expands a preset of the default registry.
func Generate(presetID string, overrides *Overrides) (Result, error) {
	return Default().Generate(presetID, overrides)
}

// Generate expands the preset's pattern over the Cartesian product of the
// resolved variable domains. Links are deduplicated and sorted.
func (r *Registry) Generate(presetID string, overrides *Overrides) (Result, error) {
	preset, err := r.Get(presetID)
	if err != nil {
		return Result{}, err
	}

	tmpl, err := ParseTemplate(preset.Pattern)
	if err != nil {
		return Result{}, err
	}

	names, domains, err := resolveDomains(preset, overrides)
	if err != nil {
		return Result{}, err
	}
	// Checked up front so a request expanding to no combinations still fails.
	for _, p := range tmpl.Placeholders() {
		if _, ok := domains[p]; !ok {
			return Result{}, apperr.Validation("variable %q is not defined by the preset or the overrides", p)
		}
	}

	var links []string
	err = cartesian(names, domains, func(ctx map[string]string) error {
		link, err := tmpl.Render(ctx)
		if err != nil {
			return err
		}
		links = append(links, link)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	links = lo.Uniq(links)
	slices.Sort(links)
	if links == nil {
		links = []string{}
	}
	return Result{Preset: preset, Links: links}, nil
}

// resolveDomains returns the variable names in expansion order and their value lists.
// Declared variables come first in declared order, then override-only names
// in the order they were supplied.
func resolveDomains(preset Preset, overrides *Overrides) ([]string, map[string][]string, error) {
	names := make([]string, 0, len(preset.Variables)+overrides.Len())
	domains := make(map[string][]string, cap(names))

	for _, v := range preset.Variables {
		values := v.Defaults
		if ov, ok := overrides.Get(v.Name); ok {
			values = trimNonBlank(ov)
		}
		if len(values) == 0 {
			return nil, nil, apperr.Validation("the value set for %q cannot be empty", v.Name)
		}
		names = append(names, v.Name)
		domains[v.Name] = values
	}

	for _, name := range overrides.Keys() {
		if _, declared := domains[name]; declared {
			continue
		}
		ov, _ := overrides.Get(name)
		names = append(names, name)
		domains[name] = lo.Map(ov, func(s string, _ int) string { return strings.TrimSpace(s) })
	}

	return names, domains, nil
}

func trimNonBlank(values []string) []string {
	return lo.FilterMap(values, func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
}

// cartesian calls fn once per combination, odometer style with the last
// name varying fastest. Any empty domain yields no combinations.
func cartesian(names []string, domains map[string][]string, fn func(map[string]string) error) error {
	for _, n := range names {
		if len(domains[n]) == 0 {
			return nil
		}
	}

	idx := make([]int, len(names))
	for {
		ctx := make(map[string]string, len(names))
		for i, n := range names {
			ctx[n] = domains[n][idx[i]]
		}
		if err := fn(ctx); err != nil {
			return err
		}

		i := len(names) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(domains[names[i]]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return nil
		}
	}
}
