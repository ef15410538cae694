// Package analytics normalizes Crawlbase account usage into summaries,
// dashboard series and period-over-period trends.
package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Payload is an untyped upstream usage document.
type Payload = map[string]any

// domainStatsKeys are the synonyms the upstream uses for the per-domain breakdown.
var domainStatsKeys = []string{"domainStats", "domain_statistics", "domain_stats", "statsByDomain", "domainUsage"}

// previousPeriodKeys are the synonyms for an embedded previous-period payload.
var previousPeriodKeys = []string{"previousMonth", "previous_month", "previous"}

// toInt converts a loosely typed value to an int, returning def when it cannot.
// Floats truncate toward zero. Strings must hold an integer.
func toInt(v any, def int) int {
	switch n := v.(type) {
	case nil:
		return def
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float32:
		return floatToInt(float64(n), def)
	case float64:
		return floatToInt(n, def)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f, def)
		}
		return def
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
		return def
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return def
}

func floatToInt(f float64, def int) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int(f)
}

// toFloat converts a loosely typed value to a float64, returning def when it cannot.
func toFloat(v any, def float64) float64 {
	switch n := v.(type) {
	case nil:
		return def
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
		return def
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
		return def
	case bool:
		if n {
			return 1
		}
		return 0
	}
	return def
}

// intField reads key from m, defaulting when missing or unconvertible.
func intField(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	return toInt(v, def)
}

func floatField(m map[string]any, key string, def float64) float64 {
	v, ok := m[key]
	if !ok {
		return def
	}
	return toFloat(v, def)
}

// truthy reports whether v would count as set in a loosely typed document.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		return t.String() != "0" && t.String() != "0.0"
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}

// domainEntries returns the first list found under a domain stats synonym.
// A synonym holding a non-list value is skipped.
func domainEntries(payload Payload) []any {
	for _, key := range domainStatsKeys {
		if list, ok := payload[key].([]any); ok {
			return list
		}
	}
	return nil
}

// domainName picks the first truthy of domain and name.
func domainName(entry map[string]any) string {
	for _, key := range []string{"domain", "name"} {
		if v := entry[key]; truthy(v) {
			if s, ok := v.(string); ok {
				return s
			}
			return fmt.Sprint(v)
		}
	}
	return "unknown"
}

// PreviousPeriod returns the first embedded previous-period object, or nil.
func PreviousPeriod(payload Payload) Payload {
	for _, key := range previousPeriodKeys {
		if m, ok := payload[key].(map[string]any); ok {
			return m
		}
	}
	return nil
}

// DeepCopy returns an independent copy of a JSON-shaped value.
func DeepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = DeepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = DeepCopy(val)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// copyPayload deep copies a payload, preserving nil.
func copyPayload(p Payload) Payload {
	if p == nil {
		return nil
	}
	return DeepCopy(p).(map[string]any)
}
