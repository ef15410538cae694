package analytics

import (
	"math"
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

// DomainUsage is the usage of a single target domain.
type DomainUsage struct {
	Domain        string  `json:"domain"`
	TotalRequests int     `json:"total_requests"`
	Success       int     `json:"success"`
	Failed        int     `json:"failed"`
	SuccessRate   float64 `json:"success_rate"`
}

// Trend is the signed difference between two summaries of the same product.
type Trend struct {
	TotalSuccessDelta int     `json:"total_success_delta"`
	TotalFailedDelta  int     `json:"total_failed_delta"`
	TotalDueDelta     float64 `json:"total_due_delta"`
	SuccessRateDelta  float64 `json:"success_rate_delta"`
}

// Summary is the normalized usage of one product.
type Summary struct {
	Product          string        `json:"product"`
	TotalSuccess     int           `json:"total_success"`
	TotalFailed      int           `json:"total_failed"`
	TotalDue         float64       `json:"total_due"`
	RemainingCredits *int          `json:"remaining_credits"`
	SuccessRate      float64       `json:"success_rate"`
	Domains          []DomainUsage `json:"domains"`
	Trend            *Trend        `json:"trend"`
}

// Clone returns a deep copy of s.
func (s Summary) Clone() Summary {
	if s.RemainingCredits != nil {
		rc := *s.RemainingCredits
		s.RemainingCredits = &rc
	}
	s.Domains = append([]DomainUsage{}, s.Domains...)
	if s.Trend != nil {
		t := *s.Trend
		s.Trend = &t
	}
	return s
}

// TotalRequests is the sum of successful and failed requests.
func (s Summary) TotalRequests() int {
	return s.TotalSuccess + s.TotalFailed
}

// exactDigits is enough fractional digits to print any float64 exactly.
const exactDigits = 1074

// round2 rounds the exact binary value of f to two decimal places, breaking
// exact ties to even. 2.675 is stored below the tie and becomes 2.67.
func round2(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	exact := new(big.Float).SetFloat64(f).Text('f', exactDigits)
	return decimal.RequireFromString(exact).RoundBank(2).InexactFloat64()
}

// SuccessRate is success/(success+failed) as a percentage rounded to two
// decimals, or 0 when there were no requests.
func SuccessRate(success, failed int) float64 {
	total := success + failed
	if total <= 0 {
		return 0
	}
	return round2(float64(success) / float64(total) * 100)
}

// Summarize normalizes a usage payload. When previous is non-empty it is
// summarized with the same rules and the difference is reported as the trend.
func Summarize(payload Payload, product string, previous Payload) Summary {
	s := summarize(payload, product)
	if len(previous) > 0 {
		prev := summarize(previous, product)
		s.Trend = buildTrend(s, prev)
	}
	return s
}

func summarize(payload Payload, product string) Summary {
	success := intField(payload, "totalSuccess", 0)
	failed := intField(payload, "totalFailed", 0)

	s := Summary{
		Product:      product,
		TotalSuccess: success,
		TotalFailed:  failed,
		TotalDue:     round2(floatField(payload, "totalDue", 0)),
		SuccessRate:  SuccessRate(success, failed),
		Domains:      buildDomains(domainEntries(payload)),
	}
	if v, ok := payload["remainingCredits"]; ok && v != nil {
		rc := toInt(v, 0)
		s.RemainingCredits = &rc
	}
	return s
}

func buildDomains(entries []any) []DomainUsage {
	domains := make([]DomainUsage, 0, len(entries))
	for _, raw := range entries {
		entry, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		success := intField(entry, "success", 0)
		failed := intField(entry, "failed", 0)
		total := intField(entry, "totalRequests", success+failed)
		if total <= 0 {
			total = success + failed
		}
		domains = append(domains, DomainUsage{
			Domain:        domainName(entry),
			TotalRequests: total,
			Success:       success,
			Failed:        failed,
			SuccessRate:   SuccessRate(success, failed),
		})
	}
	sort.SliceStable(domains, func(i, j int) bool {
		return domains[i].TotalRequests > domains[j].TotalRequests
	})
	return domains
}

func buildTrend(current, previous Summary) *Trend {
	return &Trend{
		TotalSuccessDelta: current.TotalSuccess - previous.TotalSuccess,
		TotalFailedDelta:  current.TotalFailed - previous.TotalFailed,
		TotalDueDelta:     round2(current.TotalDue - previous.TotalDue),
		SuccessRateDelta:  round2(current.SuccessRate - previous.SuccessRate),
	}
}
