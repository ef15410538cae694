package analytics

// Totals are the headline numbers of a dashboard.
type Totals struct {
	Success          int     `json:"success"`
	Failed           int     `json:"failed"`
	Due              float64 `json:"due"`
	RemainingCredits *int    `json:"remaining_credits"`
	SuccessRate      float64 `json:"success_rate"`
	TotalRequests    int     `json:"total_requests"`
}

// Point is a labelled chart value.
type Point struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Series holds chart-ready data.
type Series struct {
	Status  []Point       `json:"status"`
	Domains []DomainUsage `json:"domains"`
}

// Dashboard is a Summary reshaped for charts.
type Dashboard struct {
	Product string `json:"product"`
	Totals  Totals `json:"totals"`
	Trend   *Trend `json:"trend"`
	Series  Series `json:"series"`
}

// BuildDashboard reshapes a summary into dashboard series.
func BuildDashboard(s Summary) Dashboard {
	s = s.Clone()
	return Dashboard{
		Product: s.Product,
		Totals: Totals{
			Success:          s.TotalSuccess,
			Failed:           s.TotalFailed,
			Due:              s.TotalDue,
			RemainingCredits: s.RemainingCredits,
			SuccessRate:      s.SuccessRate,
			TotalRequests:    s.TotalRequests(),
		},
		Trend: s.Trend,
		Series: Series{
			Status: []Point{
				{Label: "Success", Value: s.TotalSuccess},
				{Label: "Failed", Value: s.TotalFailed},
			},
			Domains: s.Domains,
		},
	}
}

// Clone returns a deep copy of d.
func (d Dashboard) Clone() Dashboard {
	if d.Totals.RemainingCredits != nil {
		rc := *d.Totals.RemainingCredits
		d.Totals.RemainingCredits = &rc
	}
	if d.Trend != nil {
		t := *d.Trend
		d.Trend = &t
	}
	d.Series.Status = append([]Point{}, d.Series.Status...)
	d.Series.Domains = append([]DomainUsage{}, d.Series.Domains...)
	return d
}
