package analytics

// SnapshotKey identifies a cached usage snapshot.
type SnapshotKey struct {
	ProfileID       string
	Product         string
	IncludePrevious bool
}

// ProfileRef names the profile a snapshot was taken for.
type ProfileRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Product string `json:"product"`
}

// Snapshot is a point-in-time usage view of one profile and product.
type Snapshot struct {
	Profile    ProfileRef        `json:"profile"`
	StatusCode int               `json:"status_code"`
	Summary    Summary           `json:"summary"`
	Dashboard  Dashboard         `json:"dashboard"`
	Raw        Payload           `json:"raw"`
	Headers    map[string]string `json:"headers"`
	Cached     bool              `json:"cached"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	s.Summary = s.Summary.Clone()
	s.Dashboard = s.Dashboard.Clone()
	s.Raw = copyPayload(s.Raw)
	if s.Headers != nil {
		s.Headers = DeepCopy(s.Headers).(map[string]string)
	}
	return s
}

// NewSnapshot summarizes payload into a snapshot. The previous-period
// payload is only consulted when includePrevious is set.
func NewSnapshot(profile ProfileRef, statusCode int, payload Payload, headers map[string]string, includePrevious bool) Snapshot {
	var previous Payload
	if includePrevious {
		previous = PreviousPeriod(payload)
	}
	summary := Summarize(payload, profile.Product, previous)
	if payload == nil {
		payload = Payload{}
	}
	if headers == nil {
		headers = map[string]string{}
	}
	return Snapshot{
		Profile:    profile,
		StatusCode: statusCode,
		Summary:    summary,
		Dashboard:  BuildDashboard(summary),
		Raw:        payload,
		Headers:    headers,
	}
}
