package version

import (
	"runtime"
	"strings"
	"testing"
)

// ========================================
// Get() Tests
// ========================================

func TestGet(t *testing.T) {
	info := Get()

	if info.Version == "" {
		t.Error("Version should not be empty")
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if want := runtime.GOOS + "/" + runtime.GOARCH; info.Platform != want {
		t.Errorf("Platform = %q, want %q", info.Platform, want)
	}
}

// ========================================
// Formatting Tests
// ========================================

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"clean", Info{Version: "2.1.0", Commit: "deadbeef", Date: "2026-06-01"}, "2.1.0 (deadbeef) built 2026-06-01"},
		{"dirty", Info{Version: "2.1.0", Commit: "deadbeef", Date: "2026-06-01", Dirty: true}, "2.1.0 (deadbeef-dirty) built 2026-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfo_Short(t *testing.T) {
	if got := (Info{Version: "1.2.3"}).Short(); got != "1.2.3" {
		t.Errorf("Short() = %q, want %q", got, "1.2.3")
	}
	if got := (Info{Version: "1.2.3", Dirty: true}).Short(); got != "1.2.3-dirty" {
		t.Errorf("Short() = %q, want %q", got, "1.2.3-dirty")
	}
}

func TestInfo_UserAgent(t *testing.T) {
	got := Info{Version: "1.0.0", Platform: "linux/amd64"}.UserAgent()
	if got != "crawldesk-api/1.0.0 (linux/amd64)" {
		t.Errorf("UserAgent() = %q", got)
	}
	if !strings.HasPrefix(Get().UserAgent(), "crawldesk-api/") {
		t.Errorf("UserAgent() = %q, want crawldesk-api/ prefix", Get().UserAgent())
	}
}
