// Package shutdown stops the backend once the desktop app stopped using it.
package shutdown

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// BusyChecker returns true while work outside HTTP requests is in progress,
// such as a bulk scrape whose client already disconnected.
type BusyChecker func() bool

// IdleMonitor tracks request activity and signals when the server has been
// idle for a configurable duration. The desktop shell starts the backend on
// demand and relies on it exiting once nothing talks to it.
type IdleMonitor struct {
	timeout       time.Duration
	checkInterval time.Duration
	logger        *slog.Logger
	excludePaths  []string
	busy          BusyChecker

	activeRequests atomic.Int64
	mu             sync.RWMutex
	lastActivity   time.Time

	shutdownChan chan struct{}
	stopChan     chan struct{}
	stopOnce     sync.Once
}

// IdleMonitorConfig holds configuration for the idle monitor.
type IdleMonitorConfig struct {
	Timeout       time.Duration // How long to wait before considering idle; 0 disables
	CheckInterval time.Duration // 0 derives it from Timeout
	Logger        *slog.Logger
	ExcludePaths  []string    // URL paths that don't count as activity (health checks)
	Busy          BusyChecker // Optional: returns true while background work runs
}

// NewIdleMonitor creates a new idle monitor.
func NewIdleMonitor(cfg IdleMonitorConfig) *IdleMonitor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IdleMonitor{
		timeout:       cfg.Timeout,
		checkInterval: checkInterval(cfg.Timeout, cfg.CheckInterval),
		logger:        logger,
		excludePaths:  cfg.ExcludePaths,
		busy:          cfg.Busy,
		lastActivity:  time.Now(),
		shutdownChan:  make(chan struct{}),
		stopChan:      make(chan struct{}),
	}
}

// checkInterval polls several times per timeout, within [5s, 30s] unless
// an explicit interval is given.
func checkInterval(timeout, explicit time.Duration) time.Duration {
	if explicit > 0 {
		return explicit
	}
	return min(max(timeout/6, 5*time.Second), 30*time.Second)
}

// Enabled reports whether the monitor will ever signal shutdown.
func (m *IdleMonitor) Enabled() bool {
	return m.timeout > 0
}

// Start begins monitoring for idle periods.
func (m *IdleMonitor) Start() {
	if !m.Enabled() {
		m.logger.Debug("idle monitoring disabled (timeout=0)")
		return
	}

	m.logger.Info("idle monitoring started", "timeout", m.timeout, "exclude_paths", m.excludePaths)
	go m.run()
}

// Stop stops the idle monitor. It is safe to call more than once.
func (m *IdleMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopChan) })
}

// ShutdownChan returns a channel that is closed when idle timeout is reached.
func (m *IdleMonitor) ShutdownChan() <-chan struct{} {
	return m.shutdownChan
}

// ActiveRequests returns the number of tracked requests in flight.
func (m *IdleMonitor) ActiveRequests() int64 {
	return m.activeRequests.Load()
}

// Middleware returns an HTTP middleware that tracks request activity.
// Requests to excluded paths do not count.
func (m *IdleMonitor) Middleware(next http.Handler) http.Handler {
	if !m.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.excluded(r.URL.Path) {
			m.touch(1)
			defer m.touch(-1)
		}
		next.ServeHTTP(w, r)
	})
}

func (m *IdleMonitor) excluded(path string) bool {
	for _, p := range m.excludePaths {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}

// touch adjusts the in-flight count and records activity.
func (m *IdleMonitor) touch(delta int64) {
	m.activeRequests.Add(delta)
	m.mu.Lock()
	m.lastActivity = time.Now()
	m.mu.Unlock()
}

func (m *IdleMonitor) run() {
	ticker := time.NewTicker(m.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopChan:
			return
		case <-ticker.C:
			if m.check() {
				close(m.shutdownChan)
				return
			}
		}
	}
}

// check reports whether the server has been idle long enough. Busy
// periods restart the idle timer so a full timeout follows the last work.
func (m *IdleMonitor) check() bool {
	active := m.activeRequests.Load()
	busy := m.busy != nil && m.busy()

	if active > 0 || busy {
		m.mu.Lock()
		m.lastActivity = time.Now()
		m.mu.Unlock()
		m.logger.Debug("idle check", "active_requests", active, "busy", busy)
		return false
	}

	m.mu.RLock()
	idle := time.Since(m.lastActivity)
	m.mu.RUnlock()

	if idle < m.timeout {
		m.logger.Debug("idle check", "idle_time", idle, "timeout", m.timeout)
		return false
	}

	m.logger.Info("idle timeout reached, signaling graceful shutdown",
		"idle_time", idle,
		"timeout", m.timeout,
	)
	return true
}
