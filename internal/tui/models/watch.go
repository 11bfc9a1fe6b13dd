package models

import (
	"sort"
	"strings"
	"sync"
	"time"

	serialdevice "github.com/seriallab/go-serialdevice"
)

// PortsMsg carries one enumeration snapshot into the TUI update loop.
type PortsMsg struct {
	Ports []serialdevice.PortDescriptor
	Err   error
	At    time.Time
}

// WatchModel holds the state shared between the watch view and its refresh
// loop: the current snapshot, when each port first appeared, and what the
// last change was.
type WatchModel struct {
	mu sync.RWMutex

	snapshot    []serialdevice.PortDescriptor
	firstSeen   map[string]time.Time
	lastRefresh time.Time
	lastChange  string
	err         error
	paused      bool
	primed      bool
}

func NewWatchModel() *WatchModel {
	return &WatchModel{
		firstSeen: make(map[string]time.Time),
	}
}

// Apply folds an enumeration snapshot into the model and returns a short
// summary of what changed, or "" when nothing did. The first snapshot only
// establishes the baseline and never counts as a change.
func (m *WatchModel) Apply(msg PortsMsg) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastRefresh = msg.At
	if msg.Err != nil {
		// Keep the previous snapshot visible alongside the error.
		m.err = msg.Err
		return ""
	}
	m.err = nil

	previous := make(map[string]bool, len(m.snapshot))
	for _, p := range m.snapshot {
		previous[p.Name] = true
	}

	var added, removed []string
	current := make(map[string]bool, len(msg.Ports))
	for _, p := range msg.Ports {
		current[p.Name] = true
		if _, seen := m.firstSeen[p.Name]; !seen {
			if m.primed {
				m.firstSeen[p.Name] = msg.At
			} else {
				// Baseline ports are not "new", they were already there.
				m.firstSeen[p.Name] = time.Time{}
			}
		}
		if m.primed && !previous[p.Name] {
			added = append(added, p.Name)
		}
	}
	for name := range previous {
		if !current[name] {
			removed = append(removed, name)
			delete(m.firstSeen, name)
		}
	}

	m.snapshot = msg.Ports
	if !m.primed {
		m.primed = true
		return ""
	}

	summary := changeSummary(added, removed)
	if summary != "" {
		m.lastChange = summary
	}
	return summary
}

func changeSummary(added, removed []string) string {
	sort.Strings(added)
	sort.Strings(removed)

	parts := make([]string, 0, len(added)+len(removed))
	for _, name := range added {
		parts = append(parts, "+"+name)
	}
	for _, name := range removed {
		parts = append(parts, "-"+name)
	}
	return strings.Join(parts, " ")
}

// Snapshot returns a copy of the current port listing.
func (m *WatchModel) Snapshot() []serialdevice.PortDescriptor {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]serialdevice.PortDescriptor, len(m.snapshot))
	copy(out, m.snapshot)
	return out
}

// IsNew reports whether the port appeared within the given window. Ports
// already present when watching began never count as new.
func (m *WatchModel) IsNew(name string, within time.Duration) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen, ok := m.firstSeen[name]
	if !ok || seen.IsZero() {
		return false
	}
	return time.Since(seen) < within
}

func (m *WatchModel) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

func (m *WatchModel) LastRefresh() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRefresh
}

func (m *WatchModel) LastChange() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastChange
}

func (m *WatchModel) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paused
}

// TogglePaused flips the paused state and returns the new value.
func (m *WatchModel) TogglePaused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = !m.paused
	return m.paused
}
