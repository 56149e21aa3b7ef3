package tracking

import (
	"cmp"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/mathedit/internal/formula"
)

// Errors returned by snapshot operations.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// snapshotCounter orders snapshots taken within the same clock tick.
var snapshotCounter atomic.Uint64

// Snapshot represents a named checkpoint of a formula.
// Snapshots are immutable and can be safely shared across goroutines.
type Snapshot struct {
	// ID uniquely identifies this snapshot.
	ID uuid.UUID

	// Name is the human-readable name for this snapshot.
	Name string

	// Timestamp when this snapshot was created.
	Timestamp time.Time

	// Revision is the document revision at the time of snapshot.
	Revision uint64

	seq     uint64
	markup  string
	outline string
}

// NewSnapshot captures root under name.
func NewSnapshot(name string, root formula.Element, revision uint64) *Snapshot {
	return &Snapshot{
		ID:        uuid.New(),
		Name:      name,
		Timestamp: time.Now(),
		Revision:  revision,
		seq:       snapshotCounter.Add(1),
		markup:    formula.Markup(root),
		outline:   formula.Dump(root),
	}
}

// Markup returns the MathML captured by the snapshot.
func (s *Snapshot) Markup() string { return s.markup }

// Formula parses the captured MathML into a fresh tree.
func (s *Snapshot) Formula() (*formula.Formula, error) {
	return formula.ParseMarkup(s.markup)
}

// Diff returns the outline diff from the snapshot to current, or "" when
// the trees have the same shape.
func (s *Snapshot) Diff(current formula.Element) string {
	return diffOutlines(s.outline, formula.Dump(current))
}

// Age returns how long ago this snapshot was created.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.Timestamp)
}

// SnapshotManager manages named snapshots.
// All operations are thread-safe.
type SnapshotManager struct {
	mu        sync.RWMutex
	snapshots map[uuid.UUID]*Snapshot
	byName    map[string]*Snapshot
}

// NewSnapshotManager creates a new snapshot manager.
func NewSnapshotManager() *SnapshotManager {
	return &SnapshotManager{
		snapshots: make(map[uuid.UUID]*Snapshot),
		byName:    make(map[string]*Snapshot),
	}
}

// Create creates a new named snapshot.
// If a snapshot with the same name exists, it is replaced.
func (sm *SnapshotManager) Create(name string, root formula.Element, revision uint64) uuid.UUID {
	snap := NewSnapshot(name, root, revision)

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if existing, ok := sm.byName[name]; ok {
		delete(sm.snapshots, existing.ID)
	}
	sm.snapshots[snap.ID] = snap
	if name != "" {
		sm.byName[name] = snap
	}
	return snap.ID
}

// Get retrieves a snapshot by ID.
func (sm *SnapshotManager) Get(id uuid.UUID) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.snapshots[id]
	return snap, ok
}

// GetByName retrieves a snapshot by name.
func (sm *SnapshotManager) GetByName(name string) (*Snapshot, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	snap, ok := sm.byName[name]
	return snap, ok
}

// Delete removes a snapshot by ID.
func (sm *SnapshotManager) Delete(id uuid.UUID) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if snap, ok := sm.snapshots[id]; ok {
		if snap.Name != "" {
			delete(sm.byName, snap.Name)
		}
		delete(sm.snapshots, id)
	}
}

// List returns all snapshots, oldest first.
func (sm *SnapshotManager) List() []*Snapshot {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	snapshots := make([]*Snapshot, 0, len(sm.snapshots))
	for _, snap := range sm.snapshots {
		snapshots = append(snapshots, snap)
	}
	slices.SortFunc(snapshots, func(a, b *Snapshot) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return snapshots
}

// Names returns all snapshot names in sorted order.
func (sm *SnapshotManager) Names() []string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	names := make([]string, 0, len(sm.byName))
	for name := range sm.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Count returns the number of snapshots.
func (sm *SnapshotManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.snapshots)
}

// Clear removes all snapshots.
func (sm *SnapshotManager) Clear() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.snapshots = make(map[uuid.UUID]*Snapshot)
	sm.byName = make(map[string]*Snapshot)
}

// PruneKeepN removes oldest snapshots, keeping only the N most recent.
// Returns the number of snapshots removed.
func (sm *SnapshotManager) PruneKeepN(n int) int {
	all := sm.List()
	if len(all) <= n {
		return 0
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	removed := 0
	for _, snap := range all[:len(all)-n] {
		if sm.byName[snap.Name] == snap {
			delete(sm.byName, snap.Name)
		}
		delete(sm.snapshots, snap.ID)
		removed++
	}
	return removed
}
