package compare

import (
	"sort"

	"github.com/sdejongh/tablediff/pkg/storage"
)

// Snapshot is the set of entry names of one directory at one point in time
type Snapshot map[string]struct{}

// NewSnapshot builds a snapshot from a list of names
func NewSnapshot(names ...string) Snapshot {
	s := make(Snapshot, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// SnapshotFromEntries builds a snapshot from backend entries, dropping
// entries that match any of the exclude patterns
func SnapshotFromEntries(entries []storage.FileInfo, exclude []string) Snapshot {
	s := make(Snapshot, len(entries))
	for _, e := range entries {
		if shouldExclude(e, exclude) {
			continue
		}
		s[e.Name] = struct{}{}
	}
	return s
}

// Has reports whether the snapshot contains name
func (s Snapshot) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the snapshot's names in sorted order
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Partition splits the union of two snapshots into three disjoint sorted sets
type Partition struct {
	Shared []string
	OnlyA  []string
	OnlyB  []string
}

// PartitionSnapshots partitions a and b by name
func PartitionSnapshots(a, b Snapshot) Partition {
	p := Partition{
		Shared: []string{},
		OnlyA:  []string{},
		OnlyB:  []string{},
	}
	for _, name := range a.Names() {
		if b.Has(name) {
			p.Shared = append(p.Shared, name)
		} else {
			p.OnlyA = append(p.OnlyA, name)
		}
	}
	for _, name := range b.Names() {
		if !a.Has(name) {
			p.OnlyB = append(p.OnlyB, name)
		}
	}
	return p
}
