// Package diff compares parsed table documents structurally. Sequences are
// compared as multisets, so reordering items is never a difference.
package diff

import (
	"math"
	"sort"
)

// DefaultPairCutoff is the largest distance at which two unmatched sequence
// items are still treated as one modified item
const DefaultPairCutoff = 0.3

// Options tunes the differ
type Options struct {
	// PairCutoff bounds the distance (changed leaves over total leaves) at
	// which an unmatched old container item and an unmatched new container
	// item are diffed against each other. Above it they are reported as one
	// removal and one addition. Zero disables pairing.
	PairCutoff float64
}

// DefaultOptions returns the options used by Diff
func DefaultOptions() Options {
	return Options{PairCutoff: DefaultPairCutoff}
}

// Differ computes order-insensitive structural differences
type Differ struct {
	opts Options
}

// New creates a differ with the given options
func New(opts Options) *Differ {
	return &Differ{opts: opts}
}

// Diff compares two values with the default options
func Diff(a, b Value) Result {
	return New(DefaultOptions()).Diff(a, b)
}

// Diff compares a (old) against b (new). Sequences are compared as
// multisets at every depth. The result is a pure function of a and b.
func (d *Differ) Diff(a, b Value) Result {
	return newResult(d.walk(RootPath, a, b, nil))
}

func (d *Differ) walk(path string, a, b Value, records []Record) []Record {
	if a.kind != b.kind {
		return append(records, Record{Type: ValuesChanged, Path: path, Old: a, New: b})
	}

	switch a.kind {
	case Mapping:
		return d.walkMapping(path, a, b, records)
	case Sequence:
		return d.walkSequence(path, a, b, records)
	default:
		if !Equal(a, b) {
			records = append(records, Record{Type: ValuesChanged, Path: path, Old: a, New: b})
		}
		return records
	}
}

func (d *Differ) walkMapping(path string, a, b Value, records []Record) []Record {
	for _, key := range a.keys {
		fp := key.fingerprint()
		valA := a.vals[fp]
		if valB, found := b.vals[fp]; found {
			records = d.walk(keyPath(path, key), valA, valB, records)
		} else {
			records = append(records, Record{Type: DictionaryItemRemoved, Path: keyPath(path, key), Old: valA})
		}
	}
	for _, key := range b.keys {
		if _, found := a.vals[key.fingerprint()]; !found {
			records = append(records, Record{Type: DictionaryItemAdded, Path: keyPath(path, key), New: b.vals[key.fingerprint()]})
		}
	}
	return records
}

// walkSequence matches equal items first, pairs close leftovers, and reports
// the rest as removed (old index) or added (new index)
func (d *Differ) walkSequence(path string, a, b Value, records []Record) []Record {
	fpA := make([]string, len(a.items))
	for i, item := range a.items {
		fpA[i] = item.fingerprint()
	}

	// Queue of new indices per fingerprint, earliest first
	pending := make(map[string][]int)
	for j, item := range b.items {
		fp := item.fingerprint()
		pending[fp] = append(pending[fp], j)
	}

	var unmatchedA []int
	for i, fp := range fpA {
		if queue := pending[fp]; len(queue) > 0 {
			pending[fp] = queue[1:]
			continue
		}
		unmatchedA = append(unmatchedA, i)
	}

	var unmatchedB []int
	for _, queue := range pending {
		unmatchedB = append(unmatchedB, queue...)
	}
	sort.Ints(unmatchedB)

	pairedB := make(map[int]bool)
	for _, i := range unmatchedA {
		itemA := a.items[i]
		if j, sub, ok := d.closest(itemA, b, unmatchedB, pairedB); ok {
			pairedB[j] = true
			records = append(records, rebase(sub, RootPath, indexPath(path, i))...)
			continue
		}
		records = append(records, Record{Type: IterableItemRemoved, Path: indexPath(path, i), Old: itemA})
	}

	for _, j := range unmatchedB {
		if !pairedB[j] {
			records = append(records, Record{Type: IterableItemAdded, Path: indexPath(path, j), New: b.items[j]})
		}
	}
	return records
}

// closest finds the unpaired new container item nearest to itemA. Ties go
// to the lowest index.
func (d *Differ) closest(itemA, b Value, candidates []int, paired map[int]bool) (int, []Record, bool) {
	if !itemA.IsContainer() || d.opts.PairCutoff <= 0 {
		return 0, nil, false
	}

	best, bestDist := -1, math.Inf(1)
	var bestRecords []Record
	for _, j := range candidates {
		itemB := b.items[j]
		if paired[j] || itemB.kind != itemA.kind {
			continue
		}
		sub := d.walk(RootPath, itemA, itemB, nil)
		dist := distance(sub, itemA, itemB)
		if dist < bestDist {
			best, bestDist, bestRecords = j, dist, sub
		}
	}

	if best < 0 || bestDist > d.opts.PairCutoff {
		return 0, nil, false
	}
	return best, bestRecords, true
}

// distance is the share of leaves touched by records
func distance(records []Record, a, b Value) float64 {
	cost := 0
	for _, rec := range records {
		switch rec.Type {
		case ValuesChanged:
			cost += max(rec.Old.leaves(), rec.New.leaves())
		case DictionaryItemAdded, IterableItemAdded:
			cost += rec.New.leaves()
		case DictionaryItemRemoved, IterableItemRemoved:
			cost += rec.Old.leaves()
		}
	}
	return float64(cost) / float64(a.leaves()+b.leaves())
}

// rebase rewrites record paths computed against a sub-root
func rebase(records []Record, from, to string) []Record {
	for i := range records {
		records[i].Path = to + records[i].Path[len(from):]
	}
	return records
}
