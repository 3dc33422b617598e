package diff

import (
	"sort"
)

// ChangeType classifies a single difference
type ChangeType string

const (
	// ValuesChanged is a scalar mismatch or a kind mismatch at a path
	ValuesChanged ChangeType = "values_changed"
	// DictionaryItemAdded is a key present only in the new mapping
	DictionaryItemAdded ChangeType = "dictionary_item_added"
	// DictionaryItemRemoved is a key present only in the old mapping
	DictionaryItemRemoved ChangeType = "dictionary_item_removed"
	// IterableItemAdded is a sequence item present only in the new sequence
	IterableItemAdded ChangeType = "iterable_item_added"
	// IterableItemRemoved is a sequence item present only in the old sequence
	IterableItemRemoved ChangeType = "iterable_item_removed"
)

// Record is one classified difference located by a path identifier
type Record struct {
	Type ChangeType
	Path string
	Old  Value // unset for additions
	New  Value // unset for removals
}

// Change holds the two sides of a values_changed record
type Change struct {
	OldValue Value `json:"old_value"`
	NewValue Value `json:"new_value"`
}

// Result is the classified set of differences between two values.
// Categories are present only when non-empty. Path lists are sorted so
// the serialized form is stable.
type Result struct {
	ValuesChanged         map[string]Change `json:"values_changed,omitempty"`
	DictionaryItemAdded   []string          `json:"dictionary_item_added,omitempty"`
	DictionaryItemRemoved []string          `json:"dictionary_item_removed,omitempty"`
	IterableItemAdded     map[string]Value  `json:"iterable_item_added,omitempty"`
	IterableItemRemoved   map[string]Value  `json:"iterable_item_removed,omitempty"`
}

// Len returns the number of non-empty categories. A zero Len means the
// compared values are equal.
func (r Result) Len() int {
	n := 0
	if len(r.ValuesChanged) > 0 {
		n++
	}
	if len(r.DictionaryItemAdded) > 0 {
		n++
	}
	if len(r.DictionaryItemRemoved) > 0 {
		n++
	}
	if len(r.IterableItemAdded) > 0 {
		n++
	}
	if len(r.IterableItemRemoved) > 0 {
		n++
	}
	return n
}

// Empty reports whether no differences were found
func (r Result) Empty() bool {
	return r.Len() == 0
}

// Count returns the total number of records across all categories
func (r Result) Count() int {
	return len(r.ValuesChanged) + len(r.DictionaryItemAdded) + len(r.DictionaryItemRemoved) +
		len(r.IterableItemAdded) + len(r.IterableItemRemoved)
}

// Records flattens the result into records sorted by path, then type
func (r Result) Records() []Record {
	var records []Record
	for path, c := range r.ValuesChanged {
		records = append(records, Record{Type: ValuesChanged, Path: path, Old: c.OldValue, New: c.NewValue})
	}
	for _, path := range r.DictionaryItemAdded {
		records = append(records, Record{Type: DictionaryItemAdded, Path: path})
	}
	for _, path := range r.DictionaryItemRemoved {
		records = append(records, Record{Type: DictionaryItemRemoved, Path: path})
	}
	for path, v := range r.IterableItemAdded {
		records = append(records, Record{Type: IterableItemAdded, Path: path, New: v})
	}
	for path, v := range r.IterableItemRemoved {
		records = append(records, Record{Type: IterableItemRemoved, Path: path, Old: v})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Path != records[j].Path {
			return records[i].Path < records[j].Path
		}
		return records[i].Type < records[j].Type
	})
	return records
}

// newResult materializes collected records into a Result
func newResult(records []Record) Result {
	var r Result
	for _, rec := range records {
		switch rec.Type {
		case ValuesChanged:
			if r.ValuesChanged == nil {
				r.ValuesChanged = make(map[string]Change)
			}
			r.ValuesChanged[rec.Path] = Change{OldValue: rec.Old, NewValue: rec.New}
		case DictionaryItemAdded:
			r.DictionaryItemAdded = append(r.DictionaryItemAdded, rec.Path)
		case DictionaryItemRemoved:
			r.DictionaryItemRemoved = append(r.DictionaryItemRemoved, rec.Path)
		case IterableItemAdded:
			if r.IterableItemAdded == nil {
				r.IterableItemAdded = make(map[string]Value)
			}
			r.IterableItemAdded[rec.Path] = rec.New
		case IterableItemRemoved:
			if r.IterableItemRemoved == nil {
				r.IterableItemRemoved = make(map[string]Value)
			}
			r.IterableItemRemoved[rec.Path] = rec.Old
		}
	}
	sort.Strings(r.DictionaryItemAdded)
	sort.Strings(r.DictionaryItemRemoved)
	return r
}
