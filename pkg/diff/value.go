package diff

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind identifies which member of the Value union is set
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Time
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Time:
		return "time"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is a parsed document node: a mapping, a sequence, a scalar or null.
// The zero Value is Null.
type Value struct {
	kind   Kind
	scalar any // bool, int64, float64, string or time.Time

	items []Value

	// Mapping keys in insertion order, and values by key fingerprint.
	keys []Value
	vals map[string]Value
}

// Entry is a single key/value pair of a mapping
type Entry struct {
	Key   Value
	Value Value
}

func NullValue() Value            { return Value{} }
func BoolValue(b bool) Value      { return Value{kind: Bool, scalar: b} }
func IntValue(i int64) Value      { return Value{kind: Int, scalar: i} }
func FloatValue(f float64) Value  { return Value{kind: Float, scalar: f} }
func StringValue(s string) Value  { return Value{kind: String, scalar: s} }
func TimeValue(t time.Time) Value { return Value{kind: Time, scalar: t} }

// SequenceValue builds a sequence from the given items
func SequenceValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Sequence, items: items}
}

// MappingValue builds a mapping. A key given twice keeps its first position
// and its last value.
func MappingValue(entries ...Entry) Value {
	v := Value{kind: Mapping, vals: make(map[string]Value, len(entries))}
	for _, e := range entries {
		v.Set(e.Key, e.Value)
	}
	return v
}

// Kind returns the kind of the value
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null
func (v Value) IsNull() bool { return v.kind == Null }

// IsContainer reports whether the value is a sequence or a mapping
func (v Value) IsContainer() bool { return v.kind == Sequence || v.kind == Mapping }

// Scalar returns the Go value of a scalar: bool, int64, float64, string,
// time.Time, or nil for null and containers.
func (v Value) Scalar() any { return v.scalar }

// Len returns the number of items of a sequence or entries of a mapping
func (v Value) Len() int {
	switch v.kind {
	case Sequence:
		return len(v.items)
	case Mapping:
		return len(v.keys)
	default:
		return 0
	}
}

// Items returns the items of a sequence
func (v Value) Items() []Value {
	return v.items
}

// Entries returns the entries of a mapping in insertion order
func (v Value) Entries() []Entry {
	entries := make([]Entry, 0, len(v.keys))
	for _, k := range v.keys {
		entries = append(entries, Entry{Key: k, Value: v.vals[k.fingerprint()]})
	}
	return entries
}

// Get looks up a key in a mapping
func (v Value) Get(key Value) (Value, bool) {
	if v.kind != Mapping {
		return Value{}, false
	}
	val, ok := v.vals[key.fingerprint()]
	return val, ok
}

// Lookup is Get for string keys
func (v Value) Lookup(key string) (Value, bool) {
	return v.Get(StringValue(key))
}

// Set inserts or overwrites a mapping entry. It panics if v is not a mapping.
func (v *Value) Set(key, val Value) {
	if v.kind != Mapping {
		panic("diff: Set on " + v.kind.String() + " value")
	}
	if v.vals == nil {
		v.vals = make(map[string]Value)
	}
	fp := key.fingerprint()
	if _, exists := v.vals[fp]; !exists {
		v.keys = append(v.keys, key)
	}
	v.vals[fp] = val
}

// Equal reports whether two values are structurally equal, ignoring the
// order of sequence items and mapping keys
func Equal(a, b Value) bool {
	return a.fingerprint() == b.fingerprint()
}

// fingerprint returns a canonical encoding of v. Sequences are encoded as
// the sorted multiset of their item fingerprints, so two sequences holding
// the same items in any order share a fingerprint.
func (v Value) fingerprint() string {
	var sb strings.Builder
	v.writeFingerprint(&sb)
	return sb.String()
}

func (v Value) writeFingerprint(sb *strings.Builder) {
	switch v.kind {
	case Null:
		sb.WriteString("n")
	case Bool:
		if v.scalar.(bool) {
			sb.WriteString("b1")
		} else {
			sb.WriteString("b0")
		}
	case Int:
		sb.WriteString("i")
		sb.WriteString(strconv.FormatInt(v.scalar.(int64), 10))
		sb.WriteByte(';')
	case Float:
		sb.WriteString("f")
		sb.WriteString(formatFloat(v.scalar.(float64)))
		sb.WriteByte(';')
	case String:
		writeLenPrefixed(sb, "s", v.scalar.(string))
	case Time:
		writeLenPrefixed(sb, "t", v.scalar.(time.Time).UTC().Format(time.RFC3339Nano))
	case Sequence:
		fps := make([]string, len(v.items))
		for i, item := range v.items {
			fps[i] = item.fingerprint()
		}
		sort.Strings(fps)
		sb.WriteString("[")
		for _, fp := range fps {
			writeLenPrefixed(sb, "", fp)
		}
		sb.WriteString("]")
	case Mapping:
		type pair struct{ k, v string }
		pairs := make([]pair, 0, len(v.keys))
		for _, k := range v.keys {
			kfp := k.fingerprint()
			pairs = append(pairs, pair{kfp, v.vals[kfp].fingerprint()})
		}
		sort.Slice(pairs, func(i, j int) bool { return pairs[i].k < pairs[j].k })
		sb.WriteString("{")
		for _, p := range pairs {
			writeLenPrefixed(sb, "", p.k)
			writeLenPrefixed(sb, "", p.v)
		}
		sb.WriteString("}")
	}
}

func writeLenPrefixed(sb *strings.Builder, tag, s string) {
	sb.WriteString(tag)
	sb.WriteString(strconv.Itoa(len(s)))
	sb.WriteByte(':')
	sb.WriteString(s)
}

// formatFloat gives -0 and 0 the same form and all NaNs the same form
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// leaves counts scalar leaves; an empty container counts as one
func (v Value) leaves() int {
	n := 0
	switch v.kind {
	case Sequence:
		for _, item := range v.items {
			n += item.leaves()
		}
	case Mapping:
		for _, val := range v.vals {
			n += val.leaves()
		}
	default:
		return 1
	}
	if n == 0 {
		return 1
	}
	return n
}

// Interface converts v to plain Go values: map[string]any, []any, and
// scalars. Non-string mapping keys are rendered with keyString.
func (v Value) Interface() any {
	switch v.kind {
	case Null:
		return nil
	case Float:
		f := v.scalar.(float64)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return formatFloat(f)
		}
		return f
	case Time:
		return v.scalar.(time.Time).Format(time.RFC3339Nano)
	case Sequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case Mapping:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[keyString(k)] = v.vals[k.fingerprint()].Interface()
		}
		return out
	default:
		return v.scalar
	}
}

// MarshalJSON encodes the value as plain JSON
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// String renders the value compactly for console output
func (v Value) String() string {
	switch v.kind {
	case String:
		return strconv.Quote(v.scalar.(string))
	case Sequence, Mapping:
		data, err := v.MarshalJSON()
		if err != nil {
			return fmt.Sprintf("<%s>", v.kind)
		}
		return string(data)
	default:
		return keyString(v)
	}
}

// keyString renders a scalar as an object key
func keyString(v Value) string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.scalar.(bool))
	case Int:
		return strconv.FormatInt(v.scalar.(int64), 10)
	case Float:
		return formatFloat(v.scalar.(float64))
	case String:
		return v.scalar.(string)
	case Time:
		return v.scalar.(time.Time).Format(time.RFC3339Nano)
	default:
		return v.fingerprint()
	}
}

// FromInterface converts plain Go values into a Value. It accepts nil,
// bool, all integer kinds, float32/64, string, time.Time, []any, and maps
// keyed by string or any.
func FromInterface(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case int:
		return IntValue(int64(t)), nil
	case int8:
		return IntValue(int64(t)), nil
	case int16:
		return IntValue(int64(t)), nil
	case int32:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case uint:
		return uintValue(uint64(t)), nil
	case uint8:
		return IntValue(int64(t)), nil
	case uint16:
		return IntValue(int64(t)), nil
	case uint32:
		return IntValue(int64(t)), nil
	case uint64:
		return uintValue(t), nil
	case float32:
		return FloatValue(float64(t)), nil
	case float64:
		return FloatValue(t), nil
	case string:
		return StringValue(t), nil
	case time.Time:
		return TimeValue(t), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			iv, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = iv
		}
		return SequenceValue(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := MappingValue()
		for _, k := range keys {
			val, err := FromInterface(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m.Set(StringValue(k), val)
		}
		return m, nil
	case map[any]any:
		entries := make([]Entry, 0, len(t))
		for k, raw := range t {
			key, err := FromInterface(k)
			if err != nil {
				return Value{}, err
			}
			if key.IsContainer() {
				return Value{}, fmt.Errorf("unsupported mapping key of kind %s", key.kind)
			}
			val, err := FromInterface(raw)
			if err != nil {
				return Value{}, fmt.Errorf("key %v: %w", k, err)
			}
			entries = append(entries, Entry{Key: key, Value: val})
		}
		// Go map order is random; keep insertion order reproducible.
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Key.fingerprint() < entries[j].Key.fingerprint()
		})
		return MappingValue(entries...), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", x)
	}
}

// MustFromInterface is FromInterface that panics on error
func MustFromInterface(x any) Value {
	v, err := FromInterface(x)
	if err != nil {
		panic(err)
	}
	return v
}

func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return FloatValue(float64(u))
	}
	return IntValue(int64(u))
}
