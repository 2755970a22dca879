package query

//go:generate go tool errtrace -w .

import (
	"io"
	"iter"
	"slices"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/navurl/internal/grammar"
	"github.com/ghettovoice/navurl/internal/ioutil"
	"github.com/ghettovoice/navurl/internal/util"
)

// Values is an ordered multi-map of query parameters.
// The zero value is an empty map ready to use.
// Read methods are safe to call on a nil *Values.
type Values struct {
	keys []string
	vals map[string]Value
}

// Parse parses the raw query string (with or without the leading "?").
//
// The string is split on "&" and every part once at the first "=".
// A part without "=" yields a null value. Keys and values are decoded
// with the lenient percent decoder, parts with an empty decoded key are dropped.
// A repeated key promotes the value to a list and appends to it.
// Parse never fails: malformed escapes are kept as is.
func Parse[T util.Byteseq](raw T) *Values {
	q := new(Values)
	s := strings.TrimPrefix(string(raw), "?")
	if s == "" {
		return q
	}

	for part := range strings.SplitSeq(s, "&") {
		k, v, hasVal := strings.Cut(part, "=")
		if k = grammar.Decode(k); k == "" {
			continue
		}
		if hasVal {
			q.Add(k, Scalar(grammar.Decode(v)))
		} else {
			q.Add(k, Null())
		}
	}
	return q
}

// Get returns the value associated with the key.
func (q *Values) Get(key string) (Value, bool) {
	if q == nil {
		return Value{}, false
	}
	v, ok := q.vals[key]
	return v, ok
}

// Has checks whether the key is present.
func (q *Values) Has(key string) bool {
	_, ok := q.Get(key)
	return ok
}

// Set binds the key to the value.
// A new key is appended, an existing one keeps its position.
func (q *Values) Set(key string, v Value) *Values {
	if q.vals == nil {
		q.vals = make(map[string]Value)
	}
	if _, ok := q.vals[key]; !ok {
		q.keys = append(q.keys, key)
	}
	q.vals[key] = v
	return q
}

// Add binds the key to the value if the key is new,
// otherwise it promotes the current value to a list and appends v to it:
// every element of a list, the string of a scalar, an empty string for absent.
// A null becomes a list element rendered as the bare key.
func (q *Values) Add(key string, v Value) *Values {
	cur, ok := q.Get(key)
	if !ok {
		return q.Set(key, v)
	}
	q.vals[key] = cur.push(v)
	return q
}

// Del removes the key.
func (q *Values) Del(key string) *Values {
	if !q.Has(key) {
		return q
	}
	delete(q.vals, key)
	if i := slices.Index(q.keys, key); i >= 0 {
		q.keys = slices.Delete(q.keys, i, i+1)
	}
	return q
}

// Keys returns the keys in insertion order.
func (q *Values) Keys() []string {
	if q == nil {
		return nil
	}
	return slices.Clone(q.keys)
}

// All returns an iterator over key-value pairs in insertion order.
func (q *Values) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if q == nil {
			return
		}
		for _, k := range q.keys {
			if !yield(k, q.vals[k]) {
				return
			}
		}
	}
}

// Len returns the number of keys.
func (q *Values) Len() int {
	if q == nil {
		return 0
	}
	return len(q.keys)
}

// IsEmpty reports whether there are no keys.
func (q *Values) IsEmpty() bool { return q.Len() == 0 }

// Clear removes all keys.
func (q *Values) Clear() *Values {
	if q == nil {
		return q
	}
	q.keys = q.keys[:0]
	clear(q.vals)
	return q
}

// Clone returns a deep copy.
func (q *Values) Clone() *Values {
	if q == nil {
		return nil
	}
	q2 := &Values{keys: slices.Clone(q.keys)}
	if q.vals != nil {
		q2.vals = make(map[string]Value, len(q.vals))
		for k, v := range q.vals {
			if v.kind == KindList {
				v.list, v.bare = slices.Clone(v.list), slices.Clone(v.bare)
			}
			q2.vals[k] = v
		}
	}
	return q2
}

// Equal reports whether both maps hold the same keys in the same order bound to equal values.
// A nil map equals an empty one.
func (q *Values) Equal(other *Values) bool {
	if q.Len() != other.Len() {
		return false
	}
	for i, k := range q.Keys() {
		if other.keys[i] != k || !q.vals[k].Equal(other.vals[k]) {
			return false
		}
	}
	return true
}

// RenderTo writes the query string (without "?") to w.
//
// Keys are rendered in insertion order: a list as one pair per element
// (or "key=" once when empty), null and null list elements as the bare key,
// a scalar as "key=value" and absent as "key=". Keys and values are encoded with [grammar.Encode].
func (q *Values) RenderTo(w io.Writer) (num int, err error) {
	if q.IsEmpty() {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	var n int
	pair := func(k string, v *string) {
		if n > 0 {
			cw.WriteString("&") //nolint:errcheck
		}
		cw.WriteString(k) //nolint:errcheck
		if v != nil {
			cw.Fprint("=", grammar.Encode(*v)) //nolint:errcheck
		}
		n++
	}

	empty := ""
	for key, v := range q.All() {
		k := grammar.Encode(key)
		switch v.kind {
		case KindList:
			if len(v.list) == 0 {
				pair(k, &empty)
			}
			for i := range v.list {
				pair(k, &v.list[i])
			}
		case KindScalar:
			pair(k, &v.str)
		case KindAbsent:
			pair(k, &empty)
		default:
			pair(k, nil)
		}
	}
	return errtrace.Wrap2(cw.Result())
}

// String returns the query string without the leading "?".
func (q *Values) String() string {
	if q.IsEmpty() {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	q.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// MarshalText implements [encoding.TextMarshaler].
func (q *Values) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (q *Values) UnmarshalText(text []byte) error {
	*q = *Parse(text)
	return nil
}
