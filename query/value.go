package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Kind describes what a [Value] holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindList
	KindAbsent
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindAbsent:
		return "absent"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is a query parameter value.
// The zero value is null.
type Value struct {
	kind Kind
	str  string
	list []string
	bare []bool // list elements given without "=", nil when none
}

// Null returns the value of a key given without "=".
func Null() Value { return Value{} }

// Scalar returns a single string value.
func Scalar(s string) Value { return Value{kind: KindScalar, str: s} }

// List returns a list value, one "key=value" pair per element.
func List(vs ...string) Value {
	if vs == nil {
		vs = []string{}
	}
	return Value{kind: KindList, list: slices.Clone(vs)}
}

// Absent returns the placeholder value rendered as "key=".
func Absent() Value { return Value{kind: KindAbsent} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Scalar returns the string of a scalar value.
func (v Value) Scalar() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}
	return v.str, true
}

// List returns all strings of the value: the elements of a list,
// a single element for a scalar, nil otherwise.
// List elements given without "=" are returned as empty strings.
func (v Value) List() []string {
	switch v.kind {
	case KindScalar:
		return []string{v.str}
	case KindList:
		return slices.Clone(v.list)
	default:
		return nil
	}
}

// First returns the scalar string or the first list element.
// Null, absent and empty list values return an empty string.
func (v Value) First() string {
	switch v.kind {
	case KindScalar:
		return v.str
	case KindList:
		if len(v.list) > 0 {
			return v.list[0]
		}
	}
	return ""
}

// Equal reports whether both values are of the same kind and hold the same strings.
// List elements given without "=" differ from empty strings.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.str == other.str
	case KindList:
		if !slices.Equal(v.list, other.list) {
			return false
		}
		for i := range v.list {
			if v.isBare(i) != other.isBare(i) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// GoString implements [fmt.GoStringer].
func (v Value) GoString() string {
	switch v.kind {
	case KindScalar:
		return fmt.Sprintf("query.Scalar(%q)", v.str)
	case KindList:
		qs := make([]string, len(v.list))
		for i, s := range v.list {
			qs[i] = strconv.Quote(s)
		}
		return "query.List(" + strings.Join(qs, ", ") + ")"
	case KindAbsent:
		return "query.Absent()"
	default:
		return "query.Null()"
	}
}

// push promotes the value to a list and appends the elements of other.
func (v Value) push(other Value) Value {
	r := Value{kind: KindList}
	if v.kind == KindList {
		r.list, r.bare = slices.Clip(v.list), slices.Clip(v.bare)
	} else {
		r.appendElems(v)
	}
	r.appendElems(other)
	return r
}

func (v *Value) appendElems(other Value) {
	switch other.kind {
	case KindList:
		for i, s := range other.list {
			v.appendElem(s, other.isBare(i))
		}
	case KindScalar:
		v.appendElem(other.str, false)
	case KindAbsent:
		v.appendElem("", false)
	default:
		v.appendElem("", true)
	}
}

func (v *Value) appendElem(s string, bare bool) {
	if bare && v.bare == nil {
		v.bare = make([]bool, len(v.list), len(v.list)+1)
	}
	v.list = append(v.list, s)
	if v.bare != nil {
		v.bare = append(v.bare, bare)
	}
}

// isBare reports whether the i-th list element is rendered as the key alone.
func (v Value) isBare(i int) bool { return i < len(v.bare) && v.bare[i] }
