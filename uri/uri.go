package uri

//go:generate go tool errtrace -w .

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"

	"github.com/ghettovoice/navurl/internal/grammar"
	"github.com/ghettovoice/navurl/internal/ioutil"
	"github.com/ghettovoice/navurl/internal/log"
	"github.com/ghettovoice/navurl/internal/util"
	"github.com/ghettovoice/navurl/query"
)

// URL represents a parsed location reference.
//
// User, Pass and Hash hold decoded text, Path holds the path as it appeared in the input
// (see [URL.Paths] for decoded segments), Port is empty when implicit.
type URL struct {
	Protocol string // scheme without ":"
	User     string
	Pass     string
	Host     string
	Port     string
	Path     string
	Query    *query.Values
	Hash     string // fragment without "#"
}

// EncodeComponent percent-encodes s as a URI component.
// Apostrophes are escaped as well, so the result is safe inside HTML attributes.
func EncodeComponent(s string) string { return grammar.Encode(s) }

// DecodeComponent decodes a percent-encoded URI component.
// Plus signs are decoded as spaces, malformed escapes are kept as is.
func DecodeComponent(s string) string { return grammar.Decode(s) }

// IsAbsolute reports whether the URL has a protocol or a path starting with "/".
func (u *URL) IsAbsolute() bool {
	return u != nil && (u.Protocol != "" || strings.HasPrefix(u.Path, "/"))
}

// Paths returns decoded path segments.
// One leading slash is stripped before splitting, so "/a/b/" yields ["a" "b" ""].
func (u *URL) Paths() []string {
	if u == nil {
		return nil
	}
	segs := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	for i := range segs {
		segs[i] = grammar.Decode(segs[i])
	}
	return segs
}

// SetPaths replaces the path with the encoded segments joined with "/",
// prefixed with "/" when the URL is absolute.
// A first segment that is a bare drive letter ("c:") is kept unescaped.
// Calling it without segments leaves the path untouched.
func (u *URL) SetPaths(segs ...string) *URL {
	if len(segs) == 0 {
		return u
	}

	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)

	if u.IsAbsolute() {
		sb.WriteByte('/')
	}
	for i, s := range segs {
		if i > 0 {
			sb.WriteByte('/')
		}
		if i == 0 && grammar.IsDriveLetter(s) {
			sb.WriteString(s)
		} else {
			sb.WriteString(grammar.Encode(s))
		}
	}
	u.Path = sb.String()
	return u
}

// Params returns the query parameters ready to edit.
// A URL without a query, like the zero URL, gets a new empty one.
func (u *URL) Params() *query.Values {
	if u.Query == nil {
		u.Query = new(query.Values)
	}
	return u.Query
}

// ClearQuery removes all query parameters.
func (u *URL) ClearQuery() *URL {
	if u != nil {
		u.Query.Clear()
	}
	return u
}

// QueryLength returns the number of query parameters.
func (u *URL) QueryLength() int {
	if u == nil {
		return 0
	}
	return u.Query.Len()
}

// IsEmptyQuery reports whether the URL has no query parameters.
func (u *URL) IsEmptyQuery() bool { return u.QueryLength() == 0 }

// Resolve parses ref and resolves it against the URL.
func (u *URL) Resolve(ref string, opts ...ParseOption) *URL {
	return Parse(ref, append(opts, WithBase(u.String()), WithResolve())...)
}

// RenderTo writes the URL to w.
//
// Components are written in order, each only if set: "protocol://", "user:pass@"
// (the colon is written whenever the user is set), host, ":port", path,
// "?query" and "#hash". User, password and hash are encoded with [EncodeComponent].
func (u *URL) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)

	if u.Protocol != "" {
		cw.Fprint(u.Protocol, "://") //nolint:errcheck
	}
	if u.User != "" {
		cw.Fprint(grammar.Encode(u.User), ":", grammar.Encode(u.Pass), "@") //nolint:errcheck
	}
	cw.WriteString(u.Host) //nolint:errcheck
	if u.Port != "" {
		cw.Fprint(":", u.Port) //nolint:errcheck
	}
	cw.WriteString(u.Path) //nolint:errcheck
	if !u.Query.IsEmpty() {
		cw.WriteString("?") //nolint:errcheck
		cw.Call(u.Query.RenderTo)
	}
	if u.Hash != "" {
		cw.Fprint("#", grammar.Encode(u.Hash)) //nolint:errcheck
	}
	return errtrace.Wrap2(cw.Result())
}

// Render renders the URL to a string.
func (u *URL) Render() string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the URL.
func (u *URL) String() string { return u.Render() }

// Redacted is like [URL.String] but replaces a non-empty password with "xxxxx".
func (u *URL) Redacted() string { return u.redacted().String() }

func (u *URL) redacted() *URL {
	if u == nil || u.Pass == "" {
		return u
	}
	u2 := *u
	u2.Pass = log.Masked
	return &u2
}

// Format implements fmt.Formatter for custom formatting of the URL.
//
// Verbs %s and %v print the rendered URL, %q prints it quoted.
// Verbs %+v, %#v and others print the components with the password masked.
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	case 'v':
		if !f.Flag('+') && !f.Flag('#') {
			fmt.Fprint(f, u.String())
			return
		}
		fallthrough
	default:
		type hideMethods URL
		type URL hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URL)(u.redacted()))
		return
	}
}

// LogValue implements [slog.LogValuer].
// The password is never logged.
func (u *URL) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	return slog.StringValue(u.Redacted())
}

// Clone returns a deep copy of the URL.
func (u *URL) Clone() *URL {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.Query = u.Query.Clone()
	return &u2
}

// Equal compares this URL with another for equality.
// All components must match exactly, the query including parameters order.
func (u *URL) Equal(val any) bool {
	var other *URL
	switch v := val.(type) {
	case URL:
		other = &v
	case *URL:
		other = v
	default:
		return false
	}

	if u == other {
		return true
	} else if u == nil || other == nil {
		return false
	}

	return u.Protocol == other.Protocol &&
		u.User == other.User &&
		u.Pass == other.Pass &&
		u.Host == other.Host &&
		u.Port == other.Port &&
		u.Path == other.Path &&
		u.Hash == other.Hash &&
		u.Query.Equal(other.Query)
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// Relative references are kept relative, an empty text gives an empty URL with an empty query.
func (u *URL) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*u = URL{Query: new(query.Values)}
		return nil
	}
	*u = *Parse(text)
	return nil
}
