package uri

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ghettovoice/navurl/internal/grammar"
	"github.com/ghettovoice/navurl/internal/log"
	"github.com/ghettovoice/navurl/internal/util"
	"github.com/ghettovoice/navurl/query"
)

// ParseOption configures [Parse].
type ParseOption interface {
	applyParse(opts *parseOptions)
}

type parseOptions struct {
	base    string
	resolve bool
	loc     LocationProvider
	log     *slog.Logger
}

type withBase string

func (o withBase) applyParse(opts *parseOptions) { opts.base = string(o) }

// WithBase sets the base reference relative references are resolved against.
// Without it the current location is used.
// The base takes effect only together with [WithResolve].
func WithBase(base string) ParseOption { return withBase(base) }

type withResolve struct{}

func (withResolve) applyParse(opts *parseOptions) { opts.resolve = true }

// WithResolve requests resolution of relative references.
func WithResolve() ParseOption { return withResolve{} }

type withLocation struct {
	loc LocationProvider
}

func (o withLocation) applyParse(opts *parseOptions) {
	if o.loc != nil {
		opts.loc = o.loc
	}
}

// WithLocation sets the provider of the current location.
// It is consulted for an empty input and for resolution without an explicit base,
// at most once per [Parse] call. Defaults to [RootLocation].
func WithLocation(loc LocationProvider) ParseOption { return withLocation{loc} }

type withLogger struct {
	log *slog.Logger
}

func (o withLogger) applyParse(opts *parseOptions) {
	if o.log != nil {
		opts.log = o.log
	}
}

// WithLogger sets the logger for debug messages. Defaults to a noop logger.
func WithLogger(l *slog.Logger) ParseOption { return withLogger{l} }

// Parse parses a location reference from the given input s (string or []byte).
//
// A reference starting with a "[a-z]+:" token is absolute: the protocol, credentials,
// host and port are split from it. Any other reference is relative and only has path,
// query and hash, unless resolution is requested with [WithResolve].
// An empty input is replaced with the current location.
//
// Parse never fails and never returns nil.
func Parse[T util.Byteseq](s T, opts ...ParseOption) *URL {
	p := parser{parseOptions: parseOptions{loc: RootLocation, log: log.Noop}}
	for _, opt := range opts {
		if opt != nil {
			opt.applyParse(&p.parseOptions)
		}
	}
	return p.parse(string(s))
}

// Resolve parses the reference and resolves it against the base.
// It is a shortcut for Parse(ref, WithBase(base), WithResolve()).
func Resolve[T util.Byteseq](ref T, base string, opts ...ParseOption) *URL {
	return Parse(ref, append(opts, WithBase(base), WithResolve())...)
}

type parser struct {
	parseOptions
	location *string
}

// currentLocation reads the location provider once.
func (p *parser) currentLocation() string {
	if p.location == nil {
		loc := p.loc.Location()
		p.location = &loc
	}
	return *p.location
}

func (p *parser) parse(s string) *URL {
	ctx := context.Background()
	if s == "" {
		s = p.currentLocation()
		p.log.LogAttrs(ctx, slog.LevelDebug, "empty reference replaced with the current location",
			slog.String("location", s),
		)
	}

	u := split(s)
	if u.Protocol == "" && p.resolve {
		base := p.base
		if base == "" {
			base = p.currentLocation()
		}
		b := split(base)
		resolve(u, b)
		p.log.LogAttrs(ctx, slog.LevelDebug, "relative reference resolved",
			slog.String("reference", s),
			slog.String("base", b.Redacted()),
			slog.String("url", u.Redacted()),
		)
	}
	return u
}

// split breaks s into components without resolving it.
func split(s string) *URL {
	u := new(URL)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		u.Hash = grammar.Decode(s[i+1:])
		s = s[:i]
	}
	var rawQuery string
	if i := strings.IndexByte(s, '?'); i >= 0 {
		rawQuery = s[i+1:]
		s = s[:i]
	}
	u.Query = query.Parse(rawQuery)

	if n := grammar.SchemeLen(s); n > 0 {
		u.Protocol, s = s[:n], s[n+1:]
		if rest, ok := strings.CutPrefix(s, "//"); ok {
			auth := rest
			s = ""
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				auth, s = rest[:i], rest[i:]
			}
			u.setAuthority(auth)
		}
	}
	u.Path = fixPath(s, u.Protocol != "")
	return u
}

// setAuthority splits "user:pass@host:port".
// The port is taken only when it is made of digits.
func (u *URL) setAuthority(auth string) {
	if i := strings.LastIndexByte(auth, '@'); i >= 0 {
		user, pass, _ := strings.Cut(auth[:i], ":")
		u.User, u.Pass = grammar.Decode(user), grammar.Decode(pass)
		auth = auth[i+1:]
	}

	u.Host = auth
	if i := strings.LastIndexByte(auth, ':'); i >= 0 && !strings.Contains(auth[i:], "]") {
		if port := auth[i+1:]; port == "" || grammar.IsDigits(port) {
			u.Host = auth[:i]
			u.Port = normalizePort(u.Protocol, port)
		}
	}
}

// resolve completes the relative reference u with components of the base b.
func resolve(u, b *URL) {
	u.Protocol, u.User, u.Pass, u.Host, u.Port = b.Protocol, b.User, b.Pass, b.Host, b.Port
	if !strings.HasPrefix(u.Path, "/") {
		u.Path = joinPath(b.Path, u.Path)
	}
	u.Path = fixPath(u.Path, u.Protocol != "")
}

// joinPath appends the relative path ref to the directory of the base path.
// Every leading ".." segment of ref removes one more segment of the directory.
func joinPath(base, ref string) string {
	dir := strings.Split(base, "/")
	dir = dir[:len(dir)-1]
	segs := strings.Split(ref, "/")
	for len(segs) > 0 && segs[0] == ".." {
		if len(dir) > 0 {
			dir = dir[:len(dir)-1]
		}
		segs = segs[1:]
	}
	return strings.Join(dir, "/") + "/" + strings.Join(segs, "/")
}

// fixPath collapses leading slashes into one
// and makes sure the path of a URL with protocol starts with a slash.
func fixPath(p string, hasProto bool) string {
	if strings.HasPrefix(p, "//") {
		p = "/" + strings.TrimLeft(p, "/")
	}
	if hasProto && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
