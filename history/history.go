package history

//go:generate go tool errtrace -w .

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"braces.dev/errtrace"
	"github.com/qmuntal/stateless"

	"github.com/ghettovoice/navurl/internal/errorutil"
	"github.com/ghettovoice/navurl/internal/log"
	"github.com/ghettovoice/navurl/internal/util"
	"github.com/ghettovoice/navurl/uri"
)

type Error = errorutil.Error

// ErrNoEntry is returned when the requested move has no entry to land on.
const ErrNoEntry Error = "no history entry"

type state string

const (
	stateEmpty    state = "empty"
	stateLatest   state = "latest"
	stateBrowsing state = "browsing"
)

type trigger string

const (
	triggerPush    trigger = "push"
	triggerReplace trigger = "replace"
	triggerBack    trigger = "back"
	triggerForward trigger = "forward"
)

// Option configures a [History].
type Option interface {
	applyHistory(h *History)
}

type withLogger struct {
	log *slog.Logger
}

func (o withLogger) applyHistory(h *History) {
	if o.log != nil {
		h.log = o.log
	}
}

// WithLogger sets the logger for debug messages. Defaults to a noop logger.
func WithLogger(l *slog.Logger) Option { return withLogger{l} }

type withFallback struct {
	loc uri.LocationProvider
}

func (o withFallback) applyHistory(h *History) {
	if o.loc != nil {
		h.fallback = o.loc
	}
}

// WithFallback sets the location reported while the history is empty.
// Defaults to [uri.RootLocation].
func WithFallback(loc uri.LocationProvider) Option { return withFallback{loc} }

type withMaxEntries int

func (o withMaxEntries) applyHistory(h *History) {
	if o > 0 {
		h.max = int(o)
	}
}

// WithMaxEntries limits the number of kept entries, the oldest are dropped first.
// Zero or negative means unlimited.
func WithMaxEntries(n int) Option { return withMaxEntries(n) }

// History is a list of visited locations with a cursor.
//
// Pushing an entry drops all entries after the cursor.
// Moving back and forth only moves the cursor.
// History is not safe for concurrent use.
type History struct {
	entries  []*uri.URL
	idx      int
	max      int
	fallback uri.LocationProvider
	log      *slog.Logger
	sm       *stateless.StateMachine
}

// New creates an empty history.
func New(opts ...Option) *History {
	h := &History{
		idx:      -1,
		fallback: uri.RootLocation,
		log:      log.Noop,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyHistory(h)
		}
	}

	h.initFSM()
	return h
}

func (h *History) initFSM() {
	h.sm = stateless.NewStateMachine(stateEmpty)
	h.sm.SetTriggerParameters(triggerPush, reflect.TypeOf((*uri.URL)(nil)))
	h.sm.SetTriggerParameters(triggerReplace, reflect.TypeOf((*uri.URL)(nil)))

	h.sm.Configure(stateEmpty).
		Permit(triggerPush, stateLatest)
	h.sm.Configure(stateLatest).
		OnEntryFrom(triggerPush, h.actPush).
		OnEntryFrom(triggerForward, h.actForward).
		PermitReentry(triggerPush).
		InternalTransition(triggerReplace, h.actReplace).
		Permit(triggerBack, stateBrowsing, h.hasBack)
	h.sm.Configure(stateBrowsing).
		OnEntryFrom(triggerBack, h.actBack).
		OnEntryFrom(triggerForward, h.actForward).
		Permit(triggerPush, stateLatest).
		InternalTransition(triggerReplace, h.actReplace).
		PermitReentry(triggerBack, h.hasBack).
		PermitDynamic(triggerForward, h.forwardDest)
}

func (h *History) fire(t trigger, args ...any) error {
	ctx := context.Background()
	from := h.sm.MustState()
	if err := h.sm.FireCtx(ctx, t, args...); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrNoEntry, "%s from %s state", t, from))
	}
	h.log.LogAttrs(ctx, slog.LevelDebug, "history changed",
		slog.String("trigger", string(t)),
		slog.Any("from", from),
		slog.Any("to", h.sm.MustState()),
		slog.Int("index", h.idx),
		slog.Int("entries", len(h.entries)),
	)
	return nil
}

func (h *History) actPush(_ context.Context, args ...any) error {
	u := args[0].(*uri.URL) //nolint:forcetypeassert
	h.entries = append(h.entries[:h.idx+1], u)
	h.idx++
	if h.max > 0 && len(h.entries) > h.max {
		n := len(h.entries) - h.max
		clear(h.entries[:n])
		h.entries = h.entries[n:]
		h.idx -= n
	}
	return nil
}

func (h *History) actReplace(_ context.Context, args ...any) error {
	h.entries[h.idx] = args[0].(*uri.URL) //nolint:forcetypeassert
	return nil
}

func (h *History) actBack(context.Context, ...any) error {
	h.idx--
	return nil
}

func (h *History) actForward(context.Context, ...any) error {
	h.idx++
	return nil
}

func (h *History) hasBack(context.Context, ...any) bool { return h.idx > 0 }

func (h *History) forwardDest(context.Context, ...any) (stateless.State, error) {
	if h.idx+2 == len(h.entries) {
		return stateLatest, nil
	}
	return stateBrowsing, nil
}

// Push adds a copy of u after the current entry and makes it current.
// Entries after the current one are dropped.
func (h *History) Push(u *uri.URL) error {
	if u == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil URL"))
	}
	return errtrace.Wrap(h.fire(triggerPush, u.Clone()))
}

// Replace replaces the current entry with a copy of u.
// It fails with [ErrNoEntry] on an empty history.
func (h *History) Replace(u *uri.URL) error {
	if u == nil {
		return errtrace.Wrap(errorutil.NewInvalidArgumentError("nil URL"))
	}
	return errtrace.Wrap(h.fire(triggerReplace, u.Clone()))
}

// Navigate resolves the reference against the current location and pushes the result.
func (h *History) Navigate(ref string) (*uri.URL, error) {
	u := uri.Parse(ref, uri.WithLocation(h), uri.WithResolve(), uri.WithLogger(h.log))
	if err := h.Push(u); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// Back moves the cursor to the previous entry and returns it.
func (h *History) Back() (*uri.URL, error) {
	if err := h.fire(triggerBack); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return h.Current(), nil
}

// Forward moves the cursor to the next entry and returns it.
func (h *History) Forward() (*uri.URL, error) {
	if err := h.fire(triggerForward); err != nil {
		return nil, errtrace.Wrap(err)
	}
	return h.Current(), nil
}

// CanBack reports whether [History.Back] would succeed.
func (h *History) CanBack() bool { return h.idx > 0 }

// CanForward reports whether [History.Forward] would succeed.
func (h *History) CanForward() bool { return h.idx+1 < len(h.entries) }

// Current returns a copy of the current entry or nil if the history is empty.
func (h *History) Current() *uri.URL {
	if h.idx < 0 {
		return nil
	}
	return h.entries[h.idx].Clone()
}

// Index returns the position of the current entry, -1 if the history is empty.
func (h *History) Index() int { return h.idx }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns copies of all entries, oldest first.
func (h *History) Entries() []*uri.URL {
	entries := make([]*uri.URL, len(h.entries))
	for i, u := range h.entries {
		entries[i] = u.Clone()
	}
	return entries
}

// Location implements [uri.LocationProvider].
// It reports the current entry or the fallback location while the history is empty.
func (h *History) Location() string {
	if h.idx < 0 {
		return h.fallback.Location()
	}
	return h.entries[h.idx].String()
}

// String returns the entries one per line, the current one marked with "*".
func (h *History) String() string {
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	for i, u := range h.entries {
		mark := " "
		if i == h.idx {
			mark = "*"
		}
		fmt.Fprintf(sb, "%s%d %s\n", mark, i, u)
	}
	return sb.String()
}
