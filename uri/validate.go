package uri

import (
	"net/netip"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/navurl/internal/errorutil"
	"github.com/ghettovoice/navurl/internal/grammar"
)

type Error = errorutil.Error

const (
	// ErrInvalidURL wraps every error returned by [URL.Validate].
	ErrInvalidURL Error = "invalid URL"
	// ErrMissingHost is returned for a hierarchical protocol without host.
	ErrMissingHost Error = "missing host"

	ErrInvalidScheme = grammar.ErrInvalidScheme
	ErrInvalidHost   = grammar.ErrInvalidHost
	ErrInvalidPort   = grammar.ErrInvalidPort
)

// Validate checks syntax of the URL components.
//
// It is an opt-in layer on top of the permissive [Parse]: the protocol must be a valid
// scheme name, the host a domain name or an IP literal, the port a number in 1..65535,
// and protocols with a registered default port (see [DefaultPort]) require a host.
// All found problems are reported at once, wrapped with [ErrInvalidURL].
func (u *URL) Validate() error {
	if u == nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURL, "nil URL"))
	}

	var errs []error
	if u.Protocol != "" && !grammar.IsSchemeName(u.Protocol) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidScheme, "%q", u.Protocol))
	}
	if u.Host != "" && !isValidHost(u.Host) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidHost, "%q", u.Host))
	}
	if u.Port != "" && !isValidPort(u.Port) {
		errs = append(errs, errorutil.NewWrapperError(ErrInvalidPort, "%q", u.Port))
	}
	if _, ok := DefaultPort(u.Protocol); ok && u.Host == "" {
		errs = append(errs, errorutil.NewWrapperError(ErrMissingHost, "protocol %q", u.Protocol))
	}

	if err := errorutil.Join(errs...); err != nil {
		return errtrace.Wrap(errorutil.NewWrapperError(ErrInvalidURL, err))
	}
	return nil
}

// IsValid checks whether the URL passes [URL.Validate].
func (u *URL) IsValid() bool { return u.Validate() == nil }

func isValidHost(host string) bool {
	if h, ok := strings.CutPrefix(host, "["); ok {
		h, ok = strings.CutSuffix(h, "]")
		if !ok {
			return false
		}
		addr, err := netip.ParseAddr(h)
		return err == nil && addr.Is6()
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return true
	}
	if strings.ContainsFunc(host, func(r rune) bool { return r <= ' ' || strings.ContainsRune(`/?#@:[]\`, r) }) {
		return false
	}
	_, ok := dns.IsDomainName(host)
	return ok
}

func isValidPort(port string) bool {
	if !grammar.IsPort(port) {
		return false
	}
	n, err := strconv.ParseUint(port, 10, 16)
	return err == nil && n > 0
}
