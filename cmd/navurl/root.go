package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/navurl/internal/errorutil"
	"github.com/ghettovoice/navurl/internal/log"
	"github.com/ghettovoice/navurl/uri"
)

const locationEnv = "NAVURL_LOCATION"

// errInvalid is returned when at least one reference fails validation.
const errInvalid errorutil.Error = "invalid references"

type app struct {
	getenv  func(string) string
	jsonOut bool
	dev     bool
	verbose bool
	redact  bool
	log     *slog.Logger
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv, log: log.Noop}

	cmd := &cobra.Command{
		Use:   "navurl",
		Short: "Parse, resolve and rewrite location references",
		Long: "Parse, resolve and rewrite location references.\n\n" +
			"Printed URLs keep passwords as given so they can be reused, --redact masks them.\n" +
			"Logs always mask passwords.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = log.New(cmd.ErrOrStderr(), a.dev, level)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&a.jsonOut, "json", false, "print results as JSON")
	flags.BoolVar(&a.dev, "dev", false, "use the developer log format")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	flags.BoolVar(&a.redact, "redact", false, "mask passwords in printed URLs")

	cmd.AddCommand(
		a.parseCmd(),
		a.resolveCmd(),
		a.queryCmd(),
		a.encodeCmd(),
		a.decodeCmd(),
		a.validateCmd(),
	)
	return cmd
}

// location returns the provider relative references are resolved against.
func (a *app) location() uri.LocationProvider {
	if loc := a.getenv(locationEnv); loc != "" {
		return uri.StaticLocation(loc)
	}
	return uri.WorkingDirLocation()
}

func (a *app) parseOpts(base string, resolve bool) []uri.ParseOption {
	opts := []uri.ParseOption{uri.WithLocation(a.location()), uri.WithLogger(a.log)}
	if base != "" {
		opts = append(opts, uri.WithBase(base))
	}
	if resolve {
		opts = append(opts, uri.WithResolve())
	}
	return opts
}

// printURLs writes one URL per line, or a JSON array of URL components.
func (a *app) printURLs(w io.Writer, urls []*uri.URL) error {
	if a.redact {
		urls = redactURLs(urls)
	}
	if a.jsonOut {
		out := make([]urlJSON, len(urls))
		for i, u := range urls {
			out[i] = newURLJSON(u)
		}
		return errtrace.Wrap(printJSON(w, out))
	}
	for _, u := range urls {
		if _, err := fmt.Fprintln(w, u.String()); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

// printStrings writes one string per line, or a JSON array of strings.
func (a *app) printStrings(w io.Writer, ss []string) error {
	if a.jsonOut {
		return errtrace.Wrap(printJSON(w, ss))
	}
	for _, s := range ss {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return errtrace.Wrap(err)
		}
	}
	return nil
}

func redactURLs(urls []*uri.URL) []*uri.URL {
	out := make([]*uri.URL, len(urls))
	for i, u := range urls {
		if u.Pass == "" {
			out[i] = u
			continue
		}
		out[i] = u.Clone()
		out[i].Pass = log.Masked
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errtrace.Wrap(enc.Encode(v))
}
