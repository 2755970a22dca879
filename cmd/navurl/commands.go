package main

import (
	"fmt"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/cobra"

	"github.com/ghettovoice/navurl/internal/errorutil"
	"github.com/ghettovoice/navurl/query"
	"github.com/ghettovoice/navurl/uri"
)

func (a *app) parseCmd() *cobra.Command {
	var (
		base    string
		resolve bool
	)
	cmd := &cobra.Command{
		Use:   "parse REF...",
		Short: "Split references into components",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.parseOpts(base, resolve)
			urls := make([]*uri.URL, len(args))
			for i, ref := range args {
				urls[i] = uri.Parse(ref, opts...)
			}
			return errtrace.Wrap(a.printURLs(cmd.OutOrStdout(), urls))
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base reference, the current location by default")
	cmd.Flags().BoolVar(&resolve, "resolve", false, "resolve relative references")
	return cmd
}

func (a *app) resolveCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "resolve REF...",
		Short: "Resolve references against a base",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.parseOpts(base, true)
			urls := make([]*uri.URL, len(args))
			for i, ref := range args {
				urls[i] = uri.Parse(ref, opts...)
			}
			return errtrace.Wrap(a.printURLs(cmd.OutOrStdout(), urls))
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base reference, the current location by default")
	return cmd
}

func (a *app) queryCmd() *cobra.Command {
	var (
		set []string
		del []string
	)
	cmd := &cobra.Command{
		Use:   "query REF",
		Short: "Rewrite query parameters of a reference",
		Long: "Rewrite query parameters of a reference.\n\n" +
			"Parameters are removed with --del before --set is applied.\n" +
			"A --set value without \"=\" binds the key to null, repeated keys make a list.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u := uri.Parse(args[0], a.parseOpts("", false)...)
			params := u.Params()
			for _, k := range del {
				params.Del(k)
			}

			vals := new(query.Values)
			for _, kv := range set {
				k, v, ok := strings.Cut(kv, "=")
				if k == "" {
					return errtrace.Wrap(errorutil.NewInvalidArgumentError("empty key in --set %q", kv))
				}
				if ok {
					vals.Add(k, query.Scalar(v))
				} else {
					vals.Add(k, query.Null())
				}
			}
			for k, v := range vals.All() {
				params.Set(k, v)
			}
			return errtrace.Wrap(a.printURLs(cmd.OutOrStdout(), []*uri.URL{u}))
		},
	}
	cmd.Flags().StringArrayVar(&set, "set", nil, "set a parameter, KEY=VALUE or KEY")
	cmd.Flags().StringArrayVar(&del, "del", nil, "remove a parameter")
	return cmd
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode TEXT...",
		Short: "Percent-encode text as a URI component",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]string, len(args))
			for i, s := range args {
				out[i] = uri.EncodeComponent(s)
			}
			return errtrace.Wrap(a.printStrings(cmd.OutOrStdout(), out))
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode TEXT...",
		Short: "Decode a percent-encoded URI component",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]string, len(args))
			for i, s := range args {
				out[i] = uri.DecodeComponent(s)
			}
			return errtrace.Wrap(a.printStrings(cmd.OutOrStdout(), out))
		},
	}
}

type validationJSON struct {
	Ref   string `json:"ref"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate REF...",
		Short: "Check syntax of references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				w       = cmd.OutOrStdout()
				results = make([]validationJSON, len(args))
				invalid int
			)
			for i, ref := range args {
				results[i] = validationJSON{Ref: ref, Valid: true}
				if err := uri.Parse(ref).Validate(); err != nil {
					results[i].Valid, results[i].Error = false, err.Error()
					invalid++
				}
			}

			if a.jsonOut {
				if err := printJSON(w, results); err != nil {
					return errtrace.Wrap(err)
				}
			} else {
				for _, r := range results {
					status := "ok"
					if !r.Valid {
						status = r.Error
					}
					if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Ref, status); err != nil {
						return errtrace.Wrap(err)
					}
				}
			}

			if invalid > 0 {
				return errtrace.Wrap(errorutil.NewWrapperError(errInvalid, "%d of %d", invalid, len(args)))
			}
			return nil
		},
	}
}
