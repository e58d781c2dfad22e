// Command urlinspect parses a URL and prints its components, or sorts and
// rewrites its query string, or applies a canonicalization profile.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kitten/whatwg-url-minimum/whatwgurl"
)

var log = logrus.New()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("urlinspect failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "urlinspect",
		Short:         "Parse, inspect, and canonicalize WHATWG URLs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newParseCmd(), newSortCmd(), newCanonicalizeCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "parse <url>",
		Short: "Parse a URL and print its components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			log.WithFields(logrus.Fields{"input": input, "base": base}).Debug("parsing")

			u, err := parseWithOptionalBase(input, base)
			if err != nil {
				return errors.Wrap(err, "parse")
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "href:     %s\n", u.Href())
			fmt.Fprintf(w, "protocol: %s\n", u.Protocol())
			fmt.Fprintf(w, "username: %s\n", u.Username())
			fmt.Fprintf(w, "password: %s\n", u.Password())
			fmt.Fprintf(w, "host:     %s\n", u.Host())
			fmt.Fprintf(w, "hostname: %s\n", u.Hostname())
			fmt.Fprintf(w, "port:     %s\n", u.Port())
			fmt.Fprintf(w, "pathname: %s\n", u.Pathname())
			fmt.Fprintf(w, "search:   %s\n", u.Search())
			fmt.Fprintf(w, "hash:     %s\n", u.Hash())
			fmt.Fprintf(w, "origin:   %s\n", u.Origin())
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base URL to resolve against")
	return cmd
}

func newSortCmd() *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "sort-query <url>",
		Short: "Sort a URL's query parameters by name and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := parseWithOptionalBase(args[0], base)
			if err != nil {
				return errors.Wrap(err, "parse")
			}
			u.SearchParams().Sort()
			fmt.Fprintln(cmd.OutOrStdout(), u.Href())
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base URL to resolve against")
	return cmd
}

func newCanonicalizeCmd() *cobra.Command {
	var (
		removeUserInfo bool
		removePort     bool
		removeFragment bool
		sortQuery      bool
		defaultScheme  string
	)
	cmd := &cobra.Command{
		Use:   "canonicalize <url>",
		Short: "Canonicalize a URL under a configurable profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []whatwgurl.CanonOption
			if removeUserInfo {
				opts = append(opts, whatwgurl.WithRemoveUserInfo())
			}
			if removePort {
				opts = append(opts, whatwgurl.WithRemovePort())
			}
			if removeFragment {
				opts = append(opts, whatwgurl.WithRemoveFragment())
			}
			if sortQuery {
				opts = append(opts, whatwgurl.WithSortQuery(whatwgurl.SortKeys))
			}
			if defaultScheme != "" {
				opts = append(opts, whatwgurl.WithDefaultScheme(defaultScheme))
			}
			profile := whatwgurl.NewCanonProfile(opts...)
			fmt.Fprintln(cmd.OutOrStdout(), profile.Canonicalize(args[0]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&removeUserInfo, "remove-userinfo", false, "strip username and password")
	cmd.Flags().BoolVar(&removePort, "remove-port", false, "strip the port")
	cmd.Flags().BoolVar(&removeFragment, "remove-fragment", false, "strip the fragment")
	cmd.Flags().BoolVar(&sortQuery, "sort-query", false, "sort query parameters by name")
	cmd.Flags().StringVar(&defaultScheme, "default-scheme", "", "scheme to prepend when input has none")
	return cmd
}

func parseWithOptionalBase(input, base string) (*whatwgurl.URL, error) {
	if base == "" {
		return whatwgurl.New(input)
	}
	return whatwgurl.NewWithBase(input, base)
}
