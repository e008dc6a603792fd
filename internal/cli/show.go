package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/pypi/internal/core"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME [VERSION]",
		Short: "Show a package's description",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version := nameVersion(args)
			desc, err := a.index.FetchDescription(cmd.Context(), name, version)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), desc, func(w io.Writer) error {
				return writeDescription(w, desc)
			})
		},
	}
}

func nameVersion(args []string) (string, string) {
	if len(args) == 2 {
		return args[0], args[1]
	}
	return args[0], ""
}

func writeDescription(w io.Writer, desc *core.PackageDescription) error {
	info := desc.Info
	fmt.Fprintf(w, "%s %s\n", info.Name, info.Version)
	if info.Summary != "" {
		fmt.Fprintf(w, "  %s\n", info.Summary)
	}
	fmt.Fprintf(w, "normalized:  %s\n", info.NormalizedName())
	fmt.Fprintf(w, "purl:        %s\n", core.NewPURL(info.Name, info.Version))
	if license := info.LicenseName(); license != "" {
		fmt.Fprintf(w, "license:     %s\n", license)
	}
	if home := info.Homepage(); home != "" {
		fmt.Fprintf(w, "homepage:    %s\n", home)
	}
	if repo := info.Repository(); repo != "" {
		fmt.Fprintf(w, "repository:  %s\n", repo)
	}
	fmt.Fprintf(w, "python:      %s\n", stringOr(info.RequiresPython, "any"))
	if keywords := info.KeywordList(); len(keywords) > 0 {
		fmt.Fprintf(w, "keywords:    %s\n", strings.Join(keywords, ", "))
	}
	if info.ProvidesExtra != nil {
		fmt.Fprintf(w, "extras:      %s\n", strings.Join(info.ProvidesExtra, ", "))
	}
	if info.Yanked {
		fmt.Fprintf(w, "yanked:      %s\n", stringOr(info.YankedReason, "no reason given"))
	}
	fmt.Fprintf(w, "serial:      %d\n", desc.LastSerial)

	if deps := info.Dependencies(); len(deps) > 0 {
		fmt.Fprintln(w, "requires:")
		for _, d := range deps {
			if d.Optional {
				fmt.Fprintf(w, "  %s %s (%s)\n", d.Name, d.Requirements, d.Scope)
			} else {
				fmt.Fprintf(w, "  %s %s\n", d.Name, d.Requirements)
			}
		}
	}

	if vulns := desc.ActiveVulnerabilities(); len(vulns) > 0 {
		fmt.Fprintln(w, "vulnerabilities:")
		for _, v := range vulns {
			fmt.Fprintf(w, "  %s %s fixed in %s\n", v.ID, v.Link, strings.Join(v.FixedIn, ", "))
		}
	}
	return nil
}
