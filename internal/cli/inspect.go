package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/git-pkgs/pypi/fetch"
	"github.com/git-pkgs/pypi/internal/core"
)

func newInspectCmd(a *app) *cobra.Command {
	var packageType string

	cmd := &cobra.Command{
		Use:   "inspect NAME VERSION",
		Short: "Download a release file, verify it and list its members",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, version := args[0], args[1]

			info, err := fetch.NewResolver(a.index).Resolve(ctx, name, version, packageType)
			if err != nil {
				return err
			}
			a.logger.Info("resolved release file",
				zap.String("filename", info.Filename),
				zap.String("url", info.URL),
				zap.String("integrity", info.Integrity),
			)

			file := core.ReleaseFile{
				Filename: info.Filename,
				URL:      info.URL,
				Digests:  info.Digests,
			}
			members, err := a.index.ReadDistribution(ctx, file)
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(members))
			for path := range members {
				paths = append(paths, path)
			}
			sort.Strings(paths)

			return a.print(cmd.OutOrStdout(), paths, func(w io.Writer) error {
				fmt.Fprintf(w, "%s (%s)\n", info.Filename, info.Integrity)
				for _, p := range paths {
					fmt.Fprintf(w, "  %s\t%d bytes\n", p, len(members[p]))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&packageType, "type", "", `Package type to inspect, e.g. "sdist" or "bdist_wheel" (default: first file)`)
	return cmd
}
