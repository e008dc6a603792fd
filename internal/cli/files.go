package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/pypi/internal/core"
	"github.com/git-pkgs/pypi/internal/view"
)

func newFilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "files NAME [VERSION]",
		Short: "List the files of a release",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, version := nameVersion(args)
			desc, err := a.index.FetchDescription(cmd.Context(), name, version)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), view.Project(desc), func(w io.Writer) error {
				return writeFiles(w, desc.Files)
			})
		},
	}
}

func writeFiles(w io.Writer, files []core.ReleaseFile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, f := range files {
		yanked := ""
		if f.Yanked {
			yanked = "yanked"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			f.Filename,
			f.PackageType,
			f.Size,
			f.UploadTimePrecise.Format(time.RFC3339),
			f.Digests.Integrity(),
			yanked,
		)
	}
	return tw.Flush()
}
