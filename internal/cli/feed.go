package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/git-pkgs/pypi/internal/core"
)

func newFeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "feed [new|updates|all]",
		Short:     "List entries of the index's RSS feeds",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"new", "updates", "all"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "updates"
			if len(args) == 1 {
				which = args[0]
			}

			entries, err := a.fetchFeeds(cmd.Context(), which)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), entries, func(w io.Writer) error {
				return writeEntries(w, entries)
			})
		},
	}

	return cmd
}

func (a *app) fetchFeeds(ctx context.Context, which string) ([]core.FeedEntry, error) {
	switch which {
	case "new":
		return a.index.NewestPackages(ctx)
	case "updates":
		return a.index.PackageUpdates(ctx)
	}

	var newest, updates []core.FeedEntry
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		newest, err = a.index.NewestPackages(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		updates, err = a.index.PackageUpdates(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.logger.Debug("fetched feeds", zap.Int("new", len(newest)), zap.Int("updates", len(updates)))
	return append(newest, updates...), nil
}

func writeEntries(w io.Writer, entries []core.FeedEntry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.PublicationDate.Format(time.RFC3339),
			e.Title,
			stringOr(e.Version, "(new)"),
			e.Link,
		)
	}
	return tw.Flush()
}
