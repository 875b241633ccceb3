package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/a11ysutra/a11ysutra-cli/internal/errors"
	"github.com/a11ysutra/a11ysutra-cli/internal/history"
	"github.com/a11ysutra/a11ysutra-cli/internal/output"
	"github.com/a11ysutra/a11ysutra-cli/pkg/sutra"
)

var historyWatch bool

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "Browse your audit history",
	Long:  `Lists your stored audits, newest first. An optional query filters by URL substring. With --watch, the command reads query text from stdin line by line and re-searches as you type, coalescing rapid input into a single request.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		if historyWatch {
			return watchHistory(query)
		}

		// Profile and audit list load in parallel; the greeting is
		// cosmetic, so a profile failure does not block the listing.
		var (
			user  *sutra.User
			items []sutra.AuditListItem
		)
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			u, err := apiClient.Me(ctx)
			if err == nil {
				user = u
			}
			return nil
		})
		g.Go(func() error {
			var err error
			items, err = apiClient.ListAudits(ctx, query)
			return err
		})
		if err := g.Wait(); err != nil {
			if apperrors.IsAuthError(err) {
				return fmt.Errorf("session expired - run 'a11ysutra login' again")
			}
			return err
		}

		if user != nil && user.Name != "" {
			ui.Info("Audit history for %s", user.Name)
		}
		printAuditTable(items, query)
		return nil
	},
}

func init() {
	historyCmd.Flags().BoolVar(&historyWatch, "watch", false, "Read queries from stdin and re-search as you type")
}

// watchHistory runs an interactive search loop. Each stdin line becomes
// query input; responses for superseded queries are discarded so the
// listing always matches the latest line entered.
func watchHistory(initial string) error {
	searcher := history.NewSearcher(0, apiClient.ListAudits,
		func(query string, items []sutra.AuditListItem, err error) {
			if err != nil {
				ui.Error("search %q: %v", query, err)
				return
			}
			printAuditTable(items, query)
		})

	ui.Info("Type to filter your audit history (Ctrl-D to exit).")
	searcher.Input(initial)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		searcher.Input(scanner.Text())
	}
	searcher.Flush()
	searcher.Wait()
	return scanner.Err()
}

func printAuditTable(items []sutra.AuditListItem, query string) {
	if len(items) == 0 {
		if query != "" {
			ui.Info("No audits match %q.", query)
		} else {
			ui.Info("No audits yet. Run 'a11ysutra audit <url>' to get started.")
		}
		return
	}

	table := ui.Table([]string{"ID", "URL", "ISSUES", "SOURCE", "AUDITED"})
	for _, item := range items {
		source := "Fresh Scan"
		if item.Cached {
			source = output.Yellow("Cached")
		}
		table.Append([]string{
			item.ID,
			item.URL,
			output.IssueCountColor(item.TotalIssues),
			source,
			formatAuditTime(item.CreatedAt),
		})
	}
	table.Render()
	ui.Info("\n%d audit(s). View one with 'a11ysutra report <id>'.", len(items))
}

// formatAuditTime renders a backend UTC timestamp in Indian Standard Time
// as dd/mm/yy at hh:mm:ss AM/PM. Unparseable values pass through as-is.
func formatAuditTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	ist := t.UTC().Add(5*time.Hour + 30*time.Minute)
	return ist.Format("02/01/06 at 03:04:05 PM")
}
