package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/draftwise/draftwise/core"
	"github.com/draftwise/draftwise/library"
)

var listCmd = &cobra.Command{
	Use:   "list [style|creators]",
	Short: "List stored library entries",
	Long: `list shows what the memory banks hold. With no argument both banks are
shown; "style" or "creators" narrows to one. Creator clips are grouped
per creator.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		which := "all"
		if len(args) == 1 {
			which = args[0]
		}
		if which != "all" && which != string(core.CollectionStyle) && which != string(core.CollectionCreators) {
			return fmt.Errorf("unknown collection %q (want style or creators)", which)
		}

		lib, err := openLibrary(nil)
		if err != nil {
			return err
		}
		defer lib.Close()

		if which == "all" || which == string(core.CollectionStyle) {
			entries, err := lib.ListStyle(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("My Style Library (%d entries)\n", len(entries))
			for _, e := range entries {
				printEntry(e)
			}
			if which == "all" {
				fmt.Println()
			}
		}

		if which == "all" || which == string(core.CollectionCreators) {
			entries, err := lib.ListCreators(cmd.Context())
			if err != nil {
				return err
			}
			names, groups := library.GroupByCreator(entries)
			fmt.Printf("Favorite Creators (%d clips from %d creators)\n", len(entries), len(names))
			for _, name := range names {
				fmt.Printf("  %s (%d clips)\n", name, len(groups[name]))
				for _, e := range groups[name] {
					printEntry(e)
				}
			}
		}
		return nil
	},
}

func printEntry(e core.Entry) {
	fmt.Printf("    %s  %s  %q", e.ID, e.CreatedAt.Format("2006-01-02"), e.Title)
	if e.Notes != "" {
		fmt.Printf("  (%s)", e.Notes)
	}
	fmt.Printf("  [%s]\n", preview(e.Body, 60))
}

func preview(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func init() {
	rootCmd.AddCommand(listCmd)
}
