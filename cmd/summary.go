package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"changeview/diff"
	"changeview/eventlog"
	"changeview/review"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [task-log]",
	Short: "Print a plain-text review of a recorded task log",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		snapshot, err := eventlog.LoadTaskLog(args[0])
		if err != nil {
			fmt.Printf("Error loading task log: %v\n", err)
			return
		}

		records := review.Aggregate(snapshot.Events)
		if len(records) == 0 {
			// An empty task log has nothing to review
			return
		}

		newFiles, edited := review.Buckets(records)
		if len(newFiles) > 0 {
			fmt.Printf("New Files (%d)\n", len(newFiles))
			for _, rec := range newFiles {
				fmt.Printf("  + %s\n", rec.FilePath)
			}
		}
		if len(edited) > 0 {
			if len(newFiles) > 0 {
				fmt.Println()
			}
			fmt.Printf("Edited Files (%d)\n", len(edited))
			for _, rec := range edited {
				fmt.Printf("  ~ %s\n", rec.FilePath)
				if !rec.CanDiff() {
					fmt.Println("        (no diff available)")
					continue
				}
				for _, line := range diff.Render(*rec.FirstOriginalContent, *rec.LastNewContent) {
					fmt.Printf("    %s\n", formatPlainLine(line))
				}
			}
		}
	},
}

// formatPlainLine renders one diff line without colors: old number, new
// number, change marker, content.
func formatPlainLine(line diff.Line) string {
	switch line.Type {
	case diff.LineAdded:
		return fmt.Sprintf("%4s %4d + %s", "", line.NewLine, line.Content)
	case diff.LineRemoved:
		return fmt.Sprintf("%4d %4s - %s", line.OldLine, "", line.Content)
	default:
		if line.IsMarker() {
			return fmt.Sprintf("%4s %4s   %s", "", "", line.Content)
		}
		return fmt.Sprintf("%4d %4d   %s", line.OldLine, line.NewLine, line.Content)
	}
}
