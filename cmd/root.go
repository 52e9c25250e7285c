package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"changeview/config"
	"changeview/eventlog"
	"changeview/tui"
)

var noWatch bool

var rootCmd = &cobra.Command{
	Use:   "changeview [task-log]",
	Short: "Changeview reviews the file changes an AI coding agent made during a task",
	Long: `Changeview is the review panel of an AI coding assistant.
It reads the file-operation log recorded for a task, collapses repeated
operations into one verdict per file (new or edited), and shows a
context-compressed before/after diff for every edited file.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logPath := args[0]

		cfg, err := config.LoadConfig(".")
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if noWatch {
			cfg.Watch = false
		}

		snapshot, err := eventlog.LoadTaskLog(logPath)
		if err != nil {
			fmt.Printf("Error loading task log: %v\n", err)
			os.Exit(1)
		}

		if err := tui.StartReview(snapshot, logPath, cfg, openInEditor); err != nil {
			fmt.Printf("Error starting review panel: %v\n", err)
			os.Exit(1)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not refresh the panel while the task log grows")

	// Add subcommands
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(configCmd)
}

// openInEditor hands a file path to the user's editor, standing in for the
// host application's file-open integration.
func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set")
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
