package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cmsforge/cmsforge/internal/config"
	"github.com/cmsforge/cmsforge/internal/watcher"
)

var watchDebounce time.Duration

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch <request.yml>",
	Short: "Regenerate whenever the request file changes",
	Long: `Watch a request file and re-run generation after every change, with
debouncing so rapid editor saves produce a single run.

Examples:
  cmsforge watch module.yml
  cmsforge watch module.yml --debounce 500ms`,
	Args: cobra.ExactArgs(1),
	RunE: runWatchCommand,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 300*time.Millisecond, "Delay before regenerating after a change")
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)
	requestPath := args[0]

	regenerate := func() error {
		files, err := generateFiles(cmd, requestPath, cfg, logger)
		if err != nil {
			// Watch mode keeps running across bad intermediate states; the
			// error is reported and the next save gets a fresh attempt.
			fmt.Fprintf(cmd.ErrOrStderr(), "generation failed: %v\n", err)
			return nil
		}
		outputDir := generateOutput
		if outputDir == "" {
			outputDir = cfg.Output.Dir
		}
		for _, f := range files {
			target := filepath.Join(outputDir, filepath.FromSlash(f.Path))
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return err
			}
			if err := os.WriteFile(target, f.Content, 0644); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "regenerated %d files\n", len(files))
		return nil
	}

	// Generate once up front so the watch starts from a consistent state.
	if err := regenerate(); err != nil {
		return err
	}

	fw, err := watcher.NewFileWatcher(requestPath, watchDebounce, regenerate, logger)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = fw.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s\n", requestPath)
	return fw.Start(cmd.Context())
}
