package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cmsforge/cmsforge/internal/collector"
	"github.com/cmsforge/cmsforge/internal/config"
	"github.com/cmsforge/cmsforge/internal/emit"
	"github.com/cmsforge/cmsforge/internal/framework"
	"github.com/cmsforge/cmsforge/internal/generator"
	"github.com/cmsforge/cmsforge/internal/logging"
	"github.com/cmsforge/cmsforge/internal/request"
)

var (
	generateOutput string
	generateDryRun bool
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:   "generate <request.yml>",
	Short: "Generate extension source files from a request",
	Long: `Resolve a component request into a component graph and emit the source
files for it: info YAML, class stubs, services, permissions, routing, and
configuration schemas.

Examples:
  cmsforge generate module.yml                # Write files under the output dir
  cmsforge generate module.yml --output ./gen # Output to a specific directory
  cmsforge generate module.yml --dry-run      # List files without writing`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerateCommand,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().
		StringVarP(&generateOutput, "output", "o", "", "Output directory (default: current directory)")
	generateCmd.Flags().
		BoolVar(&generateDryRun, "dry-run", false, "Resolve and render but do not write files")
}

func runGenerateCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := newLogger(cfg)

	files, err := generateFiles(cmd, args[0], cfg, logger)
	if err != nil {
		return err
	}

	outputDir := generateOutput
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	dryRun := generateDryRun || cfg.Output.DryRun

	for _, f := range files {
		if dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "would write %s (%d bytes)\n", f.Path, len(f.Content))
			continue
		}
		target := filepath.Join(outputDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(target, f.Content, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
	}

	return nil
}

// generateFiles runs the whole pipeline for one request file: catalog,
// registry, collection, emission.
func generateFiles(cmd *cobra.Command, requestPath string, cfg *config.Config, logger logging.Logger) ([]emit.File, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	registry := generator.NewDefaultRegistry(catalog)

	root, err := request.Load(requestPath, registry)
	if err != nil {
		return nil, err
	}

	coll := collector.New(registry, &collector.Options{
		MaxDepth: cfg.Collector.MaxDepth,
		Logger:   logger,
	})
	result, err := coll.Collect(cmd.Context(), root)
	if err != nil {
		return nil, err
	}
	logger.Info(cmd.Context(), "request resolved", "components", result.Len())

	return emit.NewPipeline(catalog).Run(result)
}

func loadCatalog(cfg *config.Config) (*framework.Catalog, error) {
	if cfg.Framework.Catalog == "" {
		return framework.Default(), nil
	}
	return framework.Load(cfg.Framework.Catalog)
}
