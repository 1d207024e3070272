package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmsforge/cmsforge/internal/config"
	"github.com/cmsforge/cmsforge/internal/generator"
)

var listFormat = newEnumValue("text", "text", "json")

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list [component-type]",
	Short: "List known component types and their properties",
	Long: `List the component types a request may use. With a component type
argument, list that type's request properties instead.

Examples:
  cmsforge list                 # All component types
  cmsforge list plugin          # Properties of the plugin type
  cmsforge list --format json   # Machine-readable output`,
	Args: cobra.MaximumNArgs(1),
	RunE: runListCommand,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().VarP(listFormat, "format", "f", "Output format (text, json)")
}

type propertyListing struct {
	Name          string `json:"name"`
	Type          string `json:"type"`
	Multiple      bool   `json:"multiple,omitempty"`
	Required      bool   `json:"required,omitempty"`
	ComponentType string `json:"component_type,omitempty"`
}

func runListCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	registry := generator.NewDefaultRegistry(catalog)

	if len(args) == 0 {
		return listTypes(cmd, registry)
	}
	return listProperties(cmd, registry, args[0])
}

func listTypes(cmd *cobra.Command, registry *generator.Registry) error {
	types := registry.Types()
	if listFormat.String() == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(types)
	}
	for _, t := range types {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}

func listProperties(cmd *cobra.Command, registry *generator.Registry, componentType string) error {
	rootDef, err := registry.RootDefinition(componentType)
	if err != nil {
		return err
	}

	listings := make([]propertyListing, 0, len(rootDef.Properties))
	for _, pd := range rootDef.Properties {
		listings = append(listings, propertyListing{
			Name:          pd.Name,
			Type:          pd.Type.String(),
			Multiple:      pd.Multiple,
			Required:      pd.Required,
			ComponentType: pd.ComponentType,
		})
	}

	if listFormat.String() == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(listings)
	}
	for _, l := range listings {
		line := l.Name + " (" + l.Type
		if l.Multiple {
			line += ", multiple"
		}
		if l.Required {
			line += ", required"
		}
		line += ")"
		if l.ComponentType != "" {
			line += " -> " + l.ComponentType
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
