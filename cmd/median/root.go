package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediancode/apidesign/store"
)

var rootCmd = &cobra.Command{
	Use:   "median",
	Short: "Median - REST API schema workspace management",
	Long: `Median manages a REST API schema workspace: fields, tags, objects,
endpoints, and the metadata handed to the code generator.

The workspace lives in a single JSON file. Use --workspace to point at it,
or set MEDIAN_WORKSPACE.

Examples:
  # List fields in the active namespace
  median --workspace api.json fields list

  # Create an endpoint; path parameters are derived from the path
  median --workspace api.json endpoints create GET /users/{id}

  # Export the code-generation payload
  median --workspace api.json export > generate.json`,
	SilenceUsage: true,
}

var (
	workspacePath string
	format        string
	namespaceName string
	verbose       bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&workspacePath, "workspace", "w", "median.json", "Workspace file path")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "Output format: table|json|yaml")
	rootCmd.PersistentFlags().StringVarP(&namespaceName, "namespace", "n", "", "Namespace to operate in (default: active)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	viper.SetEnvPrefix("MEDIAN")
	viper.AutomaticEnv()
	for _, flag := range []string{"workspace", "format", "namespace"} {
		_ = viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag))
	}

	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(endpointsCmd)
	rootCmd.AddCommand(namespacesCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(exportCmd)
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// loadContext builds the workspace context and loads the workspace file.
// Flag values are read back through viper so MEDIAN_* environment variables
// and config files participate.
func loadContext() (*store.Context, error) {
	workspacePath = viper.GetString("workspace")
	format = viper.GetString("format")
	namespaceName = viper.GetString("namespace")

	ctx := store.NewContext(store.WithLogger(newLogger()))
	if err := ctx.LoadWorkspace(workspacePath); err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}
	return ctx, nil
}

// save persists the workspace after a mutating command.
func save(ctx *store.Context) error {
	if err := ctx.SaveWorkspace(workspacePath); err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	return nil
}

// resolveNamespace maps the --namespace flag to a namespace ID, defaulting
// to the active namespace.
func resolveNamespace(ctx *store.Context) (string, error) {
	if namespaceName == "" {
		return ctx.Namespaces.Active().ID, nil
	}
	for _, ns := range ctx.Namespaces.All() {
		if ns.Name == namespaceName || ns.ID == namespaceName {
			return ns.ID, nil
		}
	}
	return "", fmt.Errorf("namespace not found: %s", namespaceName)
}
