package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/talon/internal/config"
)

var (
	// Global flags
	serverName    string // Named server from config
	serverURLFlag string
	tokenFlag     string
	parentFlag    string
	configPath    string

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tln",
	Short: "Talon - push markdown trees into Trilium",
	Long: `Talon migrates a directory of markdown files into Trilium notes over ETAPI.

Folders become container notes, documents become text notes, [[wikilinks]]
become reference links once every target exists, and frontmatter tags become
labels. References to documents that don't exist anywhere in the tree get
placeholder notes under an Orphans container.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that don't need config
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		path := configPath
		if path == "" {
			var err error
			path, err = config.DefaultConfigPath()
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	SilenceUsage: true,
}

// resolveServer produces the effective server settings from config, env,
// and flags, and validates the pieces a remote command needs.
func resolveServer() (config.Server, error) {
	server, err := cfg.Resolve(serverName, serverURLFlag, tokenFlag, parentFlag)
	if err != nil {
		return config.Server{}, err
	}
	if server.URL == "" {
		return config.Server{}, fmt.Errorf(`no server URL specified

Either:
  1. Use --server <name> (from config)
  2. Use --url http://localhost:8080
  3. Set %s
  4. Set default_server in the config file`, config.EnvServerURL)
	}
	if server.Token == "" {
		return config.Server{}, fmt.Errorf("no ETAPI token specified\n\nUse --token, set %s, or add it to the config file", config.EnvToken)
	}
	return server, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverName, "server", "", "Named server from config")
	rootCmd.PersistentFlags().StringVar(&serverURLFlag, "url", "", "Trilium server URL")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "ETAPI authentication token")
	rootCmd.PersistentFlags().StringVar(&parentFlag, "parent", "", "Parent note ID for created notes (default: root)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.SetOut(os.Stdout)
}
