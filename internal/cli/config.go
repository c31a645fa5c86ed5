package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Display the effective configuration.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (RADAR_DATABASE_DSN, RADAR_LLM_MODEL,
   ANTHROPIC_API_KEY, OPENAI_API_KEY)
3. Config file keys database_dsn and llm_model (~/.radar/config.yaml)
4. Defaults

Everything else (HTTP, cache, concurrency) uses the built-in defaults,
adjustable per run with the run command's flags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig()

		if configFile := viper.ConfigFileUsed(); configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(data))

		fmt.Printf("\nllm credentials: anthropic=%v openai=%v\n",
			cfg.LLM.AnthropicAPIKey != "", cfg.LLM.OpenAIAPIKey != "")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
