package cli

import (
	"fmt"
	"strings"

	"github.com/crystalmyth/n8n-bmad/internal/config"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func init() {
	configCmd.AddCommand(configGetCmd, configValidateCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the module configuration",
	Example: `  n8n-bmad config get agents.default_agent
  n8n-bmad config get options.naming_convention.default
  n8n-bmad config validate
  n8n-bmad config path`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a configuration value by dotted path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := cfg.GetValue(args[0], nil)
		if value == nil {
			return fmt.Errorf("configuration key not found: %s", args[0])
		}
		value = config.ResolveEnvVars(value)

		out := cmd.OutOrStdout()
		switch v := value.(type) {
		case map[string]any, []any, []string:
			data, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", args[0], err)
			}
			fmt.Fprint(out, string(data))
		default:
			fmt.Fprintln(out, v)
		}
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for missing sections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)

		if errs := cfg.Validate(); len(errs) > 0 {
			for _, e := range errs {
				p.Error("%s", e)
			}
			return errValidationFailed
		}

		p.Success("Configuration is valid")
		p.KeyValue("Agents", fmt.Sprint(len(cfg.AvailableAgents())))
		p.KeyValue("Default agent", cfg.DefaultAgent())
		p.KeyValue("Template categories", strings.Join(cfg.TemplateCategories(), ", "))
		p.KeyValue("Pattern categories", strings.Join(cfg.PatternCategories(), ", "))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show resolved configuration paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)

		file := cfg.File()
		if file == "" {
			file = "(defaults)"
		}
		p.KeyValue("Config file", file)
		p.KeyValue("Project root", cfg.ProjectRoot())
		p.KeyValue("Agents", cfg.AgentsPath())
		p.KeyValue("Templates", cfg.TemplatesPath())
		p.KeyValue("n8n instance", cfg.N8nURL())
		return nil
	},
}
