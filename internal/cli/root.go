package cli

import (
	"errors"
	"os"

	"github.com/crystalmyth/n8n-bmad/internal/agent"
	"github.com/crystalmyth/n8n-bmad/internal/branding"
	"github.com/crystalmyth/n8n-bmad/internal/config"
	"github.com/crystalmyth/n8n-bmad/internal/display"
	"github.com/crystalmyth/n8n-bmad/internal/log"
	"github.com/crystalmyth/n8n-bmad/internal/template"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Global flags.
var (
	configPath string
	verbose    bool
	assumeYes  bool
	dryRun     bool
)

// cfg is loaded once per invocation before any command runs.
var cfg *config.Config

// errValidationFailed signals a failing report that has already been
// printed; Execute exits non-zero without printing it again.
var errValidationFailed = errors.New("validation failed")

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages agent personas, document templates and validation
rules for n8n workflow JSON files.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c

		if err := log.Init(cfg.GetString("logging.level", "info"), verbose); err != nil {
			return err
		}
		log.L().Debug("configuration loaded",
			zap.String("file", cfg.File()),
			zap.String("root", cfg.ProjectRoot()))
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", defaultConfigPath(), "Path to module config file (env "+branding.EnvVar("config")+")")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")
	flags.BoolVar(&dryRun, "dry-run", false, "Show what would happen without writing files")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	log.Sync()
	if err != nil && !errors.Is(err, errValidationFailed) {
		newPrinter(rootCmd).Error("%v", err)
	}
	return err
}

// defaultConfigPath prefers N8N_BMAD_CONFIG over the built-in location.
func defaultConfigPath() string {
	if path := os.Getenv(branding.EnvVar("config")); path != "" {
		return path
	}
	return branding.DefaultConfig()
}

func newPrinter(cmd *cobra.Command) *display.Printer {
	return display.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

func newLoader() *agent.Loader {
	return agent.NewLoader(
		agent.DirSource{Dir: cfg.AgentsPath()},
		agent.NewCache(),
		agent.WithAvailable(cfg.AvailableAgents()),
		agent.WithMaster(cfg.DefaultAgent()),
		agent.WithLogger(log.L()),
	)
}

func newLibrary() *template.Library {
	return template.NewLibrary(cfg.TemplatesPath(), cfg.TemplateCategories())
}
