package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/crystalmyth/n8n-bmad/internal/agent"
	"github.com/crystalmyth/n8n-bmad/internal/branding"
	"github.com/crystalmyth/n8n-bmad/internal/display"
	"github.com/spf13/cobra"
)

const welcomeLines = 10

var (
	agentListFormat string
	agentListFilter string
	agentDetailed   bool
	agentJSON       bool
)

func init() {
	agentListCmd.Flags().StringVarP(&agentListFormat, "format", "f", "table", "Output format (table, json, simple)")
	agentListCmd.Flags().StringVar(&agentListFilter, "filter", "", "Filter agents by keyword")

	agentLoadCmd.Flags().BoolVarP(&agentDetailed, "detailed", "d", false, "Show detailed agent information")
	agentLoadCmd.Flags().BoolVar(&agentJSON, "json", false, "Output as JSON")

	agentCmd.AddCommand(agentListCmd, agentLoadCmd, agentMenuCmd, agentRouteCmd, agentInfoCmd, agentValidateCmd)
	rootCmd.AddCommand(agentCmd)
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Manage and interact with agent personas",
	Example: `  n8n-bmad agent list
  n8n-bmad agent list --filter api
  n8n-bmad agent load developer
  n8n-bmad agent menu
  n8n-bmad agent route "build webhook"
  n8n-bmad agent info architect`,
}

var agentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available agents",
	Args:  cobra.NoArgs,
	RunE:  runAgentList,
}

func runAgentList(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)
	loader := newLoader()

	var entries []agent.ListEntry
	if agentListFilter != "" {
		for _, a := range loader.FindByExpertise(agentListFilter) {
			entries = append(entries, agent.Entry(a))
		}
	} else {
		entries = loader.List()
	}

	if len(entries) == 0 {
		p.Warning("No agents found")
		return nil
	}

	out := p.Out()
	switch agentListFormat {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling agents: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "simple":
		for _, e := range entries {
			status := display.Good("[OK]")
			if e.Error {
				status = display.Bad("[ERR]")
			}
			fmt.Fprintf(out, "%s %-15s %s\n", status, e.ID, e.Name)
		}
	default:
		p.Header("Available Agents")
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tROLE\tSTATUS")
		for _, e := range entries {
			status := display.Good("OK")
			if e.Error {
				status = display.Caution("Error")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, e.Name, e.Role, status)
		}
		w.Flush()
		p.Info("%d of %d configured agents shown. Use \"%s agent load <id>\" to load one",
			len(entries), len(loader.Available()), branding.CLIName())
	}
	return nil
}

var agentLoadCmd = &cobra.Command{
	Use:   "load <agent-id>",
	Short: "Load an agent persona",
	Args:  cobra.ExactArgs(1),
	RunE:  runAgentLoad,
}

func runAgentLoad(cmd *cobra.Command, args []string) error {
	id := args[0]
	p := newPrinter(cmd)
	loader := newLoader()

	a, err := loader.Load(id)
	if err != nil {
		return fmt.Errorf("loading agent: %w", err)
	}

	if agentJSON {
		data, err := json.MarshalIndent(agent.Detail(a), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling agent: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	p.Success("Agent loaded: %s", a.Name)
	if agentDetailed {
		printAgentDetails(p, a)
	} else {
		expertise, err := loader.Expertise(id)
		if err != nil {
			return fmt.Errorf("loading expertise: %w", err)
		}
		printAgentCard(p, a, expertise)
	}

	welcome, ok, err := loader.Prompt(id, "welcome")
	if err != nil {
		return fmt.Errorf("loading welcome prompt: %w", err)
	}
	if ok {
		lines := strings.Split(welcome, "\n")
		if len(lines) > welcomeLines {
			lines = lines[:welcomeLines]
		}
		p.Blank()
		p.Box("Welcome", lines)
	}

	collaborators, err := loader.Collaborators(id)
	if err != nil {
		return fmt.Errorf("resolving collaborators: %w", err)
	}
	if len(collaborators) > 0 {
		p.Section("Collaborates With")
		for _, c := range collaborators {
			p.Line("  %s - %s", display.Accent(c.Name), display.Muted(c.Relationship))
		}
	}

	p.Blank()
	p.Info("Run \"%s agent menu %s\" to see available commands", branding.CLIName(), id)
	return nil
}

var agentMenuCmd = &cobra.Command{
	Use:   "menu [agent-id]",
	Short: "Display an agent's menu and commands",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := cfg.DefaultAgent()
		if len(args) == 1 {
			id = args[0]
		}
		p := newPrinter(cmd)

		loader := newLoader()
		menu, err := loader.Menu(id)
		if err != nil {
			return fmt.Errorf("loading menu: %w", err)
		}
		if menu == nil || len(menu.Sections) == 0 {
			p.Warning("No menu defined for agent: %s", id)
			return nil
		}

		a, err := loader.Load(id)
		if err != nil {
			return fmt.Errorf("loading menu: %w", err)
		}
		p.Banner(a.Name + " - Commands")
		for _, section := range menu.Sections {
			p.Section(section.Name)
			for _, c := range section.Commands {
				p.Line("  %s %s %s", display.Accent("["+c.Key+"]"), c.Description, display.Muted(c.Action))
			}
		}
		return nil
	},
}

var agentRouteCmd = &cobra.Command{
	Use:   "route <query>",
	Short: "Find the best agent for a task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		loader := newLoader()

		rec, ok := loader.Route(strings.Join(args, " "))
		if !ok {
			p.Warning("No specific agent recommended for this query.")
			p.Info("The %s agent can help with general questions.", loader.Master())
			return nil
		}

		p.Success("Recommended agent: %s", rec.Agent.Name)
		p.Blank()
		p.Box("Recommendation", []string{
			"Agent: " + rec.Agent.Name,
			"Role: " + rec.Agent.Role,
			"",
			"Reason: " + rec.Reason,
			fmt.Sprintf("Matched: %q", rec.MatchedKeyword),
		})
		p.Blank()
		p.Info("Run \"%s agent load %s\" to load this agent", branding.CLIName(), rec.Agent.ID)
		return nil
	},
}

var agentInfoCmd = &cobra.Command{
	Use:   "info <agent-id>",
	Short: "Show detailed information about an agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		loader := newLoader()

		a, err := loader.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading agent info: %w", err)
		}
		printAgentDetails(p, a)

		if verbose && len(a.Responsibilities) > 0 {
			p.Section("Responsibilities")
			keys := make([]string, 0, len(a.Responsibilities))
			for k := range a.Responsibilities {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				p.Line("  %s:", display.Accent(k))
				if d := a.Responsibilities[k].Description; d != "" {
					p.Line("    %s", display.Muted(d))
				}
			}
		}

		if verbose {
			prompts, err := loader.Prompts(args[0])
			if err != nil {
				return fmt.Errorf("loading prompts: %w", err)
			}
			if len(prompts) > 0 {
				keys := make([]string, 0, len(prompts))
				for k := range prompts {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				p.Section("Prompts")
				p.List(keys)
			}
		}
		return nil
	},
}

var agentValidateCmd = &cobra.Command{
	Use:   "validate <agent-id>",
	Short: "Check an agent file for required fields and schema errors",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)

		result := newLoader().Validate(args[0])
		for _, e := range result.Errors {
			p.Error("%s", e)
		}
		for _, w := range result.Warnings {
			p.Warning("%s", w)
		}

		if !result.Valid {
			return errValidationFailed
		}
		p.Success("Agent %s is valid", args[0])
		return nil
	},
}

func printAgentCard(p *display.Printer, a *agent.Agent, expertise []string) {
	v := agent.Summarize(a)
	lines := []string{
		"ID: " + v.ID,
		"Role: " + v.Role,
		"",
		v.ShortDescription,
	}
	if len(expertise) > 0 {
		lines = append(lines, "", "Expertise: "+strings.Join(expertise, ", "))
	}
	p.Box(v.Name, lines)
}

func printAgentDetails(p *display.Printer, a *agent.Agent) {
	p.Banner(a.Name)
	p.KeyValue("ID", a.ID)
	p.KeyValue("Role", a.Role)
	p.KeyValue("Version", a.Version)

	if d := strings.TrimSpace(a.Description); d != "" {
		p.Section("Description")
		p.Muted("%s", d)
	}

	lists := []struct {
		title string
		items []string
	}{
		{"Expertise", a.Expertise},
		{"Personality", a.Personality},
		{"Capabilities", a.Capabilities},
		{"Templates", a.Templates},
	}
	for _, l := range lists {
		if len(l.items) > 0 {
			p.Section(l.title)
			p.List(l.items)
		}
	}
}
