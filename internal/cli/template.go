package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/crystalmyth/n8n-bmad/internal/branding"
	"github.com/crystalmyth/n8n-bmad/internal/display"
	"github.com/crystalmyth/n8n-bmad/internal/log"
	"github.com/crystalmyth/n8n-bmad/internal/template"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const previewLines = 30

var categoryDescriptions = map[string]string{
	"project":       "Project briefs, roadmaps and planning documents",
	"agile":         "Sprint plans, user stories and retrospectives",
	"architecture":  "Architecture decisions and system design",
	"workflow":      "Workflow specifications and node documentation",
	"testing":       "Test plans and test case templates",
	"documentation": "Runbooks, guides and reference documents",
}

var (
	templateCategory string
	templateFormat   string
	templateVarsOnly bool
	templateOutput   string
	templateVars     []string
	templatePreview  bool
)

func init() {
	// No -c shorthand: it belongs to the persistent --config flag.
	templateListCmd.Flags().StringVar(&templateCategory, "category", "", "Filter by category")
	templateListCmd.Flags().StringVarP(&templateFormat, "format", "f", "table", "Output format (table, json, tree)")

	templateShowCmd.Flags().BoolVar(&templateVarsOnly, "vars-only", false, "Only list template variables")

	templateGenerateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "Output file path")
	templateGenerateCmd.Flags().StringArrayVar(&templateVars, "var", nil, "Variable value as key=value (repeatable)")
	templateGenerateCmd.Flags().BoolVar(&templatePreview, "preview", false, "Print the result instead of writing it")

	templateCmd.AddCommand(templateListCmd, templateShowCmd, templateGenerateCmd, templateCategoriesCmd, templateSearchCmd)
	rootCmd.AddCommand(templateCmd)
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Browse and generate documents from templates",
	Example: `  n8n-bmad template list
  n8n-bmad template show project project-brief
  n8n-bmad template generate project project-brief --var project_name=Acme
  n8n-bmad template search sprint`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		lib := newLibrary()
		if len(lib.Categories()) == 0 {
			p.Warning("No template categories configured (templates.categories)")
			return nil
		}
		categories := lib.List(templateCategory)
		out := cmd.OutOrStdout()

		switch templateFormat {
		case "json":
			data, err := json.MarshalIndent(categories, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling templates: %w", err)
			}
			fmt.Fprintln(out, string(data))
		case "tree":
			p.Line("%s", display.Accent("templates/"))
			for i, c := range categories {
				branch, indent := "├── ", "│   "
				if i == len(categories)-1 {
					branch, indent = "└── ", "    "
				}
				p.Line("%s%s/", branch, c.Name)
				for j, t := range c.Templates {
					leaf := "├── "
					if j == len(c.Templates)-1 {
						leaf = "└── "
					}
					p.Line("%s%s%s", indent, leaf, t.File)
				}
			}
		default:
			p.Header("Templates")
			count := 0
			for _, c := range categories {
				if len(c.Templates) == 0 {
					continue
				}
				p.Section(c.Name)
				w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
				for _, t := range c.Templates {
					fmt.Fprintf(w, "  %s\t%s\n", t.Name, t.Title)
					count++
				}
				w.Flush()
			}
			if count == 0 {
				p.Warning("No templates found in %s", lib.Root())
				return nil
			}
			p.Blank()
			p.Info("%d template(s). Use \"%s template show <category> <name>\" for details", count, branding.CLIName())
		}
		return nil
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <category> <name>",
	Short: "Show a template and its variables",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		doc, err := newLibrary().Get(args[0], args[1])
		if err != nil {
			return err
		}

		if templateVarsOnly {
			for _, v := range doc.Variables {
				p.Line("%s", v)
			}
			return nil
		}

		p.Banner(doc.Title)
		p.KeyValue("Category", doc.Category)
		p.KeyValue("File", doc.Path)
		if doc.Description != "" {
			p.KeyValue("Description", doc.Description)
		}

		if len(doc.Variables) > 0 {
			p.Section("Variables")
			p.List(doc.Variables)
		}

		p.Section("Preview")
		lines := strings.Split(doc.Content, "\n")
		truncated := len(lines) > previewLines
		if truncated {
			lines = lines[:previewLines]
		}
		for _, l := range lines {
			p.Muted("%s", l)
		}
		if truncated {
			p.Info("... (%d more lines)", len(strings.Split(doc.Content, "\n"))-previewLines)
		}
		return nil
	},
}

var templateGenerateCmd = &cobra.Command{
	Use:   "generate <category> <name>",
	Short: "Generate a document from a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateGenerate,
}

func runTemplateGenerate(cmd *cobra.Command, args []string) error {
	p := newPrinter(cmd)
	doc, err := newLibrary().Get(args[0], args[1])
	if err != nil {
		return err
	}

	values := template.ParseVars(templateVars)
	for _, pair := range templateVars {
		if !strings.Contains(pair, "=") {
			p.Warning("Ignoring malformed variable %q (want key=value)", pair)
		}
	}
	if missing := template.Missing(doc.Variables, values); len(missing) > 0 {
		p.Warning("Variables without a value are left in place: %s", strings.Join(missing, ", "))
	}

	content := template.Generate(doc.Content, values)
	if templatePreview {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	output := templateOutput
	if output == "" {
		output = fmt.Sprintf("./%s-%d%s", doc.Name, time.Now().UnixMilli(), template.Ext)
	}
	output, err = filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("resolving output path: %w", err)
	}

	if _, err := os.Stat(output); err == nil && !assumeYes {
		return fmt.Errorf("file already exists: %s (use --yes to overwrite)", output)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking output path: %w", err)
	}

	if dryRun {
		p.Info("Would write %s (%d bytes)", output, len(content))
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	log.L().Debug("template generated", zap.String("template", doc.Path), zap.String("output", output))

	p.Success("Document generated")
	p.Box("Summary", []string{
		"Template: " + doc.Category + "/" + doc.Name,
		"Output: " + output,
		fmt.Sprintf("Variables: %d of %d set", len(doc.Variables)-len(template.Missing(doc.Variables, values)), len(doc.Variables)),
	})
	return nil
}

var templateCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List template categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		p.Header("Template Categories")
		for _, c := range newLibrary().List("") {
			desc := categoryDescriptions[c.Name]
			if desc == "" {
				desc = "Custom category"
			}
			p.Line("  %s %s", display.Accent(fmt.Sprintf("%-15s", c.Name)), display.Muted(fmt.Sprintf("(%d) %s", len(c.Templates), desc)))
		}
		return nil
	},
}

var templateSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search across all templates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := newPrinter(cmd)
		query := strings.Join(args, " ")

		hits, err := newLibrary().Search(query)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			p.Warning("No templates match %q", query)
			return nil
		}

		p.Header(fmt.Sprintf("Results for %q", query))
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "TEMPLATE\tTITLE\tSCORE")
		for _, h := range hits {
			fmt.Fprintf(w, "%s/%s\t%s\t%.3f\n", h.Category, h.Name, h.Title, h.Score)
		}
		return w.Flush()
	},
}
