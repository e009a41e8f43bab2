package config

// defaultConfig mirrors a complete module.yaml. It is registered as viper
// defaults, so every key here is visible even when the project file omits it.
var defaultConfig = map[string]any{
	"framework": map[string]any{
		"name":        "n8n-BMAD",
		"version":     "1.0.0",
		"description": "AI-powered methodology framework for n8n workflow automation teams",
	},
	"options": map[string]any{
		"n8n_instance_url": map[string]any{
			"default": "http://localhost:5678",
			"env_var": "N8N_INSTANCE_URL",
		},
		"naming_convention": map[string]any{
			"default": map[string]any{
				"workflow_prefix":       "wf_",
				"credential_prefix":     "cred_",
				"environment_separator": "_",
				"use_snake_case":        true,
			},
		},
	},
	"defaults": map[string]any{
		"workflow": map[string]any{
			"timezone":                "UTC",
			"save_execution_progress": true,
		},
		"validation": map[string]any{
			"check_naming":      true,
			"check_credentials": true,
			"check_expressions": true,
			"check_connections": true,
		},
	},
	"output": map[string]any{
		"docs_path":    "./docs/generated",
		"exports_path": "./exports",
		"backups_path": "./backups",
		"reports_path": "./reports",
	},
	"agents": map[string]any{
		"default_agent": "n8n-master",
		"agent_path":    "./src/core/agents",
		"available_agents": []any{
			"n8n-master",
			"po",
			"pm",
			"sm",
			"architect",
			"developer",
			"qa",
			"devops",
			"ba",
			"security",
			"integration",
			"data-analyst",
			"tech-writer",
		},
	},
	"templates": map[string]any{
		"path": "./templates",
		"categories": []any{
			"project",
			"agile",
			"architecture",
			"operations",
			"testing",
			"n8n-specific",
			"security",
		},
	},
	"patterns": map[string]any{
		"path": "./patterns",
		"categories": []any{
			"error-handling",
			"integration",
			"data-transformation",
			"scheduling",
		},
	},
	"reference": map[string]any{
		"path": "./reference",
	},
	"mcp": map[string]any{
		"enabled":     true,
		"config_path": "./.mcp.json",
	},
	"logging": map[string]any{
		"level":  "info",
		"format": "text",
		"output": "console",
	},
}

// requiredSections must resolve to a value after merging.
var requiredSections = []string{"framework", "agents", "templates"}
