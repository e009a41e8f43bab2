package agent

import (
	"errors"
	"fmt"
	"math"

	"go.yaml.in/yaml/v3"
)

const (
	defaultRole    = "Agent"
	defaultVersion = "1.0.0"
)

var errNotMapping = errors.New("document is not a mapping")

// Decode parses an agent document. It fails only when data is not YAML or
// its top level is not a mapping.
func Decode(data []byte) (map[string]any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	m := asMap(doc)
	if m == nil {
		return nil, errNotMapping
	}
	return m, nil
}

// Normalize builds an Agent from a decoded document, defaulting every
// missing field. id fills in the agent id and name when the document has
// none. Normalize never fails and does not modify raw.
func Normalize(raw map[string]any, id string) *Agent {
	meta := asMap(raw["agent"])
	identity := asMap(raw["identity"])

	return &Agent{
		ID:          stringOr(meta["id"], id),
		Name:        stringOr(meta["name"], id),
		Role:        stringOr(meta["role"], defaultRole),
		Version:     stringOr(meta["version"], defaultVersion),
		Description: stringOr(identity["description"], ""),

		Expertise:    stringList(identity["expertise"]),
		Personality:  stringList(identity["personality"]),
		Capabilities: stringList(raw["capabilities"]),
		Templates:    stringList(raw["templates"]),
		Integrations: stringList(raw["integrations"]),

		Responsibilities: responsibilities(raw["responsibilities"]),
		Menu:             menu(raw["menu"]),
		HelpSystem:       optionalMap(raw["help_system"]),
		Routing:          routing(raw["routing"]),
		CollaboratesWith: collaborations(raw["collaborates_with"]),
		Prompts:          prompts(raw["prompts"]),

		Raw: raw,
	}
}

func responsibilities(v any) map[string]Responsibility {
	out := map[string]Responsibility{}
	if !truthy(v) {
		return out
	}
	for key, value := range asMap(v) {
		r := Responsibility{Raw: asMap(value)}
		if r.Raw != nil {
			r.Description = stringOr(r.Raw["description"], "")
		} else {
			r.Description = stringOr(value, "")
		}
		out[key] = r
	}
	return out
}

func menu(v any) *Menu {
	if !truthy(v) {
		return nil
	}
	m := &Menu{}
	for _, item := range list(asMap(v)["sections"]) {
		section := asMap(item)
		s := MenuSection{Name: stringOr(section["name"], "")}
		for _, c := range list(section["commands"]) {
			cmd := asMap(c)
			s.Commands = append(s.Commands, MenuCommand{
				Key:         stringOr(cmd["key"], ""),
				Description: stringOr(cmd["description"], ""),
				Action:      stringOr(cmd["action"], ""),
			})
		}
		m.Sections = append(m.Sections, s)
	}
	return m
}

func routing(v any) *Routing {
	if !truthy(v) {
		return nil
	}
	r := &Routing{}
	for _, item := range list(asMap(v)["rules"]) {
		rule := asMap(item)
		r.Rules = append(r.Rules, RoutingRule{
			Condition: stringOr(rule["condition"], ""),
			Agent:     stringOr(rule["agent"], ""),
			Reason:    stringOr(rule["reason"], ""),
		})
	}
	return r
}

func collaborations(v any) []Collaboration {
	out := []Collaboration{}
	for _, item := range list(v) {
		if id, ok := item.(string); ok {
			out = append(out, Collaboration{Agent: id})
			continue
		}
		c := asMap(item)
		out = append(out, Collaboration{
			Agent:        stringOr(c["agent"], ""),
			Relationship: stringOr(c["relationship"], ""),
		})
	}
	return out
}

func prompts(v any) map[string]string {
	out := map[string]string{}
	for key, value := range asMap(v) {
		out[key] = stringOr(value, "")
	}
	return out
}

func optionalMap(v any) map[string]any {
	if !truthy(v) {
		return nil
	}
	return asMap(v)
}

// asMap returns v as a string-keyed mapping, or nil when it is not one.
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out
	default:
		return nil
	}
}

func list(v any) []any {
	l, _ := v.([]any)
	return l
}

// truthy reports whether a decoded value counts as set: nil, false, zero
// and the empty string do not.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	case float64:
		return val != 0 && !math.IsNaN(val)
	default:
		return true
	}
}

func stringOr(v any, def string) string {
	if !truthy(v) {
		return def
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// stringList renders each element of a sequence as a string. A scalar is
// treated as a one-element sequence.
func stringList(v any) []string {
	out := []string{}
	if !truthy(v) {
		return out
	}
	items, ok := v.([]any)
	if !ok {
		return append(out, stringOr(v, ""))
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out
}
