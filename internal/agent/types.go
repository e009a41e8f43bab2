package agent

// Agent is a normalized persona document. Every field is populated; missing
// sequences and mappings are empty rather than nil, except the optional
// Menu, Routing and HelpSystem blocks.
type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Version     string `json:"version"`
	Description string `json:"description"`

	Expertise    []string `json:"expertise"`
	Personality  []string `json:"personality"`
	Capabilities []string `json:"capabilities"`
	Templates    []string `json:"templates"`
	Integrations []string `json:"integrations"`

	Responsibilities map[string]Responsibility `json:"responsibilities"`
	Menu             *Menu                     `json:"menu"`
	HelpSystem       map[string]any            `json:"helpSystem"`
	Routing          *Routing                  `json:"routing"`
	CollaboratesWith []Collaboration           `json:"collaboratesWith"`
	Prompts          map[string]string         `json:"prompts"`

	// Raw is the decoded document the record was built from.
	Raw map[string]any `json:"-"`
}

// Responsibility describes one area an agent owns.
type Responsibility struct {
	Description string         `json:"description,omitempty"`
	Raw         map[string]any `json:"-"`
}

// Menu is the command menu an agent offers.
type Menu struct {
	Sections []MenuSection `json:"sections"`
}

type MenuSection struct {
	Name     string        `json:"name"`
	Commands []MenuCommand `json:"commands"`
}

// MenuCommand is bound to a single-character key.
type MenuCommand struct {
	Key         string `json:"key"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// Routing is the master agent's keyword routing table.
type Routing struct {
	Rules []RoutingRule `json:"rules"`
}

// RoutingRule sends queries matching any keyword in Condition to Agent.
// Keywords are separated by the literal " OR ".
type RoutingRule struct {
	Condition string `json:"condition"`
	Agent     string `json:"agent"`
	Reason    string `json:"reason"`
}

// Collaboration is a declared link to another agent.
type Collaboration struct {
	Agent        string `json:"agent"`
	Relationship string `json:"relationship"`
}

// Collaborator is a loaded collaborating agent and how it relates.
type Collaborator struct {
	*Agent
	Relationship string `json:"relationship"`
}

// Recommendation is the outcome of routing a query.
type Recommendation struct {
	Agent          *Agent `json:"agent"`
	Reason         string `json:"reason"`
	MatchedKeyword string `json:"matchedKeyword"`
}

// ListEntry summarizes an agent for listings. Entries for agents that failed
// to load carry Error and the failure in Description.
type ListEntry struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Description    string `json:"description"`
	ExpertiseCount int    `json:"expertiseCount"`
	HasMenu        bool   `json:"hasMenu"`
	Error          bool   `json:"error,omitempty"`
}
