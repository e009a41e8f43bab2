package agent

import (
	"strings"
	"unicode/utf8"

	"github.com/crystalmyth/n8n-bmad/internal/branding"
	"go.uber.org/zap"
)

const listDescriptionLimit = 100

// Loader loads agents from a Source through a Cache.
type Loader struct {
	src       Source
	cache     *Cache
	available []string
	master    string
	logger    *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithAvailable sets the agent ids LoadAll and List iterate, in order.
func WithAvailable(ids []string) Option {
	return func(l *Loader) { l.available = ids }
}

// WithMaster sets the id of the agent holding the routing table.
func WithMaster(id string) Option {
	return func(l *Loader) { l.master = id }
}

// WithLogger sets the logger used for skipped agents.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// NewLoader returns a Loader reading from src. A nil cache gets a fresh one.
func NewLoader(src Source, cache *Cache, opts ...Option) *Loader {
	if cache == nil {
		cache = NewCache()
	}
	l := &Loader{
		src:    src,
		cache:  cache,
		master: branding.MasterAgent(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Cache returns the loader's cache.
func (l *Loader) Cache() *Cache { return l.cache }

// Master returns the routing agent id.
func (l *Loader) Master() string { return l.master }

// Available returns the configured agent ids.
func (l *Loader) Available() []string { return l.available }

// Load returns the agent for id, from the cache when present.
func (l *Loader) Load(id string) (*Agent, error) {
	if a, ok := l.cache.Get(id); ok {
		return a, nil
	}
	return l.Reload(id)
}

// Reload reads and normalizes the agent for id regardless of the cache and
// stores the result.
func (l *Loader) Reload(id string) (*Agent, error) {
	data, err := l.src.Read(id)
	if err != nil {
		return nil, err
	}

	raw, err := Decode(data)
	if err != nil {
		return nil, &ParseError{ID: id, Err: err}
	}

	a := Normalize(raw, id)
	l.cache.Put(id, a)
	l.logger.Debug("loaded agent", zap.String("agent", id))
	return a, nil
}

// LoadAll loads every available agent in order. Agents that fail to load
// are logged and skipped.
func (l *Loader) LoadAll() []*Agent {
	agents := []*Agent{}
	for _, id := range l.available {
		a, err := l.Load(id)
		if err != nil {
			l.logger.Warn("could not load agent", zap.String("agent", id), zap.Error(err))
			continue
		}
		agents = append(agents, a)
	}
	return agents
}

// List summarizes every available agent in order. An agent that fails to
// load is listed with role "Unknown" and the error as its description.
func (l *Loader) List() []ListEntry {
	entries := []ListEntry{}
	for _, id := range l.available {
		a, err := l.Load(id)
		if err != nil {
			entries = append(entries, ListEntry{
				ID:          id,
				Name:        id,
				Role:        "Unknown",
				Description: "Error: " + err.Error(),
				Error:       true,
			})
			continue
		}
		entries = append(entries, Entry(a))
	}
	return entries
}

// Entry summarizes a loaded agent for listings.
func Entry(a *Agent) ListEntry {
	return ListEntry{
		ID:             a.ID,
		Name:           a.Name,
		Role:           a.Role,
		Description:    truncate(firstLine(a.Description), listDescriptionLimit),
		ExpertiseCount: len(a.Expertise),
		HasMenu:        a.Menu != nil,
	}
}

// Menu returns the agent's menu, nil when it has none.
func (l *Loader) Menu(id string) (*Menu, error) {
	a, err := l.Load(id)
	if err != nil {
		return nil, err
	}
	return a.Menu, nil
}

// Expertise returns the agent's expertise areas.
func (l *Loader) Expertise(id string) ([]string, error) {
	a, err := l.Load(id)
	if err != nil {
		return nil, err
	}
	return a.Expertise, nil
}

// Prompts returns all of the agent's prompts.
func (l *Loader) Prompts(id string) (map[string]string, error) {
	a, err := l.Load(id)
	if err != nil {
		return nil, err
	}
	return a.Prompts, nil
}

// Prompt returns one prompt by key; ok is false when it is unset or empty.
func (l *Loader) Prompt(id, key string) (text string, ok bool, err error) {
	a, err := l.Load(id)
	if err != nil {
		return "", false, err
	}
	text = a.Prompts[key]
	return text, text != "", nil
}

// FindByExpertise returns the loadable agents whose expertise, description
// or role contains keyword, case-insensitively.
func (l *Loader) FindByExpertise(keyword string) []*Agent {
	keyword = strings.ToLower(keyword)

	var matches []*Agent
	for _, a := range l.LoadAll() {
		if matchesKeyword(a, keyword) {
			matches = append(matches, a)
		}
	}
	return matches
}

func matchesKeyword(a *Agent, keyword string) bool {
	for _, e := range a.Expertise {
		if strings.Contains(strings.ToLower(e), keyword) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(a.Description), keyword) ||
		strings.Contains(strings.ToLower(a.Role), keyword)
}

// RoutingRules returns the master agent's routing table, or nil when the
// master cannot be loaded or has none.
func (l *Loader) RoutingRules() *Routing {
	master, err := l.Load(l.master)
	if err != nil {
		l.logger.Debug("master agent unavailable", zap.String("agent", l.master), zap.Error(err))
		return nil
	}
	return master.Routing
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
