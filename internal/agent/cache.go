package agent

import "sync"

// Cache memoizes normalized agents by id until Clear is called. It is safe
// for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	agents map[string]*Agent
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{agents: make(map[string]*Agent)}
}

// Get returns the cached agent for id.
func (c *Cache) Get(id string) (*Agent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.agents[id]
	return a, ok
}

// Put stores a under id, replacing any previous entry.
func (c *Cache) Put(id string, a *Agent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agents[id] = a
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agents = make(map[string]*Agent)
}

// Len returns the number of cached agents.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.agents)
}
