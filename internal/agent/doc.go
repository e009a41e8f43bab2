// Package agent loads agent persona documents (<id>.agent.yaml), normalizes
// them into Agent records and resolves routing and collaboration between
// agents.
//
// A Loader reads documents through a Source and memoizes them in an explicit
// Cache. Operations that touch several agents (LoadAll, List, Route,
// Collaborators) are best effort: an agent that fails to load is skipped,
// logged or reported as a placeholder rather than failing the whole call.
package agent
