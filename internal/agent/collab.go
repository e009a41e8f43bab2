package agent

import "go.uber.org/zap"

// Collaborators loads the agents id declares it works with, in declaration
// order. The agent itself must load; collaborators that do not are left out.
// Only direct collaborators are resolved.
func (l *Loader) Collaborators(id string) ([]Collaborator, error) {
	a, err := l.Load(id)
	if err != nil {
		return nil, err
	}

	collaborators := []Collaborator{}
	for _, c := range a.CollaboratesWith {
		if c.Agent == "" {
			continue
		}
		peer, err := l.Load(c.Agent)
		if err != nil {
			l.logger.Debug("skipping collaborator", zap.String("agent", id), zap.String("collaborator", c.Agent), zap.Error(err))
			continue
		}
		collaborators = append(collaborators, Collaborator{Agent: peer, Relationship: c.Relationship})
	}
	return collaborators, nil
}
