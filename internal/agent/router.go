package agent

import (
	"strings"

	"go.uber.org/zap"
)

// KeywordSeparator splits a routing condition into keywords.
const KeywordSeparator = " OR "

// Route picks an agent for a free-text query using the master agent's
// routing rules. Rules are tried in order and the first keyword contained in
// the query whose target agent loads wins. ok is false when nothing matches,
// the master cannot be loaded or it has no rules.
func (l *Loader) Route(query string) (rec *Recommendation, ok bool) {
	routing := l.RoutingRules()
	if routing == nil || routing.Rules == nil {
		return nil, false
	}

	query = strings.ToLower(query)

	for _, rule := range routing.Rules {
		for _, keyword := range Keywords(rule.Condition) {
			if !strings.Contains(query, keyword) {
				continue
			}
			a, err := l.Load(rule.Agent)
			if err != nil {
				l.logger.Debug("routing target unavailable",
					zap.String("agent", rule.Agent),
					zap.String("keyword", keyword),
					zap.Error(err))
				continue
			}
			return &Recommendation{Agent: a, Reason: rule.Reason, MatchedKeyword: keyword}, true
		}
	}

	return nil, false
}

// Keywords splits a condition on " OR " and returns the trimmed,
// lower-cased keywords. Empty keywords are dropped, so a rule without a
// condition never matches.
func Keywords(condition string) []string {
	parts := strings.Split(condition, KeywordSeparator)
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if k := strings.ToLower(strings.TrimSpace(p)); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
