package template

import (
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
)

// Hit is a search result.
type Hit struct {
	Template
	Score float64 `json:"score"`
}

type indexedTemplate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`
}

// Search runs a full-text match query over every template in the library
// and returns hits ordered by relevance. The index lives in memory for the
// duration of the call.
func (l *Library) Search(query string) ([]Hit, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	defer index.Close()

	byID := map[string]Template{}
	batch := index.NewBatch()
	for _, category := range l.List("") {
		for _, t := range category.Templates {
			content, err := os.ReadFile(t.Path)
			if err != nil {
				return nil, fmt.Errorf("reading template %s: %w", t.Path, err)
			}
			id := t.Category + "/" + t.Name
			byID[id] = t
			if err := batch.Index(id, indexedTemplate{
				Title:       t.Title,
				Description: t.Description,
				Category:    t.Category,
				Content:     string(content),
			}); err != nil {
				return nil, fmt.Errorf("indexing template %s: %w", id, err)
			}
		}
	}

	hits := []Hit{}
	if len(byID) == 0 {
		return hits, nil
	}
	if err := index.Batch(batch); err != nil {
		return nil, fmt.Errorf("indexing templates: %w", err)
	}

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = len(byID)
	res, err := index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching templates: %w", err)
	}

	for _, h := range res.Hits {
		hits = append(hits, Hit{Template: byID[h.ID], Score: h.Score})
	}
	return hits, nil
}
