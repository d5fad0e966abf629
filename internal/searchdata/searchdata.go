// Package searchdata loads the question/answer datasets behind the navbar
// search and answers substring queries over them.
package searchdata

import (
	"strings"
	"unicode/utf8"

	"github.com/tuya/fastdata/internal/model"
)

const (
	// MinQueryLen is the shortest query that produces a result panel.
	MinQueryLen = 2
	// MaxMatchesPerDataset caps the hits each dataset contributes.
	MaxMatchesPerDataset = 3
	// AnswerPreviewLen is the display length of an answer before truncation.
	AnswerPreviewLen = 100
)

// Source names one fetchable dataset and its display title.
type Source struct {
	ID    string
	Title string
}

// DefaultSources are the datasets the dashboard searches, in display order.
var DefaultSources = []Source{
	{ID: "balances", Title: "Saldos"},
	{ID: "sales", Title: "Ventas"},
	{ID: "inventory", Title: "Inventario"},
	{ID: "customers", Title: "Clientes"},
	{ID: "reports", Title: "Reportes"},
}

// TitleFor returns the display title for a dataset id, or the id itself.
func TitleFor(id string) string {
	for _, s := range DefaultSources {
		if s.ID == id {
			return s.Title
		}
	}
	return id
}

// Dataset is one loaded resource.
type Dataset struct {
	Source
	Records []model.SearchRecord
}

// Index is an immutable snapshot of loaded datasets.
type Index struct {
	datasets []Dataset
}

// NewIndex builds an index. Datasets keep the given order.
func NewIndex(datasets []Dataset) *Index {
	ds := make([]Dataset, len(datasets))
	copy(ds, datasets)
	return &Index{datasets: ds}
}

// Len returns the number of loaded datasets.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.datasets)
}

// Count is the number of records one dataset contributed.
type Count struct {
	ID      string
	Title   string
	Records int
}

// Counts reports record totals per loaded dataset.
func (ix *Index) Counts() []Count {
	if ix == nil {
		return nil
	}
	out := make([]Count, 0, len(ix.datasets))
	for _, d := range ix.datasets {
		out = append(out, Count{ID: d.ID, Title: d.Title, Records: len(d.Records)})
	}
	return out
}

// Search runs a case-insensitive substring match against question and
// answer. Queries shorter than MinQueryLen return nil. Datasets without
// hits are omitted; each contributes at most MaxMatchesPerDataset.
func (ix *Index) Search(query string) []model.SearchResultGroup {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < MinQueryLen || ix == nil {
		return nil
	}

	var groups []model.SearchResultGroup
	for _, d := range ix.datasets {
		var matches []model.SearchResultEntry
		for _, r := range d.Records {
			inQuestion := strings.Contains(strings.ToLower(r.Question), q)
			if !inQuestion && !strings.Contains(strings.ToLower(r.Answer), q) {
				continue
			}
			mt := model.MatchAnswer
			if inQuestion {
				mt = model.MatchQuestion
			}
			matches = append(matches, model.SearchResultEntry{
				Question:  r.Question,
				Answer:    r.Answer,
				MatchType: mt,
			})
			if len(matches) == MaxMatchesPerDataset {
				break
			}
		}
		if len(matches) > 0 {
			groups = append(groups, model.SearchResultGroup{
				SectionID: d.ID,
				Title:     d.Title,
				Matches:   matches,
			})
		}
	}
	return groups
}

// TruncateAnswer shortens s to n runes followed by "..." when longer.
func TruncateAnswer(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
