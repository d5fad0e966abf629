package searchdata

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tuya/fastdata/internal/fetch"
	"github.com/tuya/fastdata/internal/model"
)

// Loader fetches every source concurrently from <BaseURL><Path>/<id>.json.
type Loader struct {
	BaseURL string
	Path    string
	Sources []Source
	Client  *http.Client
	Log     *zap.Logger
}

// URL returns the resource location for a dataset id.
func (l *Loader) URL(id string) string {
	return strings.TrimRight(l.BaseURL, "/") + "/" + strings.Trim(l.Path, "/") + "/" + id + ".json"
}

// Load waits for every fetch to settle and returns an index over the ones
// that succeeded. Failed or malformed resources are dropped and logged at
// debug level; Load itself never fails.
func (l *Loader) Load(ctx context.Context) *Index {
	sources := l.Sources
	if len(sources) == 0 {
		sources = DefaultSources
	}
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}

	results := make([]*Dataset, len(sources))
	var g errgroup.Group
	var mu sync.Mutex
	failed := 0

	for i, src := range sources {
		g.Go(func() error {
			var records []model.SearchRecord
			if err := fetch.JSON(ctx, l.Client, l.URL(src.ID), &records); err != nil {
				log.Debug("search dataset unavailable", zap.String("dataset", src.ID), zap.Error(err))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			results[i] = &Dataset{Source: src, Records: records}
			return nil
		})
	}
	g.Wait()

	var loaded []Dataset
	for _, d := range results {
		if d != nil {
			loaded = append(loaded, *d)
		}
	}
	log.Info("search data loaded", zap.Int("datasets", len(loaded)), zap.Int("failed", failed))
	return NewIndex(loaded)
}
