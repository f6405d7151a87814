package internal

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const discoveryConcurrency = 8

// Dataset is one export folder holding a conversations.json
type Dataset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Path       string    `json:"path"`
	ExportPath string    `json:"-"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Size       int64     `json:"size"`
}

// DiscoverDatasets finds every immediate subfolder of dataDir that holds a
// conversations.json. dataDir itself counts when it holds one. Results are
// sorted by id.
func DiscoverDatasets(ctx context.Context, dataDir string) ([]Dataset, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, &LoadError{Path: dataDir, Op: "open", Err: err}
	}

	var (
		mu       sync.Mutex
		datasets []Dataset
	)
	if ds, ok := probeDataset(dataDir, filepath.Base(filepath.Clean(dataDir)), entries); ok {
		datasets = append(datasets, ds)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(discoveryConcurrency)
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := e.Name()
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dir := filepath.Join(dataDir, name)
			children, err := os.ReadDir(dir)
			if err != nil {
				log.Debug().Err(err).Str("dir", dir).Msg("skipping unreadable folder")
				return nil
			}
			ds, ok := probeDataset(dir, name, children)
			if !ok {
				return nil
			}
			mu.Lock()
			datasets = append(datasets, ds)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(datasets, func(i, j int) bool { return datasets[i].ID < datasets[j].ID })
	log.Debug().Int("count", len(datasets)).Str("dir", dataDir).Msg("datasets discovered")
	return datasets, nil
}

func probeDataset(dir, id string, entries []os.DirEntry) (Dataset, bool) {
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(e.Name(), ConversationsFile) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return Dataset{}, false
		}
		return Dataset{
			ID:         id,
			Name:       strings.ReplaceAll(id, "_", " "),
			Path:       dir,
			ExportPath: filepath.Join(dir, e.Name()),
			ModifiedAt: info.ModTime(),
			Size:       info.Size(),
		}, true
	}
	return Dataset{}, false
}

// FindDataset returns the dataset with the given id
func FindDataset(datasets []Dataset, id string) (Dataset, error) {
	for _, ds := range datasets {
		if ds.ID == id {
			return ds, nil
		}
	}
	return Dataset{}, &NotFoundError{Kind: "dataset", ID: id}
}

// DatasetFromDir describes a single export folder without scanning its parent
func DatasetFromDir(dir string) (Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Dataset{}, &LoadError{Path: dir, Op: "open", Err: err}
	}
	ds, ok := probeDataset(dir, filepath.Base(filepath.Clean(dir)), entries)
	if !ok {
		return Dataset{}, &NotFoundError{Kind: "dataset", ID: dir}
	}
	return ds, nil
}
