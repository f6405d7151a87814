package internal

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Load sources reported by LoadResult.Source and LoadIndex
const (
	SourceMemory  = "memory"
	SourceSession = "session"
	SourceDisk    = "disk"
)

// DefaultListDepth is how deep dataset folders are scanned for attachments
const DefaultListDepth = 2

// LoadResult is a fully normalized dataset
type LoadResult struct {
	ID            string         `json:"loadId"`
	Dataset       Dataset        `json:"dataset"`
	Conversations []Conversation `json:"conversations"`
	Stats         Stats          `json:"stats"`
	Files         []FileRef      `json:"-"`
	Source        string         `json:"source"`
}

// Conversation returns the conversation with the given id
func (r *LoadResult) Conversation(id string) (*Conversation, error) {
	for i := range r.Conversations {
		if r.Conversations[i].ID == id {
			return &r.Conversations[i], nil
		}
	}
	return nil, &NotFoundError{Kind: "conversation", ID: id}
}

// DecodeConversations reads a conversations.json document. The top level must
// be an array; an element that does not decode becomes a zero record, which
// normalization then counts as skipped.
func DecodeConversations(r io.Reader) ([]RawConversation, error) {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).Decode(&elems); err != nil {
		return nil, &DecodeError{Source: ConversationsFile, Err: err}
	}
	if elems == nil {
		return nil, &DecodeError{Source: ConversationsFile, Err: errors.New("top-level value must be an array")}
	}

	raw := make([]RawConversation, len(elems))
	for i, elem := range elems {
		if err := json.Unmarshal(elem, &raw[i]); err != nil {
			log.Debug().Err(err).Int("index", i).Msg("conversation record does not decode")
			raw[i] = RawConversation{}
		}
	}
	return raw, nil
}

// DecodeConversationsFile is DecodeConversations over a file on disk
func DecodeConversationsFile(path string) ([]RawConversation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	raw, err := DecodeConversations(f)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Source = path
		}
		return nil, err
	}
	return raw, nil
}

// Loader loads datasets, remembering full results in memory and slim indexes
// in an optional SessionCache.
type Loader struct {
	mu        sync.Mutex
	memory    map[string]*LoadResult
	session   *SessionCache
	maxSteps  int
	listDepth int
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithWalkLimit sets the active-path ceiling passed to the normalizer
func WithWalkLimit(steps int) LoaderOption {
	return func(l *Loader) {
		if steps > 0 {
			l.maxSteps = steps
		}
	}
}

// WithListDepth sets how deep attachment folders are scanned
func WithListDepth(depth int) LoaderOption {
	return func(l *Loader) {
		if depth > 0 {
			l.listDepth = depth
		}
	}
}

// NewLoader creates a Loader; session may be nil
func NewLoader(session *SessionCache, opts ...LoaderOption) *Loader {
	l := &Loader{
		memory:    make(map[string]*LoadResult),
		session:   session,
		maxSteps:  DefaultMaxWalkSteps,
		listDepth: DefaultListDepth,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDataset returns the normalized conversations of a dataset, from memory
// when this loader has seen it before.
func (l *Loader) LoadDataset(ctx context.Context, ds Dataset) (*LoadResult, error) {
	if cached, ok := l.fromMemory(ds); ok {
		log.Debug().Str("dataset", ds.ID).Msg("memory cache hit")
		hit := *cached
		hit.Source = SourceMemory
		return &hit, nil
	}

	stopTotal := startTimer("load dataset " + ds.ID)
	result, err := l.load(ctx, ds.Path, ds.ExportPath)
	if err != nil {
		return nil, err
	}
	result.Dataset = ds
	elapsed := stopTotal()
	loadDuration.WithLabelValues(SourceDisk).Observe(elapsed.Seconds())

	if l.session != nil {
		if _, err := l.session.Put(ds.Path, ds.ModifiedAt, NewSlimIndex(result.Conversations, result.Stats)); err != nil {
			log.Debug().Err(err).Str("dataset", ds.ID).Msg("session cache write failed")
		}
	}

	l.mu.Lock()
	l.memory[ds.Path] = result
	l.mu.Unlock()

	log.Info().
		Str("load_id", result.ID).
		Str("dataset", ds.ID).
		Int("loaded", result.Stats.Loaded).
		Int("skipped", result.Stats.Skipped).
		Int("files", len(result.Files)).
		Dur("elapsed", elapsed).
		Msg("dataset loaded")
	return result, nil
}

// LoadIndex returns the list-view index of a dataset: projected from memory,
// read from the session cache, or built by a full load.
func (l *Loader) LoadIndex(ctx context.Context, ds Dataset) (*SlimIndex, string, error) {
	if cached, ok := l.fromMemory(ds); ok {
		return NewSlimIndex(cached.Conversations, cached.Stats), SourceMemory, nil
	}

	if idx, ok := l.session.Get(ds.Path, ds.ModifiedAt); ok {
		log.Debug().Str("dataset", ds.ID).Msg("session cache hit")
		loadDuration.WithLabelValues(SourceSession).Observe(0)
		return idx, SourceSession, nil
	}

	result, err := l.LoadDataset(ctx, ds)
	if err != nil {
		return nil, "", err
	}
	return NewSlimIndex(result.Conversations, result.Stats), SourceDisk, nil
}

// fromMemory returns the remembered result for ds unless its export changed
// since it was loaded.
func (l *Loader) fromMemory(ds Dataset) (*LoadResult, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cached, ok := l.memory[ds.Path]
	if !ok {
		return nil, false
	}
	if !cached.Dataset.ModifiedAt.Equal(ds.ModifiedAt) {
		delete(l.memory, ds.Path)
		return nil, false
	}
	return cached, true
}

// LoadFromFiles loads an export folder directly, bypassing both caches
func (l *Loader) LoadFromFiles(ctx context.Context, root string) (*LoadResult, error) {
	stopTotal := startTimer("load from files " + root)
	result, err := l.load(ctx, root, "")
	if err != nil {
		return nil, err
	}
	stopTotal()
	result.Dataset = Dataset{ID: filepath.Base(filepath.Clean(root)), Name: filepath.Base(filepath.Clean(root)), Path: root}
	return result, nil
}

func (l *Loader) load(ctx context.Context, root, exportPath string) (*LoadResult, error) {
	stopFiles := startTimer("list dataset files")
	files, err := ListDatasetFiles(root, l.listDepth)
	stopFiles()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if exportPath == "" {
		ref, ok := FindFileByName(files, ConversationsFile)
		if !ok {
			return nil, &NotFoundError{Kind: "file", ID: filepath.Join(root, ConversationsFile)}
		}
		exportPath = filepath.Join(root, filepath.FromSlash(ref.RelPath()))
	}

	stopDecode := startTimer("decode " + ConversationsFile)
	raw, err := DecodeConversationsFile(exportPath)
	stopDecode()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stopNorm := startTimer("normalize conversations")
	res := NormalizeWithWarnings(raw, files, WithMaxWalkSteps(l.maxSteps))
	stopNorm()

	return &LoadResult{
		ID:            uuid.NewString(),
		Conversations: SortConversations(res.Normalized),
		Stats:         res.Stats,
		Files:         files,
		Source:        SourceDisk,
	}, nil
}

// ClearCache forgets every loaded dataset, in memory and in the session cache
func (l *Loader) ClearCache() error {
	l.mu.Lock()
	l.memory = make(map[string]*LoadResult)
	l.mu.Unlock()
	return l.session.Clear()
}
