package internal

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Resolution tier names, also used as metric labels
const (
	TierConversationKind = "conversation_kind"
	TierFileServiceUser  = "file_service_user"
	TierSediment         = "sediment_conversation"
	TierConversationAV   = "conversation_av"
	TierUserFolders      = "user_folders"
	TierAnywhere         = "anywhere"
	TierNone             = "none"
)

// AssetIndex is an immutable, queryable snapshot over a dataset's file paths
type AssetIndex struct {
	entries []assetEntry
}

type assetEntry struct {
	path      string // forward-slash relative path
	rooted    string // "/" + path, so folder needles also match at the root
	lowerBase string
	baseLen   int
}

// ResolveContext narrows a pointer lookup
type ResolveContext struct {
	ConversationID string
	Kind           MediaKind
}

// resolveTier is one step of the fallback chain. The first tier returning a
// non-empty result wins.
type resolveTier struct {
	name    string
	applies func(p ParsedPointer, ctx ResolveContext) bool
	search  func(idx *AssetIndex, p ParsedPointer, ctx ResolveContext) []string
}

var resolveTiers = []resolveTier{
	{
		name: TierConversationKind,
		applies: func(_ ParsedPointer, ctx ResolveContext) bool {
			return ctx.ConversationID != "" && (ctx.Kind == MediaAudio || ctx.Kind == MediaVideo)
		},
		search: func(idx *AssetIndex, p ParsedPointer, ctx ResolveContext) []string {
			return idx.findUnderConversation(p.RawPrefix, ctx.ConversationID, string(ctx.Kind))
		},
	},
	{
		name: TierFileServiceUser,
		applies: func(p ParsedPointer, ctx ResolveContext) bool {
			return p.Scheme == "file-service" && ctx.Kind == MediaImage
		},
		search: func(idx *AssetIndex, p ParsedPointer, _ ResolveContext) []string {
			return idx.findUnderUserFolders(p.RawPrefix)
		},
	},
	{
		// Underscore pointers are ambiguously audio or video, whatever the declared kind.
		name: TierSediment,
		applies: func(p ParsedPointer, ctx ResolveContext) bool {
			return p.Scheme == "sediment" && ctx.ConversationID != ""
		},
		search: func(idx *AssetIndex, p ParsedPointer, ctx ResolveContext) []string {
			return idx.findUnderConversation(p.RawPrefix, ctx.ConversationID, "audio", "video")
		},
	},
	{
		name: TierConversationAV,
		applies: func(_ ParsedPointer, ctx ResolveContext) bool {
			return ctx.ConversationID != ""
		},
		search: func(idx *AssetIndex, p ParsedPointer, ctx ResolveContext) []string {
			return idx.findUnderConversation(p.RawPrefix, ctx.ConversationID, "audio", "video")
		},
	},
	{
		name:    TierUserFolders,
		applies: func(ParsedPointer, ResolveContext) bool { return true },
		search: func(idx *AssetIndex, p ParsedPointer, _ ResolveContext) []string {
			return idx.findUnderUserFolders(p.RawPrefix)
		},
	},
	{
		name:    TierAnywhere,
		applies: func(ParsedPointer, ResolveContext) bool { return true },
		search: func(idx *AssetIndex, p ParsedPointer, _ ResolveContext) []string {
			return idx.findAnywhere(p.RawPrefix)
		},
	},
}

// BuildAssetIndex indexes the given files. Empty paths are ignored; duplicates are kept.
func BuildAssetIndex(files []FileRef) *AssetIndex {
	idx := &AssetIndex{entries: make([]assetEntry, 0, len(files))}
	for _, f := range files {
		p := f.RelPath()
		if p == "" {
			continue
		}
		base := basename(p)
		idx.entries = append(idx.entries, assetEntry{
			path:      p,
			rooted:    "/" + p,
			lowerBase: strings.ToLower(base),
			baseLen:   utf8.RuneCountInString(base),
		})
	}
	return idx
}

// Len returns the number of indexed paths
func (idx *AssetIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Paths returns a copy of the indexed paths in input order
func (idx *AssetIndex) Paths() []string {
	if idx == nil {
		return nil
	}
	out := make([]string, len(idx.entries))
	for i, e := range idx.entries {
		out[i] = e.path
	}
	return out
}

// ResolvePointer returns candidate paths for p, best first. No match yields an empty slice.
func (idx *AssetIndex) ResolvePointer(p ParsedPointer, ctx ResolveContext) []string {
	paths, _ := idx.ResolveWithTier(p, ctx)
	return paths
}

// ResolveWithTier is ResolvePointer that also reports which tier produced the result
func (idx *AssetIndex) ResolveWithTier(p ParsedPointer, ctx ResolveContext) ([]string, string) {
	if idx == nil || p.RawPrefix == "" {
		return []string{}, TierNone
	}
	for _, tier := range resolveTiers {
		if !tier.applies(p, ctx) {
			continue
		}
		if found := tier.search(idx, p, ctx); len(found) > 0 {
			return found, tier.name
		}
	}
	return []string{}, TierNone
}

func (idx *AssetIndex) findAnywhere(prefix string) []string {
	return idx.collect(prefix, func(assetEntry) bool { return true })
}

func (idx *AssetIndex) findUnderUserFolders(prefix string) []string {
	return idx.collect(prefix, func(e assetEntry) bool {
		return strings.Contains(dirOf(e.rooted), "/user-")
	})
}

func (idx *AssetIndex) findUnderConversation(prefix, conversationID string, subdirs ...string) []string {
	needles := make([]string, len(subdirs))
	for i, sub := range subdirs {
		needles[i] = "/" + conversationID + "/" + sub + "/"
	}
	return idx.collect(prefix, func(e assetEntry) bool {
		for _, n := range needles {
			if strings.Contains(e.rooted, n) {
				return true
			}
		}
		return false
	})
}

func (idx *AssetIndex) collect(prefix string, keep func(assetEntry) bool) []string {
	lowerPrefix := strings.ToLower(prefix)
	var matches []assetEntry
	for _, e := range idx.entries {
		if strings.HasPrefix(e.lowerBase, lowerPrefix) && keep(e) {
			matches = append(matches, e)
		}
	}
	sortDeterministic(matches)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.path
	}
	return out
}

// sortDeterministic orders by basename length, then full path
func sortDeterministic(entries []assetEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].baseLen != entries[j].baseLen {
			return entries[i].baseLen < entries[j].baseLen
		}
		return entries[i].path < entries[j].path
	})
}

func basename(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// dirOf returns everything up to and including the last slash
func dirOf(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i+1]
	}
	return ""
}
