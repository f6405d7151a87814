package internal

import (
	"reflect"
	"testing"
)

func refs(paths ...string) []FileRef {
	out := make([]FileRef, len(paths))
	for i, p := range paths {
		out[i] = FileRef{Path: p}
	}
	return out
}

func TestBuildAssetIndex(t *testing.T) {
	idx := BuildAssetIndex([]FileRef{
		{Name: "a.png"},
		{Name: "ignored", Path: `dir\sub\b.png`},
		{},
		{Name: "a.png"},
	})

	if idx.Len() != 3 {
		t.Errorf("Len() = %d, want 3", idx.Len())
	}
	want := []string{"a.png", "dir/sub/b.png", "a.png"}
	if got := idx.Paths(); !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestResolvePointer_TieBreak(t *testing.T) {
	idx := BuildAssetIndex(refs("a/file-X-aaa.jpg", "b/file-X.jpg", "c/file-X-bbb.jpg"))
	p := ParsedPointer{Scheme: "unknown", RawPrefix: "file-X"}

	got := idx.ResolvePointer(p, ResolveContext{})
	want := []string{"b/file-X.jpg", "a/file-X-aaa.jpg", "c/file-X-bbb.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolvePointer() = %v, want %v", got, want)
	}
}

func TestResolvePointer_CaseInsensitivePrefix(t *testing.T) {
	idx := BuildAssetIndex(refs("x/FILE-abc-1.PNG", "x/notfile-abc.png"))
	got := idx.ResolvePointer(*ParseAssetPointer("file-service://file-ABC"), ResolveContext{Kind: MediaImage})
	if !reflect.DeepEqual(got, []string{"x/FILE-abc-1.PNG"}) {
		t.Errorf("ResolvePointer() = %v", got)
	}
}

func TestResolveWithTier(t *testing.T) {
	files := refs(
		"user-1/file_Y-generic.wav",
		"conv1/audio/file_Y-conv.wav",
		"conv1/video/file_Z-clip.mp4",
		"user-1/file-IMG-gen.png",
		"misc/file-IMG.png",
		"misc/file-ONLY.txt",
		"other/audio/file_Q.wav",
		"user-1/Photo-MiXeD-01.JPG",
		"misc/Notes-CaSe.TXT",
	)
	idx := BuildAssetIndex(files)

	tests := []struct {
		name     string
		pointer  string
		ctx      ResolveContext
		wantTier string
		wantHead string
	}{
		{
			name:     "conversation scoped audio beats user folder",
			pointer:  "sediment://file_Y",
			ctx:      ResolveContext{ConversationID: "conv1", Kind: MediaAudio},
			wantTier: TierConversationKind,
			wantHead: "conv1/audio/file_Y-conv.wav",
		},
		{
			name:     "sediment searches audio and video regardless of kind",
			pointer:  "sediment://file_Z",
			ctx:      ResolveContext{ConversationID: "conv1", Kind: MediaAudio},
			wantTier: TierSediment,
			wantHead: "conv1/video/file_Z-clip.mp4",
		},
		{
			name:     "file-service image prefers user folders",
			pointer:  "file-service://file-IMG",
			ctx:      ResolveContext{ConversationID: "conv1", Kind: MediaImage},
			wantTier: TierFileServiceUser,
			wantHead: "user-1/file-IMG-gen.png",
		},
		{
			name:     "generic conversation audio and video",
			pointer:  "other://file_Z",
			ctx:      ResolveContext{ConversationID: "conv1", Kind: MediaImage},
			wantTier: TierConversationAV,
			wantHead: "conv1/video/file_Z-clip.mp4",
		},
		{
			name:     "user folders without conversation",
			pointer:  "sediment://file_Y",
			ctx:      ResolveContext{Kind: MediaAudio},
			wantTier: TierUserFolders,
			wantHead: "user-1/file_Y-generic.wav",
		},
		{
			name:     "anywhere",
			pointer:  "file-service://file-ONLY",
			ctx:      ResolveContext{ConversationID: "conv1", Kind: MediaImage},
			wantTier: TierAnywhere,
			wantHead: "misc/file-ONLY.txt",
		},
		{
			name:     "other conversation folder is only reachable anywhere",
			pointer:  "sediment://file_Q",
			ctx:      ResolveContext{ConversationID: "conv1", Kind: MediaAudio},
			wantTier: TierAnywhere,
			wantHead: "other/audio/file_Q.wav",
		},
		{
			name:     "bare mixed-case pointer reaches user folders",
			pointer:  "PHOTO-mixed",
			ctx:      ResolveContext{ConversationID: "conv1", Kind: MediaImage},
			wantTier: TierUserFolders,
			wantHead: "user-1/Photo-MiXeD-01.JPG",
		},
		{
			name:     "bare pointer falls through to anywhere",
			pointer:  "notes-case",
			wantTier: TierAnywhere,
			wantHead: "misc/Notes-CaSe.TXT",
		},
		{
			name:     "no match",
			pointer:  "file-service://file-NOPE",
			ctx:      ResolveContext{Kind: MediaImage},
			wantTier: TierNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, tier := idx.ResolveWithTier(*ParseAssetPointer(tt.pointer), tt.ctx)
			if tier != tt.wantTier {
				t.Errorf("tier = %q, want %q", tier, tt.wantTier)
			}
			if tt.wantHead == "" {
				if got == nil || len(got) != 0 {
					t.Errorf("ResolveWithTier() = %#v, want empty slice", got)
				}
				return
			}
			if len(got) == 0 || got[0] != tt.wantHead {
				t.Errorf("ResolveWithTier() = %v, want head %q", got, tt.wantHead)
			}
		})
	}
}

func TestResolvePointer_UnionIsSorted(t *testing.T) {
	idx := BuildAssetIndex(refs("c/video/file_S-long-name.mp4", "c/audio/file_S-b.wav", "c/audio/file_S-a.wav"))
	got := idx.ResolvePointer(ParsedPointer{Scheme: "sediment", RawPrefix: "file_S"}, ResolveContext{ConversationID: "c", Kind: MediaImage})
	want := []string{"c/audio/file_S-a.wav", "c/audio/file_S-b.wav", "c/video/file_S-long-name.mp4"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ResolvePointer() = %v, want %v", got, want)
	}
}

func TestResolvePointer_RootLevelFolders(t *testing.T) {
	idx := BuildAssetIndex(refs("user-abc/file-R.png", "conv9/audio/file_R.wav"))

	if got := idx.ResolvePointer(ParsedPointer{Scheme: "file-service", RawPrefix: "file-R"}, ResolveContext{Kind: MediaImage}); len(got) != 1 || got[0] != "user-abc/file-R.png" {
		t.Errorf("user folder at root: %v", got)
	}
	if got := idx.ResolvePointer(ParsedPointer{Scheme: "sediment", RawPrefix: "file_R"}, ResolveContext{ConversationID: "conv9", Kind: MediaAudio}); len(got) != 1 || got[0] != "conv9/audio/file_R.wav" {
		t.Errorf("conversation folder at root: %v", got)
	}
}

func TestResolvePointer_EmptyIndexAndPrefix(t *testing.T) {
	var nilIdx *AssetIndex
	if got := nilIdx.ResolvePointer(ParsedPointer{RawPrefix: "x"}, ResolveContext{}); len(got) != 0 {
		t.Errorf("nil index resolved %v", got)
	}
	idx := BuildAssetIndex(refs("a.png"))
	if got := idx.ResolvePointer(ParsedPointer{Scheme: "unknown"}, ResolveContext{}); len(got) != 0 {
		t.Errorf("empty prefix resolved %v", got)
	}
}
