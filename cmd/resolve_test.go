package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/chat-explorer/internal"
	"github.com/iksnae/chat-explorer/testutil"
)

func TestResolveCommand(t *testing.T) {
	dataDir := testutil.CreateMockDataDir(t)

	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "image pointer",
			args: []string{"resolve", "alpha", "file-service://file-PIC123", "--kind", "image"},
			want: []string{internal.TierFileServiceUser, "user-abc/file-PIC123-photo.png"},
		},
		{
			name: "audio pointer with conversation",
			args: []string{"resolve", "alpha", "sediment://file_AUD9", "--kind", "audio", "--conversation", "conv-branch"},
			want: []string{internal.TierConversationKind, "conv-branch/audio/file_AUD9-0001.wav"},
		},
		{
			name: "bare prefix",
			args: []string{"resolve", "alpha", "file_AUD9", "--all"},
			want: []string{"unknown", "file_AUD9-0001.wav"},
		},
		{
			name:    "no match",
			args:    []string{"resolve", "alpha", "file-service://file-NOPE"},
			want:    []string{"No matching file"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"--data-dir", dataDir}, tt.args...)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolve error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}
