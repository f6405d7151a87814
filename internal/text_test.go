package internal

import (
	"testing"
	"time"
	"unicode/utf8"
)

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short", in: "hello", max: 10, want: "hello"},
		{name: "exact", in: "hello", max: 5, want: "hello"},
		{name: "odd budget", in: "abcdefghij", max: 5, want: "ab…ij"},
		{name: "even budget", in: "abcdefghij", max: 6, want: "abc…ij"},
		{name: "tiny", in: "abcdefghij", max: 3, want: "abc"},
		{name: "runes", in: "ééééééééé", max: 5, want: "éé…éé"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMiddle(tt.in, tt.max)
			if got != tt.want {
				t.Errorf("TruncateMiddle() = %q, want %q", got, tt.want)
			}
			if utf8.RuneCountInString(got) > tt.max {
				t.Errorf("result longer than %d runes", tt.max)
			}
		})
	}

	long := "0123456789012345678901234567890123456789012345"
	if got := TruncateMiddle(long, 0); utf8.RuneCountInString(got) != 40 {
		t.Errorf("default width = %d runes, want 40", utf8.RuneCountInString(got))
	}
}

func TestFormatEpoch(t *testing.T) {
	if got := FormatEpoch(nil); got != "" {
		t.Errorf("FormatEpoch(nil) = %q", got)
	}
	v := 1700000000.0
	want := time.Unix(1700000000, 0).Local().Format(time.DateTime)
	if got := FormatEpoch(&v); got != want {
		t.Errorf("FormatEpoch() = %q, want %q", got, want)
	}
}
