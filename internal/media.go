package internal

import (
	"path"
	"strings"
)

// MediaOther is returned by ClassifyMedia for anything that is not image, audio or video
const MediaOther MediaKind = "other"

var extMime = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

// MimeForPath guesses a MIME type from a file extension; "" when unknown
func MimeForPath(p string) string {
	return extMime[strings.ToLower(path.Ext(stripQuery(p)))]
}

// ClassifyMedia returns the media class of a source by MIME type, falling back
// to its extension (query and fragment ignored).
func ClassifyMedia(src, mime string) MediaKind {
	m := strings.ToLower(mime)
	switch {
	case strings.HasPrefix(m, "image/"):
		return MediaImage
	case strings.HasPrefix(m, "audio/"):
		return MediaAudio
	case strings.HasPrefix(m, "video/"):
		return MediaVideo
	}

	guessed := MimeForPath(strings.ToLower(src))
	if guessed == "" {
		return MediaOther
	}
	return MediaKind(guessed[:strings.Index(guessed, "/")])
}

// IsSafeSrc reports whether src may be placed in a media element. javascript:,
// blob: and non-media data: URLs are refused.
func IsSafeSrc(src string) bool {
	s := strings.ToLower(strings.TrimSpace(src))
	if s == "" {
		return false
	}
	switch {
	case strings.HasPrefix(s, "javascript:"), strings.HasPrefix(s, "blob:"):
		return false
	case strings.HasPrefix(s, "data:"):
		return strings.HasPrefix(s, "data:image/") ||
			strings.HasPrefix(s, "data:audio/") ||
			strings.HasPrefix(s, "data:video/")
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"), strings.HasPrefix(s, "//"):
		return true
	}
	if strings.Contains(s, "://") || strings.HasPrefix(s, "vbscript:") {
		return false
	}
	c := s[0]
	return c == '/' || c == '.' || c == '_' || c == '-' || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// Renderable reports whether the item points at a real, safe file
func (m MediaItem) Renderable() bool {
	return m.Resolved && IsSafeSrc(m.Src)
}

func stripQuery(s string) string {
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		return s[:i]
	}
	return s
}
