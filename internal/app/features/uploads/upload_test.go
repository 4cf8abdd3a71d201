package uploads

import (
	"strings"
	"testing"
)

func TestClassifySubdir(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/jpeg", "images"},
		{"image/png", "images"},
		{"IMAGE/PNG", "images"},
		{"image/webp; charset=binary", "images"},
		{"application/pdf", "documents"},
		{"application/msword", "documents"},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", "documents"},
		{"text/csv", "documents"},
		{"application/zip", "others"},
		{"video/mp4", "others"},
		{"", "others"},
	}
	for _, tt := range tests {
		if got := classifySubdir(tt.contentType); got != tt.want {
			t.Errorf("classifySubdir(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "bottle.jpg", "bottle.jpg"},
		{"spaces and unicode", "château margaux.jpg", "ch__teau_margaux.jpg"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"empty", "", "file"},
		{"only bad chars", "<>|", "___"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeFilename(tt.in); got != tt.want {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_TruncatesKeepingExtension(t *testing.T) {
	in := strings.Repeat("a", 200) + ".jpg"
	got := sanitizeFilename(in)
	if len(got) > 100 {
		t.Errorf("length %d, want <= 100", len(got))
	}
	if !strings.HasSuffix(got, ".jpg") {
		t.Errorf("extension lost: %q", got)
	}
}

func TestStoredName_UniquePrefix(t *testing.T) {
	a := storedName("bottle.jpg")
	b := storedName("bottle.jpg")
	if a == b {
		t.Errorf("stored names collide: %q", a)
	}
	if !strings.HasSuffix(a, "-bottle.jpg") {
		t.Errorf("original name not preserved: %q", a)
	}
}
