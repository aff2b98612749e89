package middleware

import (
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

func audioHeader(filename string, size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	if contentType != "" {
		header.Set("Content-Type", contentType)
	}
	return &multipart.FileHeader{
		Filename: filename,
		Size:     size,
		Header:   header,
	}
}

func TestValidateUploadedFile(t *testing.T) {
	cfg := AudioUploadConfig(50)

	cases := []struct {
		name    string
		file    *multipart.FileHeader
		wantErr bool
	}{
		{"valid mp3", audioHeader("song.mp3", 1024, "audio/mpeg"), false},
		{"uppercase extension", audioHeader("song.MP3", 1024, "audio/mpeg"), false},
		{"empty file", audioHeader("song.mp3", 0, "audio/mpeg"), true},
		{"too large", audioHeader("song.mp3", 51*1024*1024, "audio/mpeg"), true},
		{"wrong extension", audioHeader("song.exe", 1024, "audio/mpeg"), true},
		{"path traversal", audioHeader("../etc/passwd.mp3", 1024, "audio/mpeg"), true},
		{"wrong mime", audioHeader("song.mp3", 1024, "application/x-executable"), true},
		{"no declared mime", audioHeader("song.mp3", 1024, ""), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUploadedFile(tc.file, cfg)
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"song.mp3":           "song.mp3",
		"/etc/passwd":        "passwd",
		"a<b>c.mp3":          "a_b_c.mp3",
		"weird|name?.wav":    "weird_name_.wav",
		"trailing:colon.mp3": "trailing_colon.mp3",
	}

	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeFilenameTruncatesLongNames(t *testing.T) {
	long := strings.Repeat("a", 300) + ".mp3"
	got := SanitizeFilename(long)
	if len(got) > 255 {
		t.Errorf("expected truncated name, got %d chars", len(got))
	}
	if !strings.HasSuffix(got, ".mp3") {
		t.Errorf("expected extension to survive truncation, got %q", got)
	}
}
