package middleware

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// FileUploadConfig whitelists what an upload endpoint accepts.
type FileUploadConfig struct {
	MaxFileSize       int64
	AllowedMimeTypes  []string
	AllowedExtensions []string
}

func AudioUploadConfig(maxSizeMB int) *FileUploadConfig {
	return &FileUploadConfig{
		MaxFileSize: int64(maxSizeMB) * 1024 * 1024,
		AllowedMimeTypes: []string{
			"audio/mpeg",
			"audio/mp3",
			"audio/wav",
			"audio/x-wav",
			"audio/flac",
			"audio/aac",
			"audio/mp4",
		},
		AllowedExtensions: []string{
			".mp3",
			".wav",
			".flac",
			".aac",
			".m4a",
		},
	}
}

func ImageUploadConfig(maxSizeMB int) *FileUploadConfig {
	return &FileUploadConfig{
		MaxFileSize: int64(maxSizeMB) * 1024 * 1024,
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/png",
			"image/webp",
		},
		AllowedExtensions: []string{
			".jpg",
			".jpeg",
			".png",
			".webp",
		},
	}
}

// ValidateUploadedFile checks size, extension, filename, and the declared
// MIME type against the whitelist.
func ValidateUploadedFile(file *multipart.FileHeader, config *FileUploadConfig) error {
	if file.Size > config.MaxFileSize {
		return fmt.Errorf("file size exceeds maximum allowed size of %d bytes", config.MaxFileSize)
	}

	if file.Size == 0 {
		return fmt.Errorf("file is empty")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !contains(config.AllowedExtensions, ext) {
		return fmt.Errorf("file extension %s is not allowed", ext)
	}

	filename := filepath.Base(file.Filename)
	if filename != file.Filename || strings.Contains(filename, "..") {
		return fmt.Errorf("invalid filename")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !contains(config.AllowedMimeTypes, contentType) {
		return fmt.Errorf("file type %s is not allowed", contentType)
	}

	return nil
}

// ValidateFileContent sniffs the first 512 bytes so an executable cannot be
// smuggled in under an audio or image extension.
func ValidateFileContent(file multipart.File, expectedMimePrefix string) error {
	buffer := make([]byte, 512)
	_, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return err
	}

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}

	detectedType := http.DetectContentType(buffer)
	if strings.HasPrefix(detectedType, expectedMimePrefix) {
		return nil
	}
	// Many valid audio containers sniff as application/octet-stream.
	if expectedMimePrefix == "audio/" && detectedType == "application/octet-stream" {
		return nil
	}
	return fmt.Errorf("file content does not match expected type")
}

// SanitizeFilename strips path components and dangerous characters.
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)

	dangerous := []string{"..", "/", "\\", "<", ">", ":", "\"", "|", "?", "*"}
	for _, char := range dangerous {
		filename = strings.ReplaceAll(filename, char, "_")
	}

	if len(filename) > 255 {
		ext := filepath.Ext(filename)
		filename = filename[:255-len(ext)] + ext
	}

	return filename
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
