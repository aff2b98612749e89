package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/michaelito80us/lufy/logger"
)

// Store writes uploaded binaries under a public uploads root, namespaced by
// artist id. Filenames are generated by the caller and unique per upload, so
// concurrent uploads never collide.
type Store struct {
	root       string
	publicBase string
}

func NewStore(root, publicBase string) *Store {
	return &Store{
		root:       filepath.Clean(root),
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

func (s *Store) SaveAudio(artistID, filename string, r io.Reader) (string, error) {
	return s.save("music", artistID, filename, r)
}

func (s *Store) SaveCover(artistID, filename string, r io.Reader) (string, error) {
	return s.save("covers", artistID, filename, r)
}

func (s *Store) save(kind, artistID, filename string, r io.Reader) (string, error) {
	if filepath.Base(filename) != filename || strings.Contains(filename, "..") {
		return "", fmt.Errorf("invalid filename")
	}

	dir := filepath.Join(s.root, kind, artistID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst := filepath.Join(dir, filename)
	f, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	logger.Info(logger.EventUpload, "File stored", logger.Fields(
		"artist_id", artistID,
		"kind", kind,
		"filename", filename,
		"size", written,
	))

	return path.Join(s.publicBase, kind, artistID, filename), nil
}

// Remove deletes the file behind a public URL previously returned by a save.
// Unknown or out-of-root URLs are ignored.
func (s *Store) Remove(publicURL string) error {
	rel := strings.TrimPrefix(publicURL, s.publicBase+"/")
	if rel == publicURL || strings.Contains(rel, "..") {
		return nil
	}
	target := filepath.Join(s.root, filepath.FromSlash(rel))
	if !strings.HasPrefix(target, s.root+string(os.PathSeparator)) {
		return nil
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Root exposes the uploads root so the router can serve it as static content.
func (s *Store) Root() string { return s.root }
