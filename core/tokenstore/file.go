package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

// document is the on-disk layout of the file driver.
type document struct {
	Token    string          `json:"token"`
	Identity json.RawMessage `json:"user,omitempty"`
}

// FileStore persists credentials as a JSON document readable only by the owner.
// Every read goes to disk, so writes made by another process are picked up.
type FileStore struct {
	mu      sync.Mutex
	path    string
	closed  bool
	changes *broadcast.MemoryBroadcaster[Change]
}

// NewFileStore creates a file-backed store at path. The file is created on first save.
func NewFileStore(path string, bufferSize int) *FileStore {
	return &FileStore{
		path:    path,
		changes: broadcast.NewMemoryBroadcaster[Change](bufferSize),
	}
}

// Path returns the document location.
func (s *FileStore) Path() string {
	return s.path
}

// Token implements Store.
func (s *FileStore) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return "", err
	}
	return doc.Token, nil
}

// Identity implements Store.
func (s *FileStore) Identity(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	if len(doc.Identity) == 0 {
		return nil, nil
	}
	return []byte(doc.Identity), nil
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, token string, identity []byte) error {
	if token == "" {
		return ErrEmptyToken
	}

	s.mu.Lock()
	err := s.write(document{Token: token, Identity: identity})
	s.mu.Unlock()
	if err != nil {
		return err
	}

	notify(ctx, s.changes, Change{Key: KeyToken})
	return nil
}

// SaveIdentity implements Store.
func (s *FileStore) SaveIdentity(ctx context.Context, identity []byte) error {
	s.mu.Lock()
	doc, err := s.read()
	if err == nil {
		doc.Identity = identity
		err = s.write(doc)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	notify(ctx, s.changes, Change{Key: KeyIdentity})
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	err := os.Remove(s.path)
	s.mu.Unlock()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Join(ErrWriteStore, err)
	}

	notify(ctx, s.changes, Change{Key: KeyToken, Cleared: true})
	return nil
}

// Subscribe implements Store.
func (s *FileStore) Subscribe(ctx context.Context) broadcast.Subscriber[Change] {
	return s.changes.Subscribe(ctx)
}

// Close implements Store. The document stays on disk.
func (s *FileStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.changes.Close()
}

func (s *FileStore) read() (document, error) {
	if s.closed {
		return document{}, ErrStoreClosed
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return document{}, nil
	}
	if err != nil {
		return document{}, errors.Join(ErrReadStore, err)
	}
	if len(data) == 0 {
		return document{}, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document{}, errors.Join(ErrReadStore, err)
	}
	return doc, nil
}

// write replaces the document atomically via rename.
func (s *FileStore) write(doc document) error {
	if s.closed {
		return ErrStoreClosed
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Join(ErrWriteStore, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return errors.Join(ErrWriteStore, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Join(ErrWriteStore, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Join(ErrWriteStore, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(ErrWriteStore, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Join(ErrWriteStore, err)
	}
	return nil
}
