// Package storage persists API sessions on disk. Each named session is
// sealed individually, so listing names never touches token material.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gridapp/grid-go/internal/crypto"
	"github.com/gridapp/grid-go/pkg/rest"
)

const storeVersion = 1

// storeFile is the on-disk format.
type storeFile struct {
	Version   int                       `json:"version"`
	Sessions  map[string]*sealedSession `json:"sessions"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// sealedSession is one named session on disk.
type sealedSession struct {
	Blob      string    `json:"blob"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionStore keeps encrypted sessions in a single file.
type SessionStore struct {
	path     string
	sealer   *crypto.Sealer
	sessions map[string]*sealedSession
}

// NewSessionStore opens (or prepares to create) the store at path,
// sealed under the given passphrase.
func NewSessionStore(path, passphrase string) (*SessionStore, error) {
	if err := crypto.ValidatePassphrase(passphrase); err != nil {
		return nil, fmt.Errorf("invalid passphrase: %w", err)
	}

	store := &SessionStore{
		path:     path,
		sealer:   crypto.NewSealer(passphrase),
		sessions: make(map[string]*sealedSession),
	}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

// Save seals a session under the given name and writes the store to disk.
func (s *SessionStore) Save(name string, session *rest.Session) error {
	if name == "" {
		return fmt.Errorf("session name cannot be empty")
	}
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	plaintext, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	blob, err := s.sealer.Seal(plaintext)
	if err != nil {
		return fmt.Errorf("failed to seal session: %w", err)
	}

	s.sessions[name] = &sealedSession{Blob: blob, UpdatedAt: time.Now()}
	return s.flush()
}

// Load opens the named session. A wrong store passphrase surfaces here,
// not at construction.
func (s *SessionStore) Load(name string) (*rest.Session, error) {
	sealed, exists := s.sessions[name]
	if !exists {
		return nil, fmt.Errorf("session '%s' not found", name)
	}

	plaintext, err := s.sealer.Open(sealed.Blob)
	if err != nil {
		return nil, fmt.Errorf("failed to open session '%s': %w", name, err)
	}
	var session rest.Session
	if err := json.Unmarshal(plaintext, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session '%s': %w", name, err)
	}
	return &session, nil
}

// Delete removes the named session and writes the store to disk.
func (s *SessionStore) Delete(name string) error {
	if _, exists := s.sessions[name]; !exists {
		return fmt.Errorf("session '%s' not found", name)
	}
	delete(s.sessions, name)
	return s.flush()
}

// List returns the stored session names, sorted.
func (s *SessionStore) List() []string {
	names := make([]string, 0, len(s.sessions))
	for name := range s.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *SessionStore) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read session store: %w", err)
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse session store: %w", err)
	}
	if file.Version != storeVersion {
		return fmt.Errorf("unsupported session store version: %d", file.Version)
	}
	if file.Sessions != nil {
		s.sessions = file.Sessions
	}
	return nil
}

func (s *SessionStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	file := storeFile{
		Version:   storeVersion,
		Sessions:  s.sessions,
		UpdatedAt: time.Now(),
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session store: %w", err)
	}

	// Write through a temp file so a crash never truncates the store.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session store: %w", err)
	}
	return nil
}
