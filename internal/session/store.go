package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/hkdf"
)

// Store keys used by the session manager.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("session: entry not found")

// Store persists small string entries across process restarts. Implementations
// must treat unreadable state as empty rather than failing.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

const storeKeyInfo = "paydash session store v1"

// FileStore keeps entries in a single AES-GCM encrypted JSON file. The file
// key is derived from the configured secret via HKDF. A missing, corrupt or
// undecryptable file behaves as an empty store.
type FileStore struct {
	mu   sync.Mutex
	path string
	key  []byte
}

// NewFileStore derives the encryption key and returns the store. The file is
// created lazily on first Set.
func NewFileStore(path, secret string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("session: store path is required")
	}

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(storeKeyInfo))
	key := make([]byte, 32)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, err
	}

	return &FileStore{path: path, key: key}, nil
}

// Get returns the stored value for key or ErrNotFound.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	value, ok := entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set writes the value for key, creating the file with 0600 permissions.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	entries[key] = value
	return s.write(entries)
}

// Delete removes the entry for key. Deleting an absent key is a no-op.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.read()
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.write(entries)
}

// read loads and decrypts the file. Any failure yields an empty map: a store
// we cannot read is a store with no session in it.
func (s *FileStore) read() map[string]string {
	entries := map[string]string{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return entries
	}

	plaintext, err := s.decrypt(data)
	if err != nil {
		return entries
	}
	if err := json.Unmarshal(plaintext, &entries); err != nil {
		return map[string]string{}
	}
	return entries
}

func (s *FileStore) write(entries map[string]string) error {
	plaintext, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	sealed, err := s.encrypt(plaintext)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, sealed, 0o600)
}

func (s *FileStore) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	// Nonce is prepended so the file is self-contained.
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *FileStore) decrypt(sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(s.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("session: sealed payload too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
