package util

import (
	"sync"

	"pixsteg/cryptography"
)

// Storage groups file names by the hash of their content.
type Storage struct {
	storage map[string][]string
	mtx     sync.Mutex
}

func NewStorage() *Storage {
	return &Storage{
		storage: map[string][]string{},
	}
}

// this function hashes the content we are storing in `name` and returns
// the hash.
func (s *Storage) Add(name string, content []byte) string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	hash := cryptography.Hash(content)
	if hash != "" {
		s.storage[hash] = append(s.storage[hash], name)
	}
	return hash
}

func (s *Storage) FindHash(hash string) []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return append([]string(nil), s.storage[hash]...)
}
