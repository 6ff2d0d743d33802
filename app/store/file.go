package store

import (
	"context"
	"encoding/json"
	"os"
)

// KeyStore persists the key -> expiration-string mapping.
type KeyStore interface {
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, keys map[string]string) error
}

// FileStore keeps the whole mapping in a single JSON file. There is no
// locking: concurrent writers are last-writer-wins.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: create the file so later saves have a home.
			if err = s.write(map[string]string{}); err != nil {
				return nil, err
			}
			return map[string]string{}, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return map[string]string{}, nil
	}

	keys := make(map[string]string)
	if err = json.Unmarshal(data, &keys); err != nil {
		return nil, err
	}

	return keys, nil
}

func (s *FileStore) Save(_ context.Context, keys map[string]string) error {
	return s.write(keys)
}

func (s *FileStore) write(keys map[string]string) error {
	data, err := json.MarshalIndent(keys, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
