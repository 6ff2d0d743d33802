package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-keys/app/entity"
	"github.com/vibast-solutions/ms-go-keys/app/store"
)

var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrKeyExpired      = errors.New("key expired")
	ErrMalformedExpiry = errors.New("stored expiration is malformed")
)

type KeyService struct {
	store store.KeyStore
	ttl   time.Duration
}

func NewKeyService(keyStore store.KeyStore, ttl time.Duration) *KeyService {
	return &KeyService{store: keyStore, ttl: ttl}
}

// Issue generates a fresh access key and appends it to the store. Storage
// failures are logged, not returned: the caller always gets a usable key,
// it just may not survive a restart.
func (s *KeyService) Issue(ctx context.Context) *entity.AccessKey {
	key := &entity.AccessKey{
		ID:        strings.ReplaceAll(uuid.New().String(), "-", ""),
		ExpiresAt: time.Now().UTC().Add(s.ttl).Truncate(time.Second),
	}

	keys := s.loadOrEmpty(ctx)
	keys[key.ID] = key.ExpiresAtString()
	if err := s.store.Save(ctx, keys); err != nil {
		logrus.WithError(err).Warn("Failed to persist issued key")
	}

	return key
}

// Validate looks up id and checks it against the current time. An unreadable
// store degrades to an empty mapping, so storage trouble reads as not-found
// rather than an internal failure.
func (s *KeyService) Validate(ctx context.Context, id string) (*entity.AccessKey, error) {
	id = strings.TrimSpace(id)

	keys := s.loadOrEmpty(ctx)
	raw, ok := keys[id]
	if !ok {
		return nil, ErrKeyNotFound
	}

	expiresAt, err := entity.ParseExpiresAt(raw)
	if err != nil {
		logrus.WithField("key", id).WithError(err).Error("Stored expiration is unparseable")
		return nil, ErrMalformedExpiry
	}

	key := &entity.AccessKey{ID: id, ExpiresAt: expiresAt}
	if key.Expired(time.Now().UTC()) {
		return nil, ErrKeyExpired
	}

	return key, nil
}

// List returns the raw stored mapping, malformed entries included.
func (s *KeyService) List(ctx context.Context) (map[string]string, error) {
	return s.store.Load(ctx)
}

// Purge drops expired and malformed entries from the store and reports how
// many were removed. The HTTP surface never deletes keys; this backs the
// admin CLI only.
func (s *KeyService) Purge(ctx context.Context) (int, error) {
	keys, err := s.store.Load(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	removed := 0
	for id, raw := range keys {
		expiresAt, err := entity.ParseExpiresAt(raw)
		if err == nil && now.Before(expiresAt) {
			continue
		}
		delete(keys, id)
		removed++
	}

	if removed == 0 {
		return 0, nil
	}
	if err = s.store.Save(ctx, keys); err != nil {
		return 0, err
	}

	return removed, nil
}

func (s *KeyService) loadOrEmpty(ctx context.Context) map[string]string {
	keys, err := s.store.Load(ctx)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load key store, continuing with empty mapping")
		return map[string]string{}
	}
	return keys
}
