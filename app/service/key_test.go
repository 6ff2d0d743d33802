package service_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-keys/app/entity"
	"github.com/vibast-solutions/ms-go-keys/app/service"
)

type fakeStore struct {
	keys    map[string]string
	loadErr error
	saveErr error
	saves   int
}

func (f *fakeStore) Load(_ context.Context) (map[string]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	copied := make(map[string]string, len(f.keys))
	for id, raw := range f.keys {
		copied[id] = raw
	}
	return copied, nil
}

func (f *fakeStore) Save(_ context.Context, keys map[string]string) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.keys = keys
	return nil
}

func newServiceWithStore(keys map[string]string) (*service.KeyService, *fakeStore) {
	if keys == nil {
		keys = map[string]string{}
	}
	fs := &fakeStore{keys: keys}
	return service.NewKeyService(fs, 24*time.Hour), fs
}

var keyIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestKeyServiceIssueThenValidate(t *testing.T) {
	svc, fs := newServiceWithStore(nil)

	key := svc.Issue(context.Background())
	if !keyIDPattern.MatchString(key.ID) {
		t.Fatalf("expected 32 hex chars without dashes, got %q", key.ID)
	}

	wantExpiry := time.Now().UTC().Add(24 * time.Hour)
	if diff := wantExpiry.Sub(key.ExpiresAt); diff < 0 || diff > time.Minute {
		t.Fatalf("expected expiry ~24h out, got %v", key.ExpiresAt)
	}

	if fs.keys[key.ID] != key.ExpiresAtString() {
		t.Fatalf("expected persisted expiry %q, got %q", key.ExpiresAtString(), fs.keys[key.ID])
	}

	got, err := svc.Validate(context.Background(), key.ID)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.ID != key.ID || !got.ExpiresAt.Equal(key.ExpiresAt) {
		t.Fatalf("validate returned %#v, issued %#v", got, key)
	}
}

func TestKeyServiceValidateUnknownKey(t *testing.T) {
	svc, _ := newServiceWithStore(nil)

	_, err := svc.Validate(context.Background(), "nope")
	if !errors.Is(err, service.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestKeyServiceValidateExpiredKey(t *testing.T) {
	past := (&entity.AccessKey{ExpiresAt: time.Now().UTC().Add(-time.Hour)}).ExpiresAtString()
	svc, _ := newServiceWithStore(map[string]string{"stale": past})

	_, err := svc.Validate(context.Background(), "stale")
	if !errors.Is(err, service.ErrKeyExpired) {
		t.Fatalf("expected ErrKeyExpired, got %v", err)
	}
}

func TestKeyServiceValidateMalformedExpiry(t *testing.T) {
	svc, _ := newServiceWithStore(map[string]string{"broken": "not-a-timestamp"})

	_, err := svc.Validate(context.Background(), "broken")
	if !errors.Is(err, service.ErrMalformedExpiry) {
		t.Fatalf("expected ErrMalformedExpiry, got %v", err)
	}
}

func TestKeyServiceIssueSurvivesSaveFailure(t *testing.T) {
	fs := &fakeStore{keys: map[string]string{}, saveErr: errors.New("disk full")}
	svc := service.NewKeyService(fs, 24*time.Hour)

	key := svc.Issue(context.Background())
	if key == nil || key.ID == "" {
		t.Fatalf("expected a key despite save failure")
	}
}

func TestKeyServiceValidateDegradesOnLoadFailure(t *testing.T) {
	fs := &fakeStore{loadErr: errors.New("permission denied")}
	svc := service.NewKeyService(fs, 24*time.Hour)

	_, err := svc.Validate(context.Background(), "whatever")
	if !errors.Is(err, service.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound on unreadable store, got %v", err)
	}
}

func TestKeyServicePurgeRemovesExpiredAndMalformed(t *testing.T) {
	now := time.Now().UTC()
	live := (&entity.AccessKey{ExpiresAt: now.Add(time.Hour)}).ExpiresAtString()
	stale := (&entity.AccessKey{ExpiresAt: now.Add(-time.Hour)}).ExpiresAtString()
	svc, fs := newServiceWithStore(map[string]string{
		"live":   live,
		"stale":  stale,
		"broken": "not-a-timestamp",
	})

	removed, err := svc.Purge(context.Background())
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	if len(fs.keys) != 1 || fs.keys["live"] != live {
		t.Fatalf("expected only the live key to remain, got %#v", fs.keys)
	}
}

func TestKeyServicePurgeSkipsSaveWhenNothingExpired(t *testing.T) {
	live := (&entity.AccessKey{ExpiresAt: time.Now().UTC().Add(time.Hour)}).ExpiresAtString()
	svc, fs := newServiceWithStore(map[string]string{"live": live})

	removed, err := svc.Purge(context.Background())
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected nothing removed, got %d", removed)
	}
	if fs.saves != 0 {
		t.Fatalf("expected no save when nothing was removed, got %d", fs.saves)
	}
}
