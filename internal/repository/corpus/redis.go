package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/rueidis"

	"github.com/painaidee/discovery/internal/domain"
)

// StoreConfig holds connection parameters for the backing Redis store.
type StoreConfig struct {
	Addrs     []string
	Username  string
	Password  string
	KeyPrefix string
}

// Store reads corpus snapshots from a Redis-compatible backend via rueidis.
// The ingestion pipeline writes post and location documents as JSON under
// <prefix>post:<id> and <prefix>location:<id>; the engine only reads them.
type Store struct {
	client rueidis.Client
	prefix string
}

// NewStore connects to the backing store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &Store{client: client, prefix: cfg.KeyPrefix}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	cmd := s.client.B().Ping().Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close shuts down the client.
func (s *Store) Close() {
	s.client.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for store: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// LoadSnapshot reads every post and location document into an immutable
// snapshot. Documents are ordered by key so identical store contents always
// produce an identical corpus order.
func (s *Store) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	var posts []domain.Post
	err := loadAll(ctx, s, s.prefix+"post:*", func(d postDTO) {
		posts = append(posts, d.toDomain())
	})
	if err != nil {
		return nil, fmt.Errorf("%w: load posts: %w", domain.ErrCorpusUnavailable, err)
	}

	var locations []domain.Location
	err = loadAll(ctx, s, s.prefix+"location:*", func(d locationDTO) {
		locations = append(locations, d.toDomain())
	})
	if err != nil {
		return nil, fmt.Errorf("%w: load locations: %w", domain.ErrCorpusUnavailable, err)
	}

	return NewSnapshot(posts, locations), nil
}

func loadAll[T any](ctx context.Context, s *Store, pattern string, add func(T)) error {
	keys, err := s.scan(ctx, pattern)
	if err != nil {
		return err
	}
	sort.Strings(keys)

	for _, key := range keys {
		data, err := s.get(ctx, key)
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		var dto T
		if err := json.Unmarshal(data, &dto); err != nil {
			return fmt.Errorf("parse %s: %w", key, err)
		}
		add(dto)
	}
	return nil
}

func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		cmd := s.client.B().Scan().Cursor(cursor).Match(pattern).Count(100).Build()
		res, err := s.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		keys = append(keys, res.Elements...)
		cursor = res.Cursor
		if cursor == 0 {
			return keys, nil
		}
	}
}

func (s *Store) get(ctx context.Context, key string) ([]byte, error) {
	cmd := s.client.B().Get().Key(key).Build()
	data, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return data, nil
}
