package reccache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/tripnexus/tripnexus/internal/domain/recommend"
)

// ValkeyStore persists recommendation lists in a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client) *ValkeyStore {
	return &ValkeyStore{client: client}
}

// Get implements recommend.Store.
func (s *ValkeyStore) Get(ctx context.Context, key string) ([]recommend.FinalRecommendation, bool, error) {
	cmd := s.client.B().Get().Key(key).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var recs []recommend.FinalRecommendation
	if err := json.Unmarshal([]byte(payload), &recs); err != nil {
		return nil, false, err
	}
	return recs, true, nil
}

// Save implements recommend.Store.
func (s *ValkeyStore) Save(ctx context.Context, key string, recs []recommend.FinalRecommendation, ttl time.Duration) error {
	payload, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

var _ recommend.Store = (*ValkeyStore)(nil)
