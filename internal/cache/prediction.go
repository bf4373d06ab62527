// Package cache keeps recent classifier outputs in Redis so that
// resubmitting the same measurements does not rerun inference.  Only the
// label and the two probabilities are stored; the measurements themselves
// never reach Redis, not even as a plain hash.
package cache

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/diabetes-risk-predictor/internal/config"
	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

// Predictions is a Redis-backed prediction cache.  A nil *Predictions
// misses on every Get and ignores Set.
type Predictions struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	secret []byte
}

// entry is what is stored under a key.
type entry struct {
	Label         int        `json:"label"`
	Probabilities [2]float64 `json:"probabilities"`
}

// NewPredictions returns nil when caching is off so callers can keep a
// single code path.  Without a configured key secret a random one is
// drawn, which limits sharing to this process.
func NewPredictions(cfg config.CacheConfig, rdb *redis.Client) *Predictions {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	secret := []byte(cfg.KeySecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}
	return &Predictions{rdb: rdb, ttl: ttl, prefix: cfg.Prefix, secret: secret}
}

// Key builds a stable key from the model version and the observation's
// feature vector, keyed by secret.  Two observations share a key only if
// every feature is bit-for-bit the same under the same model.
func Key(secret []byte, prefix, modelVersion string, o model.Observation) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte("model:" + modelVersion + ":x"))
	for _, v := range o.Features() {
		mac.Write([]byte(":" + strconv.FormatFloat(v, 'g', -1, 64)))
	}
	return fmt.Sprintf("%s:%x", prefix, mac.Sum(nil))
}

// Get returns the cached prediction for o, if any.
func (p *Predictions) Get(ctx context.Context, modelVersion string, o model.Observation) (model.Prediction, bool, error) {
	if p == nil {
		return model.Prediction{}, false, nil
	}
	bs, err := p.rdb.Get(ctx, Key(p.secret, p.prefix, modelVersion, o)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Prediction{}, false, nil
	}
	if err != nil {
		return model.Prediction{}, false, fmt.Errorf("cache get: %w", err)
	}
	var e entry
	if err := json.Unmarshal(bs, &e); err != nil {
		return model.Prediction{}, false, fmt.Errorf("cache decode: %w", err)
	}
	return model.Prediction{Label: e.Label, Probabilities: e.Probabilities}, true, nil
}

// Set stores pred for o under modelVersion.
func (p *Predictions) Set(ctx context.Context, modelVersion string, o model.Observation, pred model.Prediction) error {
	if p == nil {
		return nil
	}
	bs, err := json.Marshal(entry{Label: pred.Label, Probabilities: pred.Probabilities})
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := p.rdb.SetEx(ctx, Key(p.secret, p.prefix, modelVersion, o), bs, p.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
