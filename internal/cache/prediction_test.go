package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/diabetes-risk-predictor/internal/config"
	"github.com/iliyamo/diabetes-risk-predictor/internal/model"
)

var obs = model.Observation{Pregnancies: 1, Glucose: 120, BloodPressure: 80, SkinThickness: 20, Insulin: 85, BMI: 25, DiabetesPedigree: 0.5, Age: 30}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestKeyStableAndSensitive(t *testing.T) {
	secret := []byte("k")
	k1 := Key(secret, "prediction", "m@1", obs)
	assert.Equal(t, k1, Key(secret, "prediction", "m@1", obs))
	assert.True(t, strings.HasPrefix(k1, "prediction:"))
	assert.Len(t, k1, len("prediction:")+64)

	assert.NotEqual(t, k1, Key(secret, "prediction", "m@2", obs), "model version must be part of the key")
	assert.NotEqual(t, k1, Key([]byte("other"), "prediction", "m@1", obs), "secret must be part of the key")

	o2 := obs
	o2.BMI = 25.1
	assert.NotEqual(t, k1, Key(secret, "prediction", "m@1", o2))
}

func TestNewPredictionsDisabled(t *testing.T) {
	assert.Nil(t, NewPredictions(config.CacheConfig{Enabled: true}, nil))

	_, rdb := newRedis(t)
	assert.Nil(t, NewPredictions(config.CacheConfig{Enabled: false}, rdb))

	c := NewPredictions(config.CacheConfig{Enabled: true, Prefix: "p"}, rdb)
	require.NotNil(t, c)
	assert.Equal(t, 10*time.Minute, c.ttl)
	assert.Len(t, c.secret, 32)
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Predictions
	_, ok, err := c.Get(context.Background(), "m", obs)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(context.Background(), "m", obs, model.Prediction{}))
}

func TestSetThenGet(t *testing.T) {
	mr, rdb := newRedis(t)
	c := NewPredictions(config.CacheConfig{Enabled: true, Prefix: "prediction", TTL: time.Minute, KeySecret: "k"}, rdb)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "m@1", obs)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must miss")

	want := model.Prediction{Label: model.LabelDiabetes, Probabilities: [2]float64{0.25, 0.75}}
	require.NoError(t, c.Set(ctx, "m@1", obs, want))

	got, ok, err := c.Get(ctx, "m@1", obs)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	key := Key([]byte("k"), "prediction", "m@1", obs)
	assert.Equal(t, time.Minute, mr.TTL(key))

	stored, err := mr.Get(key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":1,"probabilities":[0.25,0.75]}`, stored)
	assert.NotContains(t, stored, "120", "measurements must not be stored")

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "m@1", obs)
	require.NoError(t, err)
	assert.False(t, ok, "entry must expire")
}

func TestGetReportsDecodeAndRedisErrors(t *testing.T) {
	mr, rdb := newRedis(t)
	c := NewPredictions(config.CacheConfig{Enabled: true, Prefix: "prediction", KeySecret: "k"}, rdb)
	ctx := context.Background()

	require.NoError(t, mr.Set(Key([]byte("k"), "prediction", "m@1", obs), "not json"))
	_, ok, err := c.Get(ctx, "m@1", obs)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "cache decode")

	mr.Close()
	_, _, err = c.Get(ctx, "m@1", obs)
	assert.ErrorContains(t, err, "cache get")
	assert.ErrorContains(t, c.Set(ctx, "m@1", obs, model.Prediction{}), "cache set")
}
