package redisrepo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return rdb, mr
}

type item struct {
	Name string `json:"name"`
	N    int    `json:"n"`
}

func TestGetOrSetJSONLoadsOnce(t *testing.T) {
	rdb, mr := newClient(t)
	c := New(rdb)
	ctx := context.Background()

	var calls atomic.Int32
	loader := func(context.Context) (item, error) {
		calls.Add(1)
		return item{Name: "kayak", N: 3}, nil
	}

	v, err := GetOrSetJSON(ctx, c, "k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, item{Name: "kayak", N: 3}, v)

	v, err = GetOrSetJSON(ctx, c, "k", time.Minute, loader)
	require.NoError(t, err)
	assert.Equal(t, "kayak", v.Name)
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, mr.Exists("k"))
}

func TestGetOrSetJSONDoesNotCacheErrors(t *testing.T) {
	rdb, mr := newClient(t)
	c := New(rdb)

	boom := errors.New("boom")
	_, err := GetOrSetJSON(context.Background(), c, "k", time.Minute, func(context.Context) (item, error) {
		return item{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestGetOrSetJSONConcurrentMisses(t *testing.T) {
	rdb, _ := newClient(t)
	c := New(rdb)

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (item, error) {
		calls.Add(1)
		<-release
		return item{N: 1}, nil
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := GetOrSetJSON(context.Background(), c, "shared", time.Minute, loader)
			assert.NoError(t, err)
			assert.Equal(t, 1, v.N)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestInvalidateExperience(t *testing.T) {
	rdb, mr := newClient(t)
	c := New(rdb)
	ctx := context.Background()
	id := uuid.New()
	other := uuid.New()

	require.NoError(t, SetJSON(ctx, c, KeyExperience(id), item{N: 1}, time.Minute))
	require.NoError(t, SetJSON(ctx, c, KeyExperience(other), item{N: 2}, time.Minute))
	require.NoError(t, SetJSON(ctx, c, KeyExperienceList(), []item{{N: 1}}, time.Minute))

	require.NoError(t, c.InvalidateExperience(ctx, id))

	assert.False(t, mr.Exists(KeyExperience(id)))
	assert.False(t, mr.Exists(KeyExperienceList()))
	assert.True(t, mr.Exists(KeyExperience(other)))
}

func TestRateLimiterWindow(t *testing.T) {
	rdb, _ := newClient(t)
	l := NewRateLimiter(rdb, "bookings", 2, time.Minute)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 1; i <= 2; i++ {
		d, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, int64(i), d.Count)
	}

	d, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)
	assert.Equal(t, "60", d.RetryAfterSeconds())

	d, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "clients are counted separately")

	now = now.Add(time.Minute + time.Millisecond)
	d, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(1), d.Count)
}

func TestRateLimiterDoesNotCountRejections(t *testing.T) {
	rdb, _ := newClient(t)
	l := NewRateLimiter(rdb, "promo", 1, 10*time.Second)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	d, err := l.Allow(ctx, "c")
	require.NoError(t, err)
	require.True(t, d.Allowed)

	for range 5 {
		now = now.Add(time.Second)
		d, err = l.Allow(ctx, "c")
		require.NoError(t, err)
		assert.False(t, d.Allowed)
	}

	now = now.Add(5*time.Second + time.Millisecond)
	d, err = l.Allow(ctx, "c")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestIdempotencyStore(t *testing.T) {
	rdb, _ := newClient(t)
	s := NewIdempotencyStore(rdb, time.Hour)
	ctx := context.Background()
	key := KeyIdemBooking("scope", "abc")

	ok, err := s.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	locked, err := s.IsLocked(ctx, key)
	require.NoError(t, err)
	assert.True(t, locked)

	_, found, err := s.GetResult(ctx, key)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.SaveResult(ctx, key, `{"refId":"HUFAAAA1111"}`))

	payload, found, err := s.GetResult(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"refId":"HUFAAAA1111"}`, payload)

	locked, err = s.IsLocked(ctx, key)
	require.NoError(t, err)
	assert.False(t, locked)

	require.NoError(t, s.Release(ctx, key))
	ok, err = s.AcquireLock(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPubSubDeliversExperienceChanges(t *testing.T) {
	rdb, _ := newClient(t)
	ps := NewEventsPubSub(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	got := make(chan uuid.UUID, 1)
	done := make(chan error, 1)
	go func() {
		done <- ps.Subscribe(ctx, ready, func(_ context.Context, id uuid.UUID) {
			got <- id
		})
	}()

	select {
	case <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not ready")
	}

	id := uuid.New()
	require.NoError(t, ps.PublishExperienceChanged(context.Background(), id))

	select {
	case v := <-got:
		assert.Equal(t, id, v)
	case <-time.After(2 * time.Second):
		t.Fatal("no message")
	}

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}
