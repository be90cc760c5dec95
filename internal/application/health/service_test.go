package health

import (
	"context"
	"errors"
	"testing"

	"kitab-backend/internal/middleware"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping() error { return nil }

type failPinger struct{}

func (failPinger) Ping() error { return errors.New("down") }

func setupHealth(t *testing.T) (*Service, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Service{Rdb: rdb, DB: okPinger{}}, mr
}

func TestCollect_Healthy(t *testing.T) {
	s, _ := setupHealth(t)

	res := s.Collect(context.Background())
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "connected", res.Dependencies["database"].Status)
	assert.Equal(t, "connected", res.Dependencies["redis"].Status)
	assert.NotEmpty(t, res.Runtime.GoVersion)
}

func TestCollect_DatabaseDown(t *testing.T) {
	s, _ := setupHealth(t)
	s.DB = failPinger{}

	res := s.Collect(context.Background())
	assert.Equal(t, "unhealthy", res.Status)
	assert.Equal(t, "error", res.Dependencies["database"].Status)
}

func TestCollect_NoDatabaseConfigured(t *testing.T) {
	s, _ := setupHealth(t)
	s.DB = nil

	res := s.Collect(context.Background())
	assert.Equal(t, "unhealthy", res.Status)
	assert.Equal(t, "disconnected", res.Dependencies["database"].Status)
}

func TestCollect_TrafficCounters(t *testing.T) {
	s, mr := setupHealth(t)
	require.NoError(t, mr.Set(middleware.KeyReqTotal, "12"))
	require.NoError(t, mr.Set(middleware.KeyReqErrors, "2"))
	require.NoError(t, mr.Set(middleware.KeyResCount, "10"))
	require.NoError(t, mr.Set(middleware.KeyResTime, "250"))

	res := s.Collect(context.Background())
	assert.Equal(t, int64(12), res.Traffic.TotalRequests)
	assert.Equal(t, int64(2), res.Traffic.FailedCount)
	assert.Equal(t, "25.0ms", res.Traffic.AvgResponseTime)
}
