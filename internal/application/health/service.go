package health

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"kitab-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for the health check. If nil, database is reported as
// disconnected.
type DBPinger interface {
	Ping() error
}

type Service struct {
	Rdb *redis.Client
	DB  DBPinger
}

// Result is the /health/json payload.
type Result struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
	Timestamp    time.Time            `json:"timestamp"`
}

type RuntimeInfo struct {
	Platform  string `json:"platform"`
	GoVersion string `json:"goVersion"`
	HeapUsed  uint64 `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int64       `json:"totalRequests"`
	FailedCount     int64       `json:"failedCount"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"pingMs"`
}

// Collect gathers dependency status and traffic counters.
func (s *Service) Collect(ctx context.Context) Result {
	deps := map[string]DepStatus{
		"database": s.pingDB(),
		"redis":    s.pingRedis(ctx),
	}

	status := "healthy"
	for _, d := range deps {
		if d.Status != "connected" {
			status = "unhealthy"
		}
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return Result{
		Status: status,
		Runtime: RuntimeInfo{
			Platform:  runtime.GOOS,
			GoVersion: runtime.Version(),
			HeapUsed:  mem.HeapAlloc,
		},
		Traffic:      s.traffic(ctx),
		Dependencies: deps,
		Timestamp:    time.Now(),
	}
}

func (s *Service) pingDB() DepStatus {
	if s.DB == nil {
		return DepStatus{Status: "disconnected", PingMs: nil}
	}
	start := time.Now()
	if err := s.DB.Ping(); err != nil {
		return DepStatus{Status: "error", PingMs: nil}
	}
	return DepStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
}

func (s *Service) pingRedis(ctx context.Context) DepStatus {
	if s.Rdb == nil {
		return DepStatus{Status: "disconnected", PingMs: nil}
	}
	start := time.Now()
	if err := s.Rdb.Ping(ctx).Err(); err != nil {
		return DepStatus{Status: "error", PingMs: nil}
	}
	return DepStatus{Status: "connected", PingMs: time.Since(start).Milliseconds()}
}

func (s *Service) traffic(ctx context.Context) TrafficInfo {
	t := TrafficInfo{AvgResponseTime: nil, LastRequest: nil}
	if s.Rdb == nil {
		return t
	}
	t.TotalRequests = s.intKey(ctx, middleware.KeyReqTotal)
	t.FailedCount = s.intKey(ctx, middleware.KeyReqErrors)

	count := s.intKey(ctx, middleware.KeyResCount)
	if count > 0 {
		totalStr, err := s.Rdb.Get(ctx, middleware.KeyResTime).Result()
		if err == nil {
			if total, err := strconv.ParseFloat(totalStr, 64); err == nil {
				t.AvgResponseTime = fmt.Sprintf("%.1fms", total/float64(count))
			}
		}
	}
	if raw, err := s.Rdb.Get(ctx, middleware.KeyLastReq).Result(); err == nil {
		t.LastRequest = raw
	}
	return t
}

func (s *Service) intKey(ctx context.Context, key string) int64 {
	v, err := s.Rdb.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return v
}
