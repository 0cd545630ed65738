package app

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	HeapMB     uint64            `json:"heap_mb"`
	Components map[string]string `json:"components"`
}

type HealthService struct {
	app *App
}

func NewHealthService(app *App) *HealthService {
	return &HealthService{app: app}
}

func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:     "up",
		Timestamp:  time.Now().UTC(),
		HeapMB:     heapAllocMB(),
		Components: make(map[string]string),
	}
	if err := ctx.Err(); err != nil {
		status.Status = "down"
		status.Components["context"] = err.Error()
		return status
	}

	s.app.rulesMu.RLock()
	engine, historyEnabled := s.app.Engine, s.app.Config.History.Enabled
	s.app.rulesMu.RUnlock()

	if engine == nil {
		status.Status = "degraded"
		status.Components["engine"] = "missing"
	} else {
		status.Components["engine"] = fmt.Sprintf("ok (%d codes)", len(engine.Codes()))
	}

	if s.app.Parser == nil {
		status.Status = "degraded"
		status.Components["parser"] = "missing"
	} else {
		status.Components["parser"] = fmt.Sprintf("ok (%d leased)", s.app.Parser.Pool().Stats())
	}

	switch {
	case s.app.history != nil:
		status.Components["history"] = "ok"
	case historyEnabled:
		status.Status = "degraded"
		status.Components["history"] = "missing but enabled in config"
	default:
		status.Components["history"] = "disabled"
	}

	if last := s.app.LastResult(); last != nil {
		status.Components["last_run"] = fmt.Sprintf("%d violations in %d files", len(last.Violations), last.FileCount())
	} else {
		status.Components["last_run"] = "pending"
	}
	return status
}

func heapAllocMB() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc / 1024 / 1024
}
