package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// smoothing is the weight of the newest sample in the running averages.
const smoothing = 0.1

// PerformanceMonitor tracks frame and render pass timings. Counters are
// atomics so render workers can report without locking.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Render pass metrics
	raycastTime      atomic.Uint64
	spriteRenderTime atomic.Uint64
	entityUpdateTime atomic.Uint64

	// Renderer health
	columnErrors   atomic.Uint64
	framesWithErrs atomic.Uint64
	spritesDrawn   atomic.Uint64
	enemiesUpdated atomic.Uint64

	// Statistics
	mutex          sync.RWMutex
	avgFrameTime   float64
	avgRaycastTime float64
	startTime      time.Time

	enableDetailed bool
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer measures one frame
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: pm, startTime: time.Now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	pm := ft.monitor
	elapsed := uint64(time.Since(ft.startTime).Nanoseconds())
	pm.frameTime.Store(elapsed)
	count := pm.frameCount.Add(1)

	if pm.enableDetailed {
		pm.mutex.Lock()
		pm.avgFrameTime = average(pm.avgFrameTime, float64(elapsed), count)
		pm.mutex.Unlock()
	}
}

// RaycastTimer measures the wall projection pass
type RaycastTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartRaycast begins raycast timing
func (pm *PerformanceMonitor) StartRaycast() *RaycastTimer {
	return &RaycastTimer{monitor: pm, startTime: time.Now()}
}

// EndRaycast completes raycast timing
func (rt *RaycastTimer) EndRaycast() {
	pm := rt.monitor
	elapsed := uint64(time.Since(rt.startTime).Nanoseconds())
	pm.raycastTime.Store(elapsed)

	if pm.enableDetailed {
		pm.mutex.Lock()
		pm.avgRaycastTime = average(pm.avgRaycastTime, float64(elapsed), pm.frameCount.Load()+1)
		pm.mutex.Unlock()
	}
}

func average(prev, sample float64, n uint64) float64 {
	if n <= 1 || prev == 0 {
		return sample
	}
	return prev + smoothing*(sample-prev)
}

// RecordFrameErrors adds the internal errors one frame reported.
func (pm *PerformanceMonitor) RecordFrameErrors(n int) {
	if n <= 0 {
		return
	}
	pm.columnErrors.Add(uint64(n))
	pm.framesWithErrs.Add(1)
}

// RecordSprites adds to the number of sprite columns painted.
func (pm *PerformanceMonitor) RecordSprites(columns int) {
	pm.spritesDrawn.Add(uint64(max(columns, 0)))
}

// RecordEnemyUpdates adds to the number of enemy steps simulated.
func (pm *PerformanceMonitor) RecordEnemyUpdates(n int) {
	pm.enemiesUpdated.Add(uint64(max(n, 0)))
}

// Metrics is a snapshot for the HUD
type Metrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	SpriteTime      time.Duration
	FrameCount      uint64
	ColumnErrors    uint64
	FramesWithErrs  uint64
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = float64(time.Second) / float64(frameTime)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return Metrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(frameTime),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		SpriteTime:      time.Duration(pm.spriteRenderTime.Load()),
		FrameCount:      pm.frameCount.Load(),
		ColumnErrors:    pm.columnErrors.Load(),
		FramesWithErrs:  pm.framesWithErrs.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	fps := 0.0
	if ft := pm.frameTime.Load(); ft > 0 {
		fps = float64(time.Second) / float64(ft)
	}

	return map[string]interface{}{
		"uptime_seconds":      time.Since(pm.startTime).Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   pm.avgFrameTime / 1e6,
		"avg_raycast_time_ms": pm.avgRaycastTime / 1e6,
		"current_fps":         fps,
		"column_errors":       pm.columnErrors.Load(),
		"frames_with_errors":  pm.framesWithErrs.Load(),
		"sprite_columns":      pm.spritesDrawn.Load(),
		"enemies_updated":     pm.enemiesUpdated.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"cpu_cores":           runtime.NumCPU(),
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < 30 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: now,
			})
		}
	}

	if errs := pm.framesWithErrs.Load(); errs > 0 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "render_errors",
			Message:   "Frames rendered with internal errors",
			Value:     float64(errs),
			Threshold: 0,
			Timestamp: now,
		})
	}

	return alerts
}

// EnableDetailedLogging toggles the running averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.entityUpdateTime.Store(0)
	pm.columnErrors.Store(0)
	pm.framesWithErrs.Store(0)
	pm.spritesDrawn.Store(0)
	pm.enemiesUpdated.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing. Known names
// are "raycast", "sprite_render" and "entity_update".
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case "raycast":
		pm.raycastTime.Store(uint64(duration.Nanoseconds()))
	case "sprite_render":
		pm.spriteRenderTime.Store(uint64(duration.Nanoseconds()))
	case "entity_update":
		pm.entityUpdateTime.Store(uint64(duration.Nanoseconds()))
	}

	return duration
}
