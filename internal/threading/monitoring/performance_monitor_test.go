package monitoring

import (
	"sync"
	"testing"
	"time"
)

func TestNewPerformanceMonitor(t *testing.T) {
	pm := NewPerformanceMonitor()

	if pm == nil {
		t.Fatal("NewPerformanceMonitor returned nil")
	}
	if !pm.enableDetailed {
		t.Error("Expected enableDetailed to be true")
	}
	if time.Since(pm.startTime) > time.Second {
		t.Error("Start time should be recent")
	}
}

func TestPerformanceMonitorFrameTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	frameTimer := pm.StartFrame()
	time.Sleep(10 * time.Millisecond)
	frameTimer.EndFrame()

	if pm.frameCount.Load() != 1 {
		t.Errorf("Expected frame count to be 1, got %d", pm.frameCount.Load())
	}
	if pm.frameTime.Load() < uint64(10*time.Millisecond) {
		t.Errorf("Expected frame time >= 10ms, got %v", time.Duration(pm.frameTime.Load()))
	}

	m := pm.GetCurrentMetrics()
	if m.FramesPerSecond <= 0 || m.FramesPerSecond > 100 {
		t.Errorf("FPS = %v, expected (0, 100]", m.FramesPerSecond)
	}
	if m.FrameCount != 1 {
		t.Errorf("FrameCount = %d", m.FrameCount)
	}
}

func TestPerformanceMonitorRaycastTiming(t *testing.T) {
	pm := NewPerformanceMonitor()

	rt := pm.StartRaycast()
	time.Sleep(2 * time.Millisecond)
	rt.EndRaycast()

	if pm.GetCurrentMetrics().RaycastTime < 2*time.Millisecond {
		t.Error("raycast time should be recorded")
	}
	if pm.GetDetailedStats()["avg_raycast_time_ms"].(float64) <= 0 {
		t.Error("average raycast time should be positive")
	}
}

func TestPerformanceMonitorErrorsAndAlerts(t *testing.T) {
	pm := NewPerformanceMonitor()
	if len(pm.CheckPerformanceAlerts()) != 0 {
		t.Error("fresh monitor should not alert")
	}

	pm.RecordFrameErrors(0)
	pm.RecordFrameErrors(3)
	pm.RecordFrameErrors(2)

	m := pm.GetCurrentMetrics()
	if m.ColumnErrors != 5 || m.FramesWithErrs != 2 {
		t.Errorf("errors = %d in %d frames", m.ColumnErrors, m.FramesWithErrs)
	}

	found := false
	for _, a := range pm.CheckPerformanceAlerts() {
		if a.Type == "render_errors" {
			found = true
		}
	}
	if !found {
		t.Error("expected a render_errors alert")
	}
}

func TestPerformanceMonitorConcurrentRecording(t *testing.T) {
	pm := NewPerformanceMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				pm.RecordSprites(1)
				pm.RecordEnemyUpdates(1)
			}
		}()
	}
	wg.Wait()

	stats := pm.GetDetailedStats()
	if stats["sprite_columns"].(uint64) != 800 {
		t.Errorf("sprite_columns = %v", stats["sprite_columns"])
	}
	if stats["enemies_updated"].(uint64) != 800 {
		t.Errorf("enemies_updated = %v", stats["enemies_updated"])
	}
}

func TestPerformanceMonitorProfiledFunction(t *testing.T) {
	pm := NewPerformanceMonitor()

	d := pm.ProfiledFunction("sprite_render", func() {
		time.Sleep(time.Millisecond)
	})
	if d < time.Millisecond {
		t.Errorf("duration = %v", d)
	}
	if pm.GetCurrentMetrics().SpriteTime != d {
		t.Error("sprite_render timing should be stored")
	}
}

func TestPerformanceMonitorReset(t *testing.T) {
	pm := NewPerformanceMonitor()
	pm.StartFrame().EndFrame()
	pm.RecordFrameErrors(1)

	pm.Reset()

	m := pm.GetCurrentMetrics()
	if m.FrameCount != 0 || m.ColumnErrors != 0 || m.FramesPerSecond != 0 {
		t.Errorf("metrics after reset = %+v", m)
	}
}
