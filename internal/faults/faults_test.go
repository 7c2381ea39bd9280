package faults

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()

	assert.Equal(t, LatencyFault{MinMS: 20, MaxMS: 80}, p.Home)
	assert.Equal(t, LatencyFault{MinMS: 50, MaxMS: 150, ErrorRate: 0.01}, p.Catalog)
	assert.Equal(t, LatencyFault{MinMS: 30, MaxMS: 120}, p.Product)

	assert.Equal(t, 200, p.Checkout.MeanMS)
	assert.Equal(t, 60, p.Checkout.StddevMS)
	assert.Equal(t, 50, p.Checkout.FloorMS)
	assert.Equal(t, 4.0, p.Checkout.SlowMultiplier)

	assert.Equal(t, 0.03, p.Inventory.ErrorRate)
	assert.Equal(t, 5000, p.Inventory.TimeoutSleepMS)
	assert.Equal(t, 0.05, p.Refunds.ErrorRate)
	assert.Equal(t, LatencyFault{MinMS: 300, MaxMS: 1500}, p.Recommendations)
	assert.Equal(t, 0.10, p.CacheClear.ErrorRate)
}

func TestLoadProfile_EmptyPathReturnsDefaults(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile(), p)
}

func TestLoadProfile_OverlaysOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := []byte(`
catalog:
  min_ms: 5
  max_ms: 10
  error_rate: 0.5
inventory:
  timeout_sleep_ms: 100
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)

	// Overridden values take effect.
	assert.Equal(t, LatencyFault{MinMS: 5, MaxMS: 10, ErrorRate: 0.5}, p.Catalog)
	assert.Equal(t, 100, p.Inventory.TimeoutSleepMS)

	// Untouched keys keep the defaults.
	assert.Equal(t, LatencyFault{MinMS: 50, MaxMS: 200, ErrorRate: 0.03}, p.Inventory.LatencyFault)
	assert.Equal(t, DefaultProfile().Checkout, p.Checkout)
}

func TestLoadProfile_MissingFile(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadProfile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: [not a map"), 0o644))

	_, err := LoadProfile(path)
	assert.Error(t, err)
}

func TestChance_Extremes(t *testing.T) {
	inj := NewInjector(DefaultProfile(), 1)

	for i := 0; i < 100; i++ {
		assert.False(t, inj.Chance(0))
		assert.False(t, inj.Chance(-0.5))
		assert.True(t, inj.Chance(1))
		assert.True(t, inj.Chance(1.5))
	}
}

func TestIntBetween_StaysInBounds(t *testing.T) {
	inj := NewInjector(DefaultProfile(), 1)

	for i := 0; i < 200; i++ {
		v := inj.IntBetween(5, 9)
		assert.GreaterOrEqual(t, v, 5)
		assert.LessOrEqual(t, v, 9)
	}
}

func TestIntBetween_DegenerateRange(t *testing.T) {
	inj := NewInjector(DefaultProfile(), 1)

	assert.Equal(t, 7, inj.IntBetween(7, 7))
	assert.Equal(t, 9, inj.IntBetween(9, 5))
}

func TestInjector_SameSeedSameSequence(t *testing.T) {
	a := NewInjector(DefaultProfile(), 7)
	b := NewInjector(DefaultProfile(), 7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.IntBetween(0, 1000), b.IntBetween(0, 1000))
	}
}

func TestGauss_ClampsToFloor(t *testing.T) {
	inj := NewInjector(DefaultProfile(), 1)

	// Zero stddev collapses the draw onto the mean, which sits below the floor.
	d := inj.Gauss(10, 0, 50)
	assert.Equal(t, 50*time.Millisecond, d)
}

func TestSleep_ReturnsWindowDuration(t *testing.T) {
	inj := NewInjector(DefaultProfile(), 1)

	start := time.Now()
	d := inj.Sleep(LatencyFault{MinMS: 5, MaxMS: 5})
	elapsed := time.Since(start)

	assert.Equal(t, 5*time.Millisecond, d)
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
}
