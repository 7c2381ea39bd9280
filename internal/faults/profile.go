package faults

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LatencyFault is a uniform sleep window plus an optional probability of a
// synthetic failure. Durations are milliseconds.
type LatencyFault struct {
	MinMS     int     `yaml:"min_ms"`
	MaxMS     int     `yaml:"max_ms"`
	ErrorRate float64 `yaml:"error_rate"`
}

// CheckoutFault adds the gaussian latency model used by the checkout flow.
type CheckoutFault struct {
	LatencyFault   `yaml:",inline"`
	MeanMS         int     `yaml:"mean_ms"`
	StddevMS       int     `yaml:"stddev_ms"`
	FloorMS        int     `yaml:"floor_ms"`
	SlowMultiplier float64 `yaml:"slow_multiplier"`
}

// InventoryFault stalls for TimeoutSleepMS before failing when the error
// gate fires, imitating a database that times out instead of erroring fast.
type InventoryFault struct {
	LatencyFault   `yaml:",inline"`
	TimeoutSleepMS int `yaml:"timeout_sleep_ms"`
}

// Profile holds every injected latency window and failure probability,
// keyed by endpoint. Values not present in a loaded profile keep the
// built-in defaults.
type Profile struct {
	Home            LatencyFault   `yaml:"home"`
	Catalog         LatencyFault   `yaml:"catalog"`
	Product         LatencyFault   `yaml:"product"`
	Checkout        CheckoutFault  `yaml:"checkout"`
	Orders          LatencyFault   `yaml:"orders"`
	Inventory       InventoryFault `yaml:"inventory"`
	Refunds         LatencyFault   `yaml:"refunds"`
	Recommendations LatencyFault   `yaml:"recommendations"`
	CacheClear      LatencyFault   `yaml:"cache_clear"`
}

// DefaultProfile returns the stock demo behavior.
func DefaultProfile() Profile {
	return Profile{
		Home:    LatencyFault{MinMS: 20, MaxMS: 80},
		Catalog: LatencyFault{MinMS: 50, MaxMS: 150, ErrorRate: 0.01},
		Product: LatencyFault{MinMS: 30, MaxMS: 120},
		Checkout: CheckoutFault{
			LatencyFault:   LatencyFault{MinMS: 50, MaxMS: 150},
			MeanMS:         200,
			StddevMS:       60,
			FloorMS:        50,
			SlowMultiplier: 4,
		},
		Orders: LatencyFault{MinMS: 100, MaxMS: 300},
		Inventory: InventoryFault{
			LatencyFault:   LatencyFault{MinMS: 50, MaxMS: 200, ErrorRate: 0.03},
			TimeoutSleepMS: 5000,
		},
		Refunds:         LatencyFault{MinMS: 200, MaxMS: 500, ErrorRate: 0.05},
		Recommendations: LatencyFault{MinMS: 300, MaxMS: 1500},
		CacheClear:      LatencyFault{MinMS: 50, MaxMS: 50, ErrorRate: 0.10},
	}
}

// LoadProfile overlays a YAML profile on the defaults. An empty path
// returns the defaults unchanged.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read fault profile: %w", err)
	}

	if err := yaml.Unmarshal(data, &profile); err != nil {
		return profile, fmt.Errorf("failed to parse fault profile: %w", err)
	}

	return profile, nil
}
