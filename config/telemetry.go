package config

import "time"

// TelemetryCfg enables periodic counter logs. If nil, nothing is logged.
type TelemetryCfg struct {
	// Interval between two log lines, each carrying per-interval deltas.
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}
