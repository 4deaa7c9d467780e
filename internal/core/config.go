package core

import "time"

// RuntimeConfig contains host settings passed to a table session at startup.
type RuntimeConfig struct {
	ScreenW  int    // Screen width in characters
	ScreenH  int    // Screen height in characters
	TickRate int    // Physics ticks per second; 0 keeps the table config's period
	Seed     int64  // RNG seed for launch velocities
	Player   string // Name stored with high scores
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Player:  "player",
	}
}

// TickPeriod converts TickRate to a ticker period, or returns fallback when
// no rate was given.
func (c RuntimeConfig) TickPeriod(fallback time.Duration) time.Duration {
	if c.TickRate <= 0 {
		return fallback
	}
	return time.Second / time.Duration(c.TickRate)
}
