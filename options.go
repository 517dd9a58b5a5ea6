// Copyright 2025 The uart-sub000 authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package uart

import "go.uber.org/zap"

// Config holds the transceiver configuration.
type Config struct {
	// TxDepth is the transmit buffer capacity in bytes (power of two).
	TxDepth int

	// RxDepth is the receive buffer capacity in bytes (power of two).
	RxDepth int

	// SyncStages is the synchronizer chain depth used for every
	// domain crossing.
	SyncStages int

	// Logger receives discrete model events at debug level (optional).
	Logger *zap.Logger
}

func defaultConfig() Config {
	return Config{
		TxDepth:    8,
		RxDepth:    8,
		SyncStages: 2,
		Logger:     zap.NewNop(),
	}
}

// Option is a functional option for configuring a Transceiver.
type Option func(*Config)

// WithLogger sets the event logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithTxDepth sets the transmit buffer capacity. Must be a power of two.
func WithTxDepth(depth int) Option {
	return func(c *Config) { c.TxDepth = depth }
}

// WithRxDepth sets the receive buffer capacity. Must be a power of two.
func WithRxDepth(depth int) Option {
	return func(c *Config) { c.RxDepth = depth }
}

// WithSyncStages sets the synchronizer depth for all domain crossings.
// Deeper chains trade latency for settling margin.
func WithSyncStages(stages int) Option {
	return func(c *Config) { c.SyncStages = stages }
}
