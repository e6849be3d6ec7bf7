package usecase

import "time"

const (
	// DefaultRepairTimeout bounds one repair attempt including the live phases.
	DefaultRepairTimeout = 30 * time.Minute

	// DefaultLockTTL is how long the run lock survives a crashed holder.
	DefaultLockTTL = time.Hour

	// DefaultResultTTL is how long the last repair result is cached.
	DefaultResultTTL = 7 * 24 * time.Hour

	// Consolidation pass names used in logs and metrics.
	PassCounterpart = "counterpart"
	PassLiquidity   = "liquidity"
)
