package usecase

import (
	"time"

	"github.com/iho/ledgerfix/internal/domain"
)

type noopMetrics struct{}

func (noopMetrics) RunFinished(domain.RepairOutcome, bool, time.Duration) {}
func (noopMetrics) GroupsMerged(string, int)                              {}
func (noopMetrics) LinesDeleted(int64)                                    {}
func (noopMetrics) ReferencesRewired(string, int64)                       {}
func (noopMetrics) ConflictDeleted(string)                                {}
func (noopMetrics) Discrepancies(int)                                     {}
