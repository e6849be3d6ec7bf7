package usecase

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerfix/internal/domain"
)

// BalanceVerifier compares per (entry, account) nets between the live table and the snapshot.
type BalanceVerifier struct {
	logger zerolog.Logger
}

// NewBalanceVerifier creates a new BalanceVerifier.
func NewBalanceVerifier(logger zerolog.Logger) *BalanceVerifier {
	return &BalanceVerifier{logger: logger}
}

// Verify returns every key whose abs(debit - credit), rounded to cents, differs between
// live and snapshot. An empty result means the snapshot conserves the live totals.
func (v *BalanceVerifier) Verify(live []domain.EntryAccountTotal, snapshot *domain.Snapshot) []domain.BalanceDiscrepancy {
	liveTotals := make(map[domain.EntryAccountKey]domain.EntryAccountTotal, len(live))
	for _, t := range live {
		if prev, ok := liveTotals[t.Key]; ok {
			t.Debit = t.Debit.Add(prev.Debit)
			t.Credit = t.Credit.Add(prev.Credit)
		}
		liveTotals[t.Key] = t
	}
	liveNets := make(map[domain.EntryAccountKey]decimal.Decimal, len(liveTotals))
	for key, t := range liveTotals {
		liveNets[key] = t.Net()
	}

	snapNets := make(map[domain.EntryAccountKey]decimal.Decimal)
	for key, t := range snapshot.Totals() {
		snapNets[key] = t.Net()
	}

	var out []domain.BalanceDiscrepancy
	for key, liveNet := range liveNets {
		snapNet, ok := snapNets[key]
		if !ok {
			snapNet = decimal.Zero
		}
		if !liveNet.Equal(snapNet) {
			out = append(out, domain.BalanceDiscrepancy{
				EntryID:   key.EntryID,
				AccountID: key.AccountID,
				Live:      liveNet,
				Snapshot:  snapNet,
			})
		}
	}
	for key, snapNet := range snapNets {
		if _, ok := liveNets[key]; ok {
			continue
		}
		out = append(out, domain.BalanceDiscrepancy{
			EntryID:   key.EntryID,
			AccountID: key.AccountID,
			Live:      decimal.Zero,
			Snapshot:  snapNet,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].EntryID != out[j].EntryID {
			return out[i].EntryID < out[j].EntryID
		}
		return out[i].AccountID < out[j].AccountID
	})

	for _, d := range out {
		v.logger.Error().
			Int64("entry_id", d.EntryID).
			Int64("account_id", d.AccountID).
			Str("live", d.Live.StringFixed(domain.MoneyPlaces)).
			Str("snapshot", d.Snapshot.StringFixed(domain.MoneyPlaces)).
			Str("difference", d.Difference().StringFixed(domain.MoneyPlaces)).
			Msg("balance discrepancy")
	}

	return out
}
