package order

import (
	"github.com/google/uuid"

	"partage/internal/pkg/errs"
)

// ParticipantTotals are the cached per-participant aggregates.
type ParticipantTotals struct {
	WeightKg    float64
	AmountCents int64
}

// Ledger is the result of one recomputation pass: order-level totals plus
// per-participant totals, written back as one atomic unit by the caller.
type Ledger struct {
	Order       Totals
	Participant map[uuid.UUID]ParticipantTotals
}

// RecomputeLedger is the full-rebuild path: it walks every line item of the
// order and accumulates all aggregates from scratch. It is deterministic and
// idempotent; recomputing twice yields identical results.
func RecomputeLedger(items []*LineItem) Ledger {
	ledger := Ledger{
		Participant: make(map[uuid.UUID]ParticipantTotals, 4),
	}
	for _, li := range items {
		ledger.Order.OrderedWeightKg += li.LineWeightKg()
		ledger.Order.BaseCents += li.LineBaseCents()
		ledger.Order.DeliveryCents += li.LineDeliveryCents()
		ledger.Order.SharerCents += li.LineSharerCents()
		ledger.Order.ParticipantTotalCents += li.LineTotalCents()

		pt := ledger.Participant[li.ParticipantID()]
		pt.WeightKg += li.LineWeightKg()
		pt.AmountCents += li.LineTotalCents()
		ledger.Participant[li.ParticipantID()] = pt
	}
	return ledger
}

// RecomputeParticipantTotals is the fast path for single-participant
// mutations. It must converge to the same per-participant result as the full
// rebuild over the same item set.
func RecomputeParticipantTotals(items []*LineItem, participantID uuid.UUID) ParticipantTotals {
	var pt ParticipantTotals
	for _, li := range items {
		if li.ParticipantID() != participantID {
			continue
		}
		pt.WeightKg += li.LineWeightKg()
		pt.AmountCents += li.LineTotalCents()
	}
	return pt
}

// VerifyLedger cross-checks cached order totals against the current item
// set. A divergence is a consistency failure that must abort the mutation.
func VerifyLedger(o *Order, items []*LineItem) error {
	want := RecomputeLedger(items).Order
	got := o.Totals()
	if got != want {
		return errs.Mark(
			errs.Newf("cached totals %+v diverge from recomputed %+v", got, want),
			errs.ErrLedgerInconsistent,
		)
	}
	return nil
}

// CheckSingleLotPerProduct enforces that a product never references more
// than one lot across the order's line items.
func CheckSingleLotPerProduct(items []*LineItem) error {
	lotByProduct := make(map[uuid.UUID]uuid.UUID, len(items))
	for _, li := range items {
		if prev, ok := lotByProduct[li.ProductID()]; ok && prev != li.LotID() {
			return errs.Mark(
				errs.Newf("product %s references lots %s and %s", li.ProductID(), prev, li.LotID()),
				errs.ErrLotMismatch,
			)
		}
		lotByProduct[li.ProductID()] = li.LotID()
	}
	return nil
}
