package order

import (
	"time"

	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

// actorAllowed checks the actor rule for a target state against the order's
// owner and producer. Validation is authoritative here regardless of any
// client-side gating.
func (o *Order) actorAllowed(target Status, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return errs.Mark(errs.New("actor is required"), errs.ErrMissingActor)
	}
	required, ok := requiredActor[target]
	if !ok {
		return errs.Mark(errs.Newf("no actor rule for target state %s", target), errs.ErrIllegalTransition)
	}
	switch required {
	case ActorOwner:
		if actorID != o.ownerID {
			return errs.Mark(errs.Newf("only the order owner may move the order to %s", target), errs.ErrWrongActor)
		}
	case ActorProducer:
		if actorID != o.producerID {
			return errs.Mark(errs.Newf("only the producer may move the order to %s", target), errs.ErrWrongActor)
		}
	}
	return nil
}

func (o *Order) advance(target Status, actorID uuid.UUID, now time.Time) error {
	if err := o.actorAllowed(target, actorID); err != nil {
		return err
	}
	next, err := o.status.Next(target)
	if err != nil {
		return err
	}
	o.status = next
	o.updatedAt = now
	return nil
}

// Open publishes a draft order.
func (o *Order) Open(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusOpen, actorID, now)
}

// Lock freezes participation. Precondition: the effective weight has reached
// the minimum threshold; falling short is a rejected precondition, not a
// silent skip.
func (o *Order) Lock(actorID uuid.UUID, now time.Time) error {
	if err := o.actorAllowed(StatusLocked, actorID); err != nil {
		return err
	}
	// Effective weight is clamped up to min, so the raw ordered weight is
	// the value that has to clear the threshold.
	if o.totals.OrderedWeightKg < o.minWeightKg {
		return errs.Mark(
			errs.Newf("ordered weight %.3fkg below minimum %.3fkg", o.totals.OrderedWeightKg, o.minWeightKg),
			errs.ErrMinWeightNotReached,
		)
	}
	return o.advance(StatusLocked, actorID, now)
}

// Confirm is the producer accepting the locked order.
func (o *Order) Confirm(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusConfirmed, actorID, now)
}

func (o *Order) StartPreparing(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusPreparing, actorID, now)
}

func (o *Order) MarkPrepared(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusPrepared, actorID, now)
}

func (o *Order) MarkDelivered(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusDelivered, actorID, now)
}

// MarkDistributed moves the order into distribution. The caller must emit the
// platform-to-producer invoice idempotently in the same transaction.
func (o *Order) MarkDistributed(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusDistributed, actorID, now)
}

func (o *Order) Finish(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusFinished, actorID, now)
}

// Cancel is reachable from any non-finished state, owner only.
func (o *Order) Cancel(actorID uuid.UUID, now time.Time) error {
	return o.advance(StatusCancelled, actorID, now)
}
