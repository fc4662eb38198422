package order

import "partage/internal/pkg/errs"

// Status is the order lifecycle state. Transitions are strictly forward:
//
//	draft → open → locked → confirmed → preparing → prepared
//	      → delivered → distributed → finished
//
// cancelled is reachable from any non-finished state.
type Status string

const (
	StatusDraft       Status = "draft"
	StatusOpen        Status = "open"
	StatusLocked      Status = "locked"
	StatusConfirmed   Status = "confirmed"
	StatusPreparing   Status = "preparing"
	StatusPrepared    Status = "prepared"
	StatusDelivered   Status = "delivered"
	StatusDistributed Status = "distributed"
	StatusFinished    Status = "finished"
	StatusCancelled   Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusOpen, StatusLocked, StatusConfirmed, StatusPreparing,
		StatusPrepared, StatusDelivered, StatusDistributed, StatusFinished, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// IsReceivable reports whether the goods have reached the owner, which gates
// pickup-slot selection.
func (s Status) IsReceivable() bool {
	switch s {
	case StatusDelivered, StatusDistributed, StatusFinished:
		return true
	default:
		return false
	}
}

// successor holds the single legal forward step from each state.
var successor = map[Status]Status{
	StatusDraft:       StatusOpen,
	StatusOpen:        StatusLocked,
	StatusLocked:      StatusConfirmed,
	StatusConfirmed:   StatusPreparing,
	StatusPreparing:   StatusPrepared,
	StatusPrepared:    StatusDelivered,
	StatusDelivered:   StatusDistributed,
	StatusDistributed: StatusFinished,
}

// TransitionActor names who may drive the order into a given target state.
type TransitionActor int

const (
	ActorOwner TransitionActor = iota
	ActorProducer
)

// requiredActor keys by TARGET state.
var requiredActor = map[Status]TransitionActor{
	StatusOpen:        ActorOwner,
	StatusLocked:      ActorOwner,
	StatusConfirmed:   ActorProducer,
	StatusPreparing:   ActorProducer,
	StatusPrepared:    ActorProducer,
	StatusDelivered:   ActorOwner,
	StatusDistributed: ActorOwner,
	StatusFinished:    ActorOwner,
	StatusCancelled:   ActorOwner,
}

// Next validates the forward transition s → target and returns target.
// Wrong source state is a precondition failure, never silently skipped.
func (s Status) Next(target Status) (Status, error) {
	if target == StatusCancelled {
		if s.IsTerminal() {
			return "", errs.Mark(
				errs.Newf("cannot cancel a %s order", s),
				errs.ErrIllegalTransition,
			)
		}
		return StatusCancelled, nil
	}
	if successor[s] != target {
		return "", errs.Mark(
			errs.Newf("cannot transition from %s to %s", s, target),
			errs.ErrIllegalTransition,
		)
	}
	return target, nil
}
