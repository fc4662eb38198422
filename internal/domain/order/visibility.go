package order

// Visibility controls whether the order is listed publicly.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// ParticipantFlags are the owner's stored toggles for what third parties may
// see in the participant table. Resolution is per-viewer and computed at read
// time; nothing viewer-specific is stored.
type ParticipantFlags struct {
	Profile bool
	Content bool
	Weight  bool
	Amount  bool
}

// Viewer classifies the reader for visibility resolution.
type Viewer int

const (
	ViewerOwner Viewer = iota
	ViewerProducer
	ViewerOther
)

// ResolveVisibility applies the cross-field visibility policy:
//   - the owner always sees all four flags
//   - the producer sees content/weight/amount but never profile identity
//   - everyone else sees only what the owner enabled, and the profile flag is
//     force-disabled whenever the order itself is public, overriding the
//     stored toggle
func (o *Order) ResolveVisibility(viewer Viewer) ParticipantFlags {
	switch viewer {
	case ViewerOwner:
		return ParticipantFlags{Profile: true, Content: true, Weight: true, Amount: true}
	case ViewerProducer:
		return ParticipantFlags{Profile: false, Content: true, Weight: true, Amount: true}
	default:
		flags := o.participantFlags
		if o.visibility == VisibilityPublic {
			flags.Profile = false
		}
		return flags
	}
}
