package profile

import (
	"strings"
	"time"

	"partage/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errs.New("invalid email")
	ErrInvalidRole  = errs.New("invalid role")
)

// Role is the account-level role carried in the JWT. Order-level authority
// (owner vs producer of a given order) is checked against the order itself.
type Role string

const (
	RoleMember   Role = "member"
	RoleProducer Role = "producer"
)

func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleProducer
}

func (r Role) String() string {
	return string(r)
}

// Profile is the minimal account identity the actor checks need.
type Profile struct {
	id           uuid.UUID
	email        string
	passwordHash string
	displayName  string
	role         Role
	createdAt    time.Time
}

func NewProfile(email, passwordHash, displayName string, role Role, now time.Time) (*Profile, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.Mark(ErrInvalidEmail, errs.ErrDomainValidation)
	}
	if !role.IsValid() {
		return nil, errs.Mark(ErrInvalidRole, errs.ErrDomainValidation)
	}
	return &Profile{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		displayName:  displayName,
		role:         role,
		createdAt:    now,
	}, nil
}

func ReconstructProfile(id uuid.UUID, email, passwordHash, displayName string, role Role, createdAt time.Time) *Profile {
	return &Profile{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		displayName:  displayName,
		role:         role,
		createdAt:    createdAt,
	}
}

func (p *Profile) ID() uuid.UUID        { return p.id }
func (p *Profile) Email() string        { return p.email }
func (p *Profile) PasswordHash() string { return p.passwordHash }
func (p *Profile) DisplayName() string  { return p.displayName }
func (p *Profile) Role() Role           { return p.role }
func (p *Profile) CreatedAt() time.Time { return p.createdAt }
