package commands

import (
	"context"

	"partage/internal/domain/profile"
	"partage/internal/infra"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/errs"
	"partage/internal/pkg/jwt"
	"partage/internal/pkg/password"
	"partage/internal/usecase/shared"

	"github.com/google/uuid"
)

type AuthResult struct {
	ProfileID uuid.UUID
	Token     string
}

type AuthCommands interface {
	Register(ctx context.Context, email, rawPassword, displayName string, role profile.Role) (*AuthResult, error)
	Login(ctx context.Context, email, rawPassword string) (*AuthResult, error)
}

type authCommands struct {
	uow    shared.UnitOfWork
	tokens *jwt.Service
	clock  clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, tokens *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommands{uow: uow, tokens: tokens, clock: clk}
}

func (c *authCommands) Register(ctx context.Context, email, rawPassword, displayName string, role profile.Role) (*AuthResult, error) {
	hash, err := password.HashPassword(rawPassword)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	p, err := profile.NewProfile(email, hash, displayName, role, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Profiles().Create(ctx, p); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrEmailConflict)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, err := c.tokens.GenerateToken(p.ID(), p.Role().String())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrAuthenticationFailed)
	}
	return &AuthResult{ProfileID: p.ID(), Token: token}, nil
}

func (c *authCommands) Login(ctx context.Context, email, rawPassword string) (*AuthResult, error) {
	var p *profile.Profile
	err := c.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.Profiles().FindByEmail(ctx, email)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrAuthenticationFailed)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		p = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := password.VerifyPassword(p.PasswordHash(), rawPassword); err != nil {
		return nil, errs.Mark(err, errs.ErrAuthenticationFailed)
	}
	token, err := c.tokens.GenerateToken(p.ID(), p.Role().String())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrAuthenticationFailed)
	}
	return &AuthResult{ProfileID: p.ID(), Token: token}, nil
}
