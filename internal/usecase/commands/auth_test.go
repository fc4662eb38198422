//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"partage/internal/domain/profile"
	"partage/internal/infra/memory"
	"partage/internal/pkg/clock"
	"partage/internal/pkg/errs"
	"partage/internal/pkg/jwt"
	"partage/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthCommands() commands.AuthCommands {
	return commands.NewAuthCommands(
		memory.NewUnitOfWork(),
		jwt.NewService("test-secret", 24*time.Hour),
		clock.NewMockClock(baseTime),
	)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a member and returns a token", func(t *testing.T) {
		auth := newAuthCommands()

		res, err := auth.Register(ctx, "marie@example.test", "s3cret-pass", "Marie", profile.RoleMember)
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.NotZero(t, res.ProfileID)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		auth := newAuthCommands()

		_, err := auth.Register(ctx, "marie@example.test", "s3cret-pass", "Marie", profile.RoleMember)
		require.NoError(t, err)

		_, err = auth.Register(ctx, "marie@example.test", "other-pass", "Imposter", profile.RoleMember)
		assert.ErrorIs(t, err, errs.ErrEmailConflict)
	})

	t.Run("invalid email is rejected", func(t *testing.T) {
		auth := newAuthCommands()

		_, err := auth.Register(ctx, "not-an-email", "s3cret-pass", "Marie", profile.RoleMember)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials yield a token for the same profile", func(t *testing.T) {
		auth := newAuthCommands()

		reg, err := auth.Register(ctx, "paul@example.test", "s3cret-pass", "Paul", profile.RoleProducer)
		require.NoError(t, err)

		res, err := auth.Login(ctx, "paul@example.test", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, reg.ProfileID, res.ProfileID)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("wrong password fails authentication", func(t *testing.T) {
		auth := newAuthCommands()

		_, err := auth.Register(ctx, "paul@example.test", "s3cret-pass", "Paul", profile.RoleMember)
		require.NoError(t, err)

		_, err = auth.Login(ctx, "paul@example.test", "wrong-pass")
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})

	t.Run("unknown email fails the same way as a bad password", func(t *testing.T) {
		auth := newAuthCommands()

		_, err := auth.Login(ctx, "ghost@example.test", "whatever")
		assert.ErrorIs(t, err, errs.ErrAuthenticationFailed)
	})
}
