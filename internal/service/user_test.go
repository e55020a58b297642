package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-management/internal/domain"
	"github.com/iliyamo/cinema-management/internal/model"
	"github.com/iliyamo/cinema-management/internal/utils"
)

// Low cost keeps the bcrypt calls cheap in tests.
const testBcryptCost = 4

func newUserService(store *memUserStore, tickets *memTicketStore) *UserService {
	return NewUserService(store, tickets, domain.DefaultCatalog(), testBcryptCost)
}

func TestUserRegister(t *testing.T) {
	ctx := context.Background()
	store := newMemUserStore()
	svc := newUserService(store, newMemTicketStore())

	res, err := svc.Register(ctx, RegisterInput{UserName: " Alice ", FirstName: "Alice", LastName: "Smith", Password: "s3cret"})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	u := res.Model()
	assert.Equal(t, "alice", u.UserName)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEqual(t, "s3cret", u.PasswordHash)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "s3cret"))
}

func TestUserRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newMemUserStore(), newMemTicketStore())

	res, err := svc.Register(ctx, RegisterInput{UserName: " ", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())

	res, err = svc.Register(ctx, RegisterInput{UserName: "bob", Password: ""})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())

	res, err = svc.Register(ctx, RegisterInput{UserName: "bob", Password: "x", Role: "OVERLORD"})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
}

func TestUserRegisterDuplicateName(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newMemUserStore(), newMemTicketStore())

	res, err := svc.Register(ctx, RegisterInput{UserName: "bob", Password: "x"})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())

	// Username comparison is done on the lowercased form.
	res, err = svc.Register(ctx, RegisterInput{UserName: "BOB", Password: "y"})
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())
}

func TestUserUpdateRole(t *testing.T) {
	ctx := context.Background()
	svc := newUserService(newMemUserStore(), newMemTicketStore())

	created, err := svc.Register(ctx, RegisterInput{UserName: "bob", Password: "x"})
	require.NoError(t, err)
	id := created.Model().ID

	res, err := svc.Update(ctx, id, UpdateUserInput{FirstName: "Bob", LastName: "Jones", Role: model.RoleSuperUser})
	require.NoError(t, err)
	require.True(t, res.IsSuccessful())
	assert.Equal(t, model.RoleSuperUser, res.Model().Role)

	res, err = svc.Update(ctx, id, UpdateUserInput{Role: "WIZARD"})
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalid, res.Kind())
}

func TestUserDeleteGuardedByTickets(t *testing.T) {
	ctx := context.Background()
	store := newMemUserStore()
	tickets := newMemTicketStore()
	svc := newUserService(store, tickets)

	created, err := svc.Register(ctx, RegisterInput{UserName: "bob", Password: "x"})
	require.NoError(t, err)
	id := created.Model().ID

	_, err = tickets.Purchase(ctx, id, 1, []uint64{1}, 1000, "ref")
	require.NoError(t, err)

	res, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.KindConflict, res.Kind())

	// Without tickets the account can go.
	other, err := svc.Register(ctx, RegisterInput{UserName: "carol", Password: "x"})
	require.NoError(t, err)
	res, err = svc.Delete(ctx, other.Model().ID)
	require.NoError(t, err)
	assert.True(t, res.IsSuccessful())
}
