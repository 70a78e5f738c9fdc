package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_RejectsDuplicates(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, testLogger())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "ana", Email: "ana@test.dev", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Username: "ana", Email: "other@test.dev", Password: "secret1",
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Username: "other", Email: "ana@test.dev", Password: "secret1",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRegister_HashesPassword(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, testLogger())

	user, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "ana", Email: "ana@test.dev", Password: "secret1",
	})
	require.NoError(t, err)
	require.NotEqual(t, "secret1", user.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
}

func TestLogin_WrongPasswordOrInactive(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users, testLogger())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Username: "ana", Email: "ana@test.dev", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{Username: "ana", Password: "wrong"})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Login(context.Background(), &LoginRequest{Username: "nobody", Password: "secret1"})
	require.ErrorIs(t, err, ErrValidation)

	user, err := svc.Login(context.Background(), &LoginRequest{Username: "ana", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, "ana", user.Username)

	user.IsActive = false
	_, err = svc.Login(context.Background(), &LoginRequest{Username: "ana", Password: "secret1"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetByID_Missing(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testLogger())

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.GetByID(context.Background(), uuid.New().String())
	require.ErrorIs(t, err, ErrNotFound)
}
