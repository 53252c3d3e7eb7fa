package service

import (
	"context"
	"testing"
	"time"

	"tabular-qa-be/internal/config"
	"tabular-qa-be/internal/dto"
	"tabular-qa-be/internal/entity"
	"tabular-qa-be/internal/pkg/apperror"
	"tabular-qa-be/internal/pkg/serverutils"
	"tabular-qa-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	var byEmail *string
	var byId *uuid.UUID
	activeOnly := false
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByEmail:
			email := v.Email
			byEmail = &email
		case specification.ByID:
			id := v.ID
			byId = &id
		case specification.ActiveOnly:
			activeOnly = true
		}
	}
	for _, u := range r.users {
		if byEmail != nil && u.Email != *byEmail {
			continue
		}
		if byId != nil && u.Id != *byId {
			continue
		}
		if activeOnly && !u.IsActive {
			continue
		}
		return u, nil
	}
	return nil, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:          "unit-test-secret",
		AccessTokenMinutes: 30,
	}
}

func newTestAuthService(userRepo *fakeUserRepo) IAuthService {
	uow := &fakeUow{userRepo: userRepo, fileRepo: &fakeFileRepo{}, historyRepo: &fakeHistoryRepo{}}
	return NewAuthService(&fakeUowFactory{uow: uow}, testAuthConfig(), nil)
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entity.User{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     active,
		CreatedAt:    time.Now(),
	}
	repo.users = append(repo.users, user)
	return user
}

func TestRegister(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := newTestAuthService(repo)

	res, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "new@example.com",
		Password: "secret123",
		FullName: "New User",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", res.Email)
	require.Len(t, repo.users, 1)

	// Plaintext must never be stored.
	assert.NotEqual(t, "secret123", repo.users[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[0].PasswordHash), []byte("secret123")))
	assert.True(t, repo.users[0].IsActive)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "taken@example.com", "whatever1", true)
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "secret123",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
}

func TestLogin(t *testing.T) {
	repo := &fakeUserRepo{}
	user := seedUser(t, repo, "user@example.com", "secret123", true)
	svc := newTestAuthService(repo)

	res, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", res.TokenType)

	claims, err := serverutils.ParseToken("unit-test-secret", res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Id.String(), claims.Subject)
	assert.Equal(t, serverutils.TokenTypeAccess, claims.TokenType)
}

func TestLoginFailuresAreUniform(t *testing.T) {
	repo := &fakeUserRepo{}
	seedUser(t, repo, "user@example.com", "secret123", true)
	seedUser(t, repo, "inactive@example.com", "secret123", false)
	svc := newTestAuthService(repo)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "ghost@example.com", "secret123"},
		{"wrong password", "user@example.com", "wrong-password"},
		{"deactivated user", "inactive@example.com", "secret123"},
	}

	var messages []string
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &dto.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			})
			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindUnauthorized))
			messages = append(messages, err.Error())
		})
	}

	// Every failure mode reads identically to a caller.
	for _, msg := range messages {
		assert.Equal(t, messages[0], msg)
	}
}
