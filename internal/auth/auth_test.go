package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byEmail: make(map[string]*models.User)}
}

func (m *memUsers) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byEmail[user.Email] = user
	return nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func newTestAuthenticator() *PasswordAuthenticator {
	return NewPasswordAuthenticator(newMemUsers()).WithCost(bcrypt.MinCost)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()

	user, err := a.Register(ctx, "  Maria@Example.com ", "Maria", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", user.Email)
	assert.NotEqual(t, "correct-horse", user.PasswordHash)

	got, err := a.Authenticate(ctx, "MARIA@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = a.Authenticate(ctx, "maria@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = a.Authenticate(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejections(t *testing.T) {
	ctx := context.Background()
	a := newTestAuthenticator()

	_, err := a.Register(ctx, "a@example.com", "A", "short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = a.Register(ctx, "a@example.com", "A", "long-enough")
	require.NoError(t, err)
	_, err = a.Register(ctx, "A@example.com", "A again", "long-enough")
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret-key-at-least-32-bytes!", time.Hour)
	user := &models.User{ID: "u1", Email: "maria@example.com", DisplayName: "Maria"}

	token, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, "Maria", claims.DisplayName)
}

func TestJWTRejectsBadTokens(t *testing.T) {
	m := NewJWTManager("test-secret-key-at-least-32-bytes!", time.Hour)
	other := NewJWTManager("a-different-secret-of-32-bytes!!", time.Hour)
	user := &models.User{ID: "u1", Email: "maria@example.com"}

	token, err := other.Generate(user)
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTManager("test-secret-key-at-least-32-bytes!", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err = expired.Generate(user)
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
