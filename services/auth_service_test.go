package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"
)

type fakeSessionRepo struct {
	sessions map[string]*models.Session
	saveErr  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*models.Session{}}
}

func (f *fakeSessionRepo) Save(_ context.Context, session *models.Session) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.sessions[session.UserID] = session
	return nil
}

func (f *fakeSessionRepo) Get(_ context.Context, userID string) (*models.Session, error) {
	return f.sessions[userID], nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, userID string) error {
	delete(f.sessions, userID)
	return nil
}

func newAuthService(sessions *fakeSessionRepo) services.AuthService {
	users := repository.NewMemoryUserRepository(0)
	return services.NewAuthService(users, sessions, []byte("test-secret"), time.Hour, zap.NewNop())
}

func TestRegister_IssuesTokenAndSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newAuthService(sessions)

	resp, svcErr := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	assert.Nil(t, svcErr)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.False(t, resp.IsAdmin)

	session := sessions.sessions[resp.ID]
	assert.NotNil(t, session)
	assert.Equal(t, resp.Token, session.Token)
	assert.True(t, session.ExpiresAt.After(session.IssuedAt))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeSessionRepo())

	ctx := context.Background()
	_, svcErr := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	assert.Nil(t, svcErr)

	_, svcErr = svc.Register(ctx, "Mallory", "Alice@Example.com", "letmein1")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 409, svcErr.StatusCode)
}

func TestRegister_AdminEmailRule(t *testing.T) {
	svc := newAuthService(newFakeSessionRepo())

	resp, svcErr := svc.Register(context.Background(), "Root", "admin@example.com", "hunter22")
	assert.Nil(t, svcErr)
	assert.True(t, resp.IsAdmin)
}

func TestLogin_RoundTrip(t *testing.T) {
	svc := newAuthService(newFakeSessionRepo())

	ctx := context.Background()
	registered, _ := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")

	resp, svcErr := svc.Login(ctx, "alice@example.com", "hunter22")
	assert.Nil(t, svcErr)
	assert.Equal(t, registered.ID, resp.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := newAuthService(newFakeSessionRepo())

	ctx := context.Background()
	_, _ = svc.Register(ctx, "Alice", "alice@example.com", "hunter22")

	_, svcErr := svc.Login(ctx, "alice@example.com", "wrong-pass")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)

	// unknown email yields the same status, no account probing
	_, svcErr = svc.Login(ctx, "nobody@example.com", "hunter22")
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
}

func TestRegister_SessionPersistFailureIsNotFatal(t *testing.T) {
	sessions := newFakeSessionRepo()
	sessions.saveErr = assert.AnError
	svc := newAuthService(sessions)

	resp, svcErr := svc.Register(context.Background(), "Alice", "alice@example.com", "hunter22")
	assert.Nil(t, svcErr)
	assert.NotEmpty(t, resp.Token)
}

func TestLogout_RemovesSession(t *testing.T) {
	sessions := newFakeSessionRepo()
	svc := newAuthService(sessions)

	ctx := context.Background()
	resp, _ := svc.Register(ctx, "Alice", "alice@example.com", "hunter22")
	assert.NotNil(t, sessions.sessions[resp.ID])

	svcErr := svc.Logout(ctx, resp.ID)
	assert.Nil(t, svcErr)
	assert.Nil(t, sessions.sessions[resp.ID])
}
