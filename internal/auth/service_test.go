package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fittrack/internal/shared/config"
	"fittrack/internal/users"
)

// fakeRepository is an in-memory Repository keyed by email and id.
type fakeRepository struct {
	byEmail map[string]*users.User
	byID    map[string]*users.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byEmail: make(map[string]*users.User),
		byID:    make(map[string]*users.User),
	}
}

func (f *fakeRepository) CreateUser(ctx context.Context, user *users.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return ErrUserAlreadyExists
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byEmail[user.Email] = user
	f.byID[user.ID.String()] = user
	return nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (f *fakeRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	user, ok := f.byID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (f *fakeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:       "test-secret",
			JWTExpiresIn: 15 * time.Minute,
		},
	}
}

func newTestService() (Service, *fakeRepository) {
	repo := newFakeRepository()
	return NewService(repo, testConfig()), repo
}

func registerTestUser(t *testing.T, svc Service, email string) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     email,
		Password:  "secret123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc, repo := newTestService()

	resp := registerTestUser(t, svc, "Alex@Example.COM")

	assert.Equal(t, "alex@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), resp.ExpiresIn)

	// Password is stored hashed, never verbatim
	stored := repo.byEmail["alex@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	registerTestUser(t, svc, "alex@example.com")

	// Same address with different casing is still a duplicate
	_, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "ALEX@example.com",
		Password:  "another456",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	registered := registerTestUser(t, svc, "alex@example.com")

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alex@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService()
	registerTestUser(t, svc, "alex@example.com")

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "alex@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	// Unknown account and wrong password must be indistinguishable
	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenClaims(t *testing.T) {
	svc, _ := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "alex@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)

	refreshClaims, err := svc.ValidateToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc, _ := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "a-different-secret"
	other := NewService(newFakeRepository(), otherCfg)

	_, err := other.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.JWTExpiresIn = -time.Minute
	svc := NewService(newFakeRepository(), cfg)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "alex@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	_, err := svc.RefreshToken(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenDeletedUser(t *testing.T) {
	svc, repo := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	delete(repo.byID, resp.User.ID)
	delete(repo.byEmail, "alex@example.com")

	_, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	err := svc.ChangePassword(context.Background(), resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "brandnew789",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "alex@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "alex@example.com",
		Password: "brandnew789",
	})
	assert.NoError(t, err)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _ := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	err := svc.ChangePassword(context.Background(), resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "brandnew789",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	svc, _ := newTestService()
	resp := registerTestUser(t, svc, "alex@example.com")

	me, err := svc.Me(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, me.ID)
	assert.Equal(t, "alex@example.com", me.Email)

	_, err = svc.Me(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
