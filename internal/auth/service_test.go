package auth

import (
	"context"
	"testing"
	"time"

	"matchday/internal/shared/config"
	"matchday/internal/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockUserRepo struct {
	createFn      func(ctx context.Context, user *users.User) error
	getByIDFn     func(ctx context.Context, id uuid.UUID) (*users.User, error)
	getByEmailFn  func(ctx context.Context, email string) (*users.User, error)
	emailExistsFn func(ctx context.Context, email string) (bool, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *users.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return m.getByIDFn(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return m.getByEmailFn(ctx, email)
}
func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return m.emailExistsFn(ctx, email)
}
func (m *mockUserRepo) List(ctx context.Context, query users.ListUsersQuery) ([]users.User, int64, error) {
	return nil, 0, nil
}
func (m *mockUserRepo) Update(ctx context.Context, user *users.User) error { return nil }
func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		emailExists bool
		wantErr     error
		wantRole    string
	}{
		{"regular user", "user", false, nil, "USER"},
		{"organizer", "ORGANIZER", false, nil, "ORGANIZER"},
		{"unknown role falls back to user", "superadmin", false, nil, "USER"},
		{"duplicate email", "user", true, ErrUserAlreadyExists, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *users.User
			repo := &mockUserRepo{
				emailExistsFn: func(ctx context.Context, email string) (bool, error) {
					return tt.emailExists, nil
				},
				createFn: func(ctx context.Context, user *users.User) error {
					user.ID = uuid.New()
					created = user
					return nil
				},
			}

			svc := NewService(repo, testConfig())
			resp, err := svc.Register(context.Background(), &RegisterRequest{
				Name:     "Alex Romero",
				Email:    "alex@matchday.dev",
				Password: "secret123",
				Role:     tt.role,
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, resp.User.Role)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)

			// Stored password must be a bcrypt hash, never plaintext
			require.NotNil(t, created)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
		})
	}
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &users.User{
		ID:       uuid.New(),
		Name:     "Alex Romero",
		Email:    "alex@matchday.dev",
		Password: string(hashed),
		Role:     users.RoleUser,
	}

	repo := &mockUserRepo{
		getByEmailFn: func(ctx context.Context, email string) (*users.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, users.ErrUserNotFound
		},
	}
	svc := NewService(repo, testConfig())

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "alex@matchday.dev",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.Equal(t, stored.ID.String(), resp.User.ID)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "alex@matchday.dev",
			Password: "wrong",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &LoginRequest{
			Email:    "nobody@matchday.dev",
			Password: "secret123",
		})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken_Roundtrip(t *testing.T) {
	user := &users.User{
		ID:    uuid.New(),
		Email: "org@matchday.dev",
		Role:  users.RoleOrganizer,
	}

	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, u *users.User) error {
			u.ID = user.ID
			return nil
		},
	}
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "League Office",
		Email:    user.Email,
		Password: "secret123",
		Role:     "organizer",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.True(t, claims.IsOrganizer)
	assert.Equal(t, "access", claims.Type)

	refreshClaims, err := svc.ValidateToken(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestValidateToken_Invalid(t *testing.T) {
	svc := NewService(&mockUserRepo{}, testConfig())

	_, err := svc.ValidateToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// Token signed with a different secret
	other := NewService(&mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, u *users.User) error {
			u.ID = uuid.New()
			return nil
		},
	}, &config.Config{
		JWT: config.JWTConfig{
			Secret:           "different-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	})

	resp, err := other.Register(context.Background(), &RegisterRequest{
		Name:     "Alex Romero",
		Email:    "alex@matchday.dev",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	user := &users.User{ID: uuid.New(), Email: "alex@matchday.dev", Role: users.RoleUser}

	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, u *users.User) error {
			u.ID = user.ID
			return nil
		},
		getByIDFn: func(ctx context.Context, id uuid.UUID) (*users.User, error) {
			if id == user.ID {
				return user, nil
			}
			return nil, users.ErrUserNotFound
		},
	}
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Alex Romero",
		Email:    user.Email,
		Password: "secret123",
	})
	require.NoError(t, err)

	t.Run("refresh token issues new pair", func(t *testing.T) {
		pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("access token rejected for refresh", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), resp.AccessToken)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
