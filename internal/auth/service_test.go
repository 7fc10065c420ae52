package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// newTestService builds an auth service with remember-me disabled so
// tests never touch the OS keyring.
func newTestService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	store := state.New(a, 0)
	return NewService(a, store, false), store
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		confirm  string
		setup    func(s *Service)
		wantErr  error
	}{
		{
			name:     "successful registration",
			userName: "Ada Lovelace",
			email:    "ada@example.com",
			password: "secret1",
			confirm:  "secret1",
		},
		{
			name:     "missing name",
			userName: "  ",
			email:    "ada@example.com",
			password: "secret1",
			confirm:  "secret1",
			wantErr:  ErrMissingFields,
		},
		{
			name:     "short password",
			userName: "Ada",
			email:    "ada@example.com",
			password: "ab",
			confirm:  "ab",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password mismatch",
			userName: "Ada",
			email:    "ada@example.com",
			password: "secret1",
			confirm:  "secret2",
			wantErr:  ErrPasswordMismatch,
		},
		{
			name:     "invalid email",
			userName: "Ada",
			email:    "not-an-email",
			password: "secret1",
			confirm:  "secret1",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "duplicate email is case-insensitive",
			userName: "Ada Again",
			email:    "ADA@Example.COM",
			password: "secret1",
			confirm:  "secret1",
			setup: func(s *Service) {
				_, err := s.Register("Ada", "ada@example.com", "secret1", "secret1")
				require.NoError(t, err)
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			sess, err := svc.Register(tt.userName, tt.email, tt.password, tt.confirm)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, sess.Active())
			assert.Equal(t, "ada@example.com", sess.Email)
			assert.Equal(t, sess.ID, store.GetState().User.ID,
				"registration must log the new user in")
		})
	}
}

func TestRegisterNeverStoresPlaintext(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)

	users := svc.storage.Users()
	require.Len(t, users, 1)
	assert.NotContains(t, users[0].PasswordHash, "secret1")
	assert.True(t, CheckPassword(users[0].PasswordHash, "secret1"))
}

func TestLogin(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)
	store.Logout()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "correct credentials", email: "ada@example.com", password: "secret1"},
		{name: "email is case-insensitive", email: "ADA@EXAMPLE.COM", password: "secret1"},
		{name: "wrong password", email: "ada@example.com", password: "wrong", wantErr: true},
		{name: "unknown email", email: "nobody@example.com", password: "secret1", wantErr: true},
		{name: "empty password", email: "ada@example.com", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := svc.Login(tt.email, tt.password)
			if tt.wantErr {
				// One undistinguished error for every failure mode.
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", sess.Email)
			store.Logout()
		})
	}
}

func TestLoginRecordsLastLogin(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)
	store.Logout()

	_, err = svc.Login("ada@example.com", "secret1")
	require.NoError(t, err)

	users := svc.storage.Users()
	require.Len(t, users, 1)
	require.NotNil(t, users[0].LastLoginAt)
}

func TestFailedLoginLeavesStateUntouched(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)
	store.Logout()

	_, err = svc.Login("ada@example.com", "wrong")
	assert.Error(t, err)
	assert.False(t, store.GetState().User.Active())
}

func TestResumeWithoutRememberMeClearsSession(t *testing.T) {
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	a.SaveSession(model.Session{ID: "stale_user"})

	store := state.New(a, 0)
	svc := NewService(a, store, false)
	assert.False(t, svc.Resume())
	assert.False(t, a.Session().Active())
}

func TestResumeWithoutRememberMeDropsLoadedSession(t *testing.T) {
	a, err := storage.Open(":memory:")
	require.NoError(t, err)
	defer a.Close()

	store := state.New(a, 0)
	svc := NewService(a, store, false)
	_, err = svc.Register("Ada", "ada@example.com", "secret1", "secret1")
	require.NoError(t, err)

	// A restart over the same adapter loads the persisted session
	// pointer into the fresh store.
	store2 := state.New(a, 0)
	svc2 := NewService(a, store2, false)
	require.True(t, store2.GetState().User.Active())

	assert.False(t, svc2.Resume())
	assert.False(t, store2.GetState().User.Active(),
		"without remember-me the session lives only for the process")
	assert.False(t, a.Session().Active())
}

func TestSeedDemoUser(t *testing.T) {
	svc, _ := newTestService(t)

	svc.SeedDemoUser()
	svc.SeedDemoUser() // second call must not duplicate

	users := svc.storage.Users()
	require.Len(t, users, 1)
	assert.Equal(t, "demo@tasktracker.com", users[0].Email)

	sess, err := svc.Login("demo@tasktracker.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "Demo User", sess.Name)
	assert.Equal(t, "DU", sess.Avatar.Initials)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", NormalizeEmail("  ADA@Example.Com "))
}

func TestGenerateAvatar(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantInitials string
	}{
		{name: "two words", input: "Ada Lovelace", wantInitials: "AL"},
		{name: "single word", input: "ada", wantInitials: "A"},
		{name: "three words caps at two", input: "Ada King Lovelace", wantInitials: "AK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateAvatar(tt.input)
			assert.Equal(t, tt.wantInitials, got.Initials)
			assert.Contains(t, avatarColors, got.Color)
		})
	}
}

func TestGenerateAvatarIsDeterministic(t *testing.T) {
	first := GenerateAvatar("Ada Lovelace")
	second := GenerateAvatar("Ada Lovelace")
	assert.Equal(t, first, second)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "secret1"))
	assert.False(t, CheckPassword(hash, "secret2"))

	// Hashes are salted: two hashes of the same password differ.
	other, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@sub.example.com"}
	invalid := []string{"", "plain", "a@b", "@example.com", "a @b.co"}

	for _, e := range valid {
		assert.True(t, validEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, validEmail(e), e)
	}
}
