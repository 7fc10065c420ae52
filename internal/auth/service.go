package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/credential"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/state"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// Validation and authentication failures. Each registration failure has
// a distinct reason; login reports a single undistinguished error so the
// caller cannot tell an unknown email from a wrong password.
var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// avatarColors is the fixed palette avatars are assigned from.
var avatarColors = []string{
	"#4b6cb7", "#4CAF50", "#FF9800", "#9C27B0", "#2196F3", "#795548",
}

// Service validates credentials against the stored user directory and
// hands session projections to the state store.
type Service struct {
	storage    *storage.Adapter
	state      *state.Store
	rememberMe bool
}

// NewService creates an auth service. rememberMe controls whether a
// successful login is persisted to the OS keyring and resumed at startup.
func NewService(st *storage.Adapter, store *state.Store, rememberMe bool) *Service {
	return &Service{
		storage:    st,
		state:      store,
		rememberMe: rememberMe,
	}
}

// Register validates the fields, appends a new user to the directory,
// and logs the new user in. The password is bcrypt-hashed before it is
// stored; plaintext never reaches the directory.
func (s *Service) Register(name, email, password, confirm string) (model.Session, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || email == "" || password == "" || confirm == "" {
		return model.Session{}, ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return model.Session{}, ErrPasswordTooShort
	}
	if password != confirm {
		return model.Session{}, ErrPasswordMismatch
	}
	if !validEmail(email) {
		return model.Session{}, ErrInvalidEmail
	}

	users := s.storage.Users()
	for _, u := range users {
		if u.Email == email {
			return model.Session{}, ErrEmailTaken
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return model.Session{}, err
	}

	user := model.User{
		ID:           model.NewID("user"),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Avatar:       GenerateAvatar(name),
		CreatedAt:    time.Now().UTC(),
	}
	s.storage.SaveUsers(append(users, user))

	return s.Login(email, password)
}

// Login checks the credentials against the user directory. On success it
// records the login time, builds the session projection, and installs it
// in the state store.
func (s *Service) Login(email, password string) (model.Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return model.Session{}, ErrInvalidCredentials
	}

	users := s.storage.Users()
	idx := -1
	for i, u := range users {
		if u.Email == email {
			idx = i
			break
		}
	}
	if idx < 0 || !CheckPassword(users[idx].PasswordHash, password) {
		return model.Session{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	users[idx].LastLoginAt = &now
	s.storage.SaveUsers(users)

	sess := model.NewSession(users[idx])
	s.state.Login(sess)

	if s.rememberMe {
		if err := credential.RememberSession(sess.ID); err != nil {
			s.state.AddNotification("Could not remember this session", model.SeverityWarning)
		}
	}

	return sess, nil
}

// Logout clears the session from state and forgets the remembered user.
func (s *Service) Logout() {
	_ = credential.ForgetSession()
	s.state.Logout()
}

// Resume restores the remembered session at startup. The keyring is the
// only thing that may carry a session across restarts; a session the
// state store loaded from the persisted pointer is dropped unless the
// keyring confirms it. Returns false when remember-me is disabled,
// nothing is remembered, or the remembered user no longer exists in the
// directory.
func (s *Service) Resume() bool {
	if !s.rememberMe {
		s.dropLoadedSession()
		return false
	}

	userID, err := credential.RememberedSession()
	if err != nil || userID == "" {
		s.dropLoadedSession()
		return false
	}

	for _, u := range s.storage.Users() {
		if u.ID == userID {
			s.state.Login(model.NewSession(u))
			return true
		}
	}
	s.dropLoadedSession()
	return false
}

// dropLoadedSession clears a session restored from the persisted
// pointer, in memory and in storage.
func (s *Service) dropLoadedSession() {
	if s.state.GetState().User.Active() {
		s.state.Logout()
		return
	}
	s.storage.ClearSession()
}

// SeedDemoUser adds the demo account to the directory on first run.
func (s *Service) SeedDemoUser() {
	users := s.storage.Users()
	for _, u := range users {
		if u.Email == "demo@tasktracker.com" {
			return
		}
	}

	hash, err := HashPassword("demo123")
	if err != nil {
		return
	}
	users = append(users, model.User{
		ID:           "demo_user_001",
		Name:         "Demo User",
		Email:        "demo@tasktracker.com",
		PasswordHash: hash,
		Avatar:       GenerateAvatar("Demo User"),
		CreatedAt:    time.Now().UTC(),
	})
	s.storage.SaveUsers(users)
}

// NormalizeEmail lowercases and trims an email address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GenerateAvatar derives the avatar badge for a display name: the first
// letters of up to two words, uppercased, and a palette color chosen
// deterministically from the name's byte sum.
func GenerateAvatar(name string) model.Avatar {
	var initials strings.Builder
	for i, word := range strings.Fields(name) {
		if i == 2 {
			break
		}
		r := []rune(word)
		initials.WriteString(strings.ToUpper(string(r[0])))
	}

	sum := 0
	for _, b := range []byte(name) {
		sum += int(b)
	}

	return model.Avatar{
		Initials: initials.String(),
		Color:    avatarColors[sum%len(avatarColors)],
	}
}
