// Package credential keeps the remembered session in the OS keyring.
// It stores a single entry: the user id of the session to resume at
// startup.
package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName = "taskdeck"
	sessionKey  = "session-user"
)

func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  "~/.config/taskdeck/credentials",
		FilePasswordFunc:         keyring.FixedStringPrompt("taskdeck-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// RememberSession stores the user id to resume on the next start.
func RememberSession(userID string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:  sessionKey,
		Data: []byte(userID),
	})
	if err != nil {
		return fmt.Errorf("remembering session: %w", err)
	}
	return nil
}

// RememberedSession returns the stored user id. An empty id with a nil
// error means nothing is remembered.
func RememberedSession() (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(sessionKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading remembered session: %w", err)
	}
	return string(item.Data), nil
}

// ForgetSession removes the stored user id. A missing entry is not an
// error.
func ForgetSession() error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Remove(sessionKey)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("forgetting session: %w", err)
	}
	return nil
}
