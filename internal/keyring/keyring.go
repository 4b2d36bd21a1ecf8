package keyring

import (
	"errors"
	"fmt"
	"strings"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/tempo/internal/constants"
)

var (
	ErrNotFound           = errors.New("credentials not found in keyring")
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

const probeUser = "availability-probe"

// Entry addresses one secret in the OS keyring
type Entry struct {
	Service string
	User    string
}

// ConnectionString is the entry holding the PostgreSQL connection string
func ConnectionString() Entry {
	return Entry{Service: constants.AppName, User: constants.DefaultKeyringUser}
}

func (e Entry) Get() (string, error) {
	secret, err := gokeyring.Get(e.Service, e.User)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return secret, nil
}

func (e Entry) Set(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("secret cannot be empty")
	}
	if err := gokeyring.Set(e.Service, e.User, secret); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func (e Entry) Delete() error {
	if err := gokeyring.Delete(e.Service, e.User); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable probes the keyring with a read. A missing entry still means
// the backend answered.
func IsAvailable() bool {
	_, err := gokeyring.Get(constants.AppName, probeUser)
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}

// Mask hides everything in a connection string except its scheme and host
func Mask(connStr string) string {
	if scheme, rest, ok := strings.Cut(connStr, "://"); ok {
		if _, host, ok := strings.Cut(rest, "@"); ok {
			rest = host
		}
		host, _, _ := strings.Cut(rest, "/")
		return scheme + "://***@" + host + "/***"
	}
	for _, part := range strings.Fields(connStr) {
		if k, v, ok := strings.Cut(part, "="); ok && strings.EqualFold(k, "host") {
			return "host=" + v + " ***"
		}
	}
	return "***"
}
