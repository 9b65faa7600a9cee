package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Errors returned by the user store.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrUserExists     = errors.New("user already exists")
	ErrBadCredentials = errors.New("invalid username or password")
)

// User is one operator account. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	CanViewConfig bool   `json:"can_view_config"`
}

// Users is a file-backed operator account store. The file is a JSON array of
// User, matching the users.json layout the adduser tool manages.
type Users struct {
	path string
	mu   sync.Mutex
}

// NewUsers creates a store over the given file. The file may not exist yet;
// it is created on the first write.
func NewUsers(path string) *Users {
	return &Users{path: path}
}

// Verify checks a username/password pair and returns the matching account.
// All failures collapse to ErrBadCredentials so callers cannot distinguish an
// unknown user from a wrong password.
func (u *Users) Verify(username, password string) (*User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	users, err := u.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			if bcrypt.CompareHashAndPassword([]byte(users[i].Password), []byte(password)) != nil {
				return nil, ErrBadCredentials
			}
			user := users[i]
			return &user, nil
		}
	}
	return nil, ErrBadCredentials
}

// Add creates a new account with a bcrypt-hashed password.
func (u *Users) Add(username, password string, canViewConfig bool) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	users, err := u.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == username {
			return ErrUserExists
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users = append(users, User{Username: username, Password: string(hash), CanViewConfig: canViewConfig})
	return u.save(users)
}

// SetPassword resets an existing account's password.
func (u *Users) SetPassword(username, password string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	users, err := u.load()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == username {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			users[i].Password = string(hash)
			return u.save(users)
		}
	}
	return ErrUserNotFound
}

// Delete removes an account.
func (u *Users) Delete(username string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	users, err := u.load()
	if err != nil {
		return err
	}
	kept := users[:0]
	for i := range users {
		if users[i].Username != username {
			kept = append(kept, users[i])
		}
	}
	if len(kept) == len(users) {
		return ErrUserNotFound
	}
	return u.save(kept)
}

// List returns all accounts with password hashes blanked.
func (u *Users) List() ([]User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	users, err := u.load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (u *Users) load() ([]User, error) {
	data, err := os.ReadFile(u.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parse %s: %w", u.path, err)
	}
	return users, nil
}

func (u *Users) save(users []User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(u.path, data, 0o600)
}
