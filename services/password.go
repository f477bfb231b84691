package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const defaultBcryptCost = 12

// PasswordService hashes and verifies account passwords with bcrypt. The
// cost is injectable so tests can use a cheap one.
type PasswordService struct {
	cost int
}

func NewPasswordService() PasswordService {
	return PasswordService{cost: defaultBcryptCost}
}

func NewPasswordServiceWithCost(cost int) PasswordService {
	return PasswordService{cost: cost}
}

// Hash returns the bcrypt hash of a plaintext password.
func (s PasswordService) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (s PasswordService) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
