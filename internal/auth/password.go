package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implements domain.PasswordHasher with bcrypt digests.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher constructs a hasher with the default cost.
func NewBcryptHasher() BcryptHasher {
	return BcryptHasher{Cost: bcrypt.DefaultCost}
}

// Hash derives an opaque digest from the password.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the password matches the digest.
func (h BcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
