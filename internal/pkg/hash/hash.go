package hash

import "golang.org/x/crypto/bcrypt"

// Bcrypt is a one-way hasher used for both passwords and OTP codes.
// The cost factor makes hashing deliberately slow to resist offline
// brute force of leaked hashes.
type Bcrypt struct {
	cost int
}

// NewBcrypt returns a hasher with the given cost. Costs outside bcrypt's
// supported range fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Compare returns nil when plain matches hashed. The comparison is
// constant-time with respect to the hash.
func (b *Bcrypt) Compare(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
