package hasher

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

// Argon2id hashes passwords with argon2id. Hashes embed their own parameters, so
// changing the parameters keeps old hashes verifiable.
type Argon2id struct {
	params *argon2id.Params
}

// NewArgon2id creates an Argon2id hasher. A nil params uses argon2id.DefaultParams.
func NewArgon2id(params *argon2id.Params) *Argon2id {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &Argon2id{params: params}
}

// Hash returns the encoded hash of password, e.g.
// $argon2id$v=19$m=65536,t=1,p=2$c29tZXNhbHQ$RdescudvJCsgt3ub+b+dWRWJTmaaJObG
func (a *Argon2id) Hash(password string) (string, error) {
	hash, err := argon2id.CreateHash(password, a.params)
	if err != nil {
		return "", fmt.Errorf("error creating argon2id hash: %w", err)
	}
	return hash, nil
}

// Compare reports whether password matches the encoded hash.
func (a *Argon2id) Compare(password, hash string) (bool, error) {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		return false, fmt.Errorf("error comparing argon2id hash: %w", err)
	}
	return match, nil
}
