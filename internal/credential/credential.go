// Package credential generates and hashes the passwords issued to approved
// judges and organizers.
package credential

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/alexedwards/argon2id"
)

const (
	Length   = 12
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*"
)

var ErrEmptyAlphabet = errors.New("alphabet must not be empty")

// Generates a Length character password from Alphabet using crypto/rand
func Generate() (string, error) {
	return GenerateFrom(Alphabet, Length)
}

func GenerateFrom(alphabet string, length int) (string, error) {
	if len(alphabet) == 0 {
		return "", ErrEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		// rand.Int is uniform over [0, limit)
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}

	return string(out), nil
}

// argon2id hash suitable for storing at rest
func Hash(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

func Verify(password, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}
