// Package token issues the bearer tokens used by the judge and organizer
// portals after a successful email + password login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Role string

const (
	RoleJudge     Role = "judge"
	RoleOrganizer Role = "organizer"
)

const issuer = "judgebase"

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Subject id (judge id or hackathon id) carried by the token
func (c *Claims) SubjectID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(subject uuid.UUID, role Role) (string, error) {
	now := i.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (i *Issuer) Parse(raw string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	return claims, nil
}
