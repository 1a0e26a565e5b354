// Package utils provides helpers for issuing admin tokens and hashing
// admin passwords.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the role claim carried by admin access tokens.
const AdminRole = "ADMIN"

// AdminSubject is the subject claim of admin access tokens.  There is a
// single admin identity, configured through the environment.
const AdminSubject = "admin"

// AccessToken is a signed JWT together with its expiry.
type AccessToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires"`
}

// NewAccessToken builds and signs an HS256 JWT.  The claims are sub, role,
// exp and iat.
func NewAccessToken(secret, subject, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
