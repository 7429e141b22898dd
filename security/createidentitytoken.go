package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type DeviceIdentity struct {
	DeviceID string
	UserName string
}

type Identity struct {
	UniqueName string `json:"unique_name"`
	SID        string `json:"sid"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

// CreateIdentityToken mints the HS256 bearer token the shift API accepts.
func CreateIdentityToken(identity *DeviceIdentity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: Identity{
			UniqueName: identity.UserName,
			SID:        identity.DeviceID,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "offwork",
			Audience:  []string{"offwork.app"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	// Use HS256 signing method (symmetric key)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretBytes)
}
