package auth

import (
	"crypto/rsa"
	"os"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

// Application roles. Scanners are the RFID reader stations, dashboards the
// read-only wall displays.
const (
	RoleAdmin     = "ADMIN"
	RoleEmployee  = "EMPLOYEE"
	RoleDashboard = "DASHBOARD"
	RoleScanner   = "SCANNER"
)

type ctxKey int

// Key is used to store/retrieve Claims from a context.Context.
const Key ctxKey = 1

// Claims is what we put into and expect back from our signed tokens.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"type"`
}

// Authorized reports whether the claims carry one of the given roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// Auth validates tokens signed with our RSA private key.
type Auth struct {
	publicKey *rsa.PublicKey
	parser    *jwt.Parser
}

// New reads the PEM encoded private key and keeps its public half for token
// validation.
func New(privateKeyFile string) (*Auth, error) {
	keyData, err := os.ReadFile(privateKeyFile)
	if err != nil {
		return nil, errors.Wrap(err, "reading private key file")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return &Auth{
		publicKey: &privateKey.PublicKey,
		parser:    &jwt.Parser{ValidMethods: []string{jwt.SigningMethodRS256.Name}},
	}, nil
}

// ValidateToken checks the signature and expiry of the given token string
// and returns its claims.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := a.parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return a.publicKey, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	return claims, nil
}
