package commands

import (
	"os"
	"time"

	"ems/backend/internal/auth"
	"ems/backend/internal/repository/postgres/employee"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// GenToken signs an access/refresh token pair with the RSA private key
// at keyPath.
func GenToken(claims employee.AuthClaims, keyPath string) (string, string, error) {
	privatePEM, err := os.ReadFile(keyPath)
	if err != nil {
		return "", "", errors.Wrap(err, "reading private key")
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return "", "", errors.Wrap(err, "parsing private key")
	}

	now := time.Now()

	accessClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   "access",
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, accessClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshClaims := auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
		UserId: claims.ID,
		Role:   claims.Role,
		Type:   "refresh",
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodRS256, refreshClaims).SignedString(privateKey)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens validates a token pair. The access token may be expired;
// the refresh token must be valid.
func VerifyTokens(accessToken, refreshToken, keyPath string) (auth.Claims, auth.Claims, error) {
	a, err := auth.New(keyPath)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, err
	}

	accessClaims, err := a.ValidateToken(accessToken)
	if err != nil {
		validationErr, ok := errors.Cause(err).(*jwt.ValidationError)
		if !ok || validationErr.Errors&jwt.ValidationErrorExpired == 0 {
			return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "validating access token")
		}
	}

	refreshClaims, err := a.ValidateToken(refreshToken)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "validating refresh token")
	}
	if refreshClaims.Type != "refresh" {
		return auth.Claims{}, auth.Claims{}, errors.New("token is not a refresh token")
	}

	return accessClaims, refreshClaims, nil
}
