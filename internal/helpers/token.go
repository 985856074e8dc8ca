package helpers

import (
	"context"
	"errors"
	"strings"
	"time"

	"api/internal/configuration"
	"api/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ParseAccessToken validates a bearer token issued by the identity service.
// Signature, expiry and audience are checked here; role checks are left to
// the route handlers.
func ParseAccessToken(jwtSecret string, tokenString string) (models.UserClaims, error) {
	if !strings.HasPrefix(tokenString, "Bearer ") {
		return models.UserClaims{}, errors.New("invalid token")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	claims := &models.UserClaims{}

	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		},
	)
	if err != nil {
		return models.UserClaims{}, errors.New("invalid token")
	}

	if claims.Aud != configuration.AudienceAccessToken {
		return models.UserClaims{}, errors.New("invalid token audience")
	}

	return *claims, nil
}

// NewAccessToken signs an access token. The identity service is the normal
// issuer; this is used by tests and local tooling.
func NewAccessToken(jwtSecret string, userID int32, email string, role models.Role) (string, error) {
	claims := models.UserClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Aud:    configuration.AudienceAccessToken,
		Issuer: configuration.AppName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  &jwt.NumericDate{Time: time.Now()},
			ExpiresAt: &jwt.NumericDate{Time: time.Now().Add(time.Minute * configuration.AccessTokenExpiry)},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtSecret))
}

func GetUserClaims(c context.Context) (models.UserClaims, error) {
	value, ok := c.Value(models.UserClaimKey{}).(models.UserClaims)
	if !ok {
		return models.UserClaims{}, errors.New("invalid user claims")
	}
	return value, nil
}
