package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	pkgerrors "github.com/honeynil/BlackMarketService/pkg/errors"
)

const accountClaim = "account_id"

// GenerateJWT signs an HS256 token naming accountID as the acting account.
func GenerateJWT(secret []byte, accountID string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("JWT secret not set")
	}
	if accountID == "" {
		return "", fmt.Errorf("%w: empty account id", pkgerrors.ErrInvalidInput)
	}
	now := time.Now()
	claims := jwt.MapClaims{
		accountClaim: accountID,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateJWT returns the account id carried by a token signed with secret.
func ValidateJWT(secret []byte, tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Method.Alg())
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", pkgerrors.ErrInvalidCredentials, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%w: invalid token claims", pkgerrors.ErrInvalidCredentials)
	}
	accountID, ok := claims[accountClaim].(string)
	if !ok || accountID == "" {
		return "", fmt.Errorf("%w: invalid %s in token", pkgerrors.ErrInvalidCredentials, accountClaim)
	}
	return accountID, nil
}
