package helper

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/one-love/onelove/pkg/model"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// GenerateAccessToken signs an RS256 token embedding the user as a claim, so
// holders of the public key can authorize requests without a user lookup.
func GenerateAccessToken(user *model.User, key *rsa.PrivateKey, expirationInSeconds int) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		IssuedAt(now).
		Expiration(now.Add(time.Duration(expirationInSeconds) * time.Second)).
		Claim("user", user).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	if err != nil {
		return "", err
	}

	return string(signed), nil
}

// RefreshToken holds a signed HS256 token along with the id and lifetime under
// which it is allow-listed in redis.
type RefreshToken struct {
	Signed string
	ID     string
	TTL    time.Duration
}

func GenerateRefreshToken(user *model.User, secretKey string, expirationInSeconds int) (*RefreshToken, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(expirationInSeconds) * time.Second)
	tokenId := uuid.NewString()

	token, err := jwt.NewBuilder().
		JwtID(tokenId).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("userId", user.ID).
		Build()
	if err != nil {
		return nil, err
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secretKey)))
	if err != nil {
		return nil, err
	}

	return &RefreshToken{
		Signed: string(signed),
		ID:     tokenId,
		TTL:    expiresAt.Sub(now),
	}, nil
}

type RefreshTokenClaims struct {
	UserId    uint
	TokenId   string
	ExpiresIn time.Duration
	IssuedAt  int64
}

// ValidateRefreshToken parses and verifies a signed refresh token. Expired
// tokens are rejected by the parser itself.
func ValidateRefreshToken(tokenString string, secretKey string) (*RefreshTokenClaims, error) {
	token, err := jwt.Parse(
		[]byte(tokenString),
		jwt.WithKey(jwa.HS256, []byte(secretKey)),
	)
	if err != nil {
		return nil, err
	}

	rawUserId, ok := token.Get("userId")
	if !ok {
		return nil, fmt.Errorf("userId not found in claims")
	}
	userId, ok := rawUserId.(float64)
	if !ok {
		return nil, fmt.Errorf("unexpected userId claim type %T", rawUserId)
	}

	return &RefreshTokenClaims{
		UserId:    uint(userId),
		TokenId:   token.JwtID(),
		ExpiresIn: time.Until(token.Expiration()),
		IssuedAt:  token.IssuedAt().Unix(),
	}, nil
}
