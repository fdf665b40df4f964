package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies and mints the actor-identity tokens the API expects.
// Who issues them (an SSO gateway, a dev script) is outside this system;
// the workflow only needs the actor id carried in the `sub` claim.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateActorToken(actorID string, ttl time.Duration) (string, error)
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
}

func NewJWTService(secretKey string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateActorToken(actorID string, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"sub": actorID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, err
}
