package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sagacious/sagacious/pkg/middleware"
)

// InsecureVerifier accepts any well-formed JWT without checking its
// signature. Only wired under the explicit ALLOW_INSECURE_TOKEN opt-in, for
// integration tests against stub identity providers.
type InsecureVerifier struct {
	parser *jwt.Parser
}

func NewInsecureVerifier() *InsecureVerifier {
	return &InsecureVerifier{parser: jwt.NewParser()}
}

func (v *InsecureVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	claims := jwt.MapClaims{}
	if _, _, err := v.parser.ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("auth: parse token: %w", err)
	}
	return &unverifiedToken{claims: claims}, nil
}

type unverifiedToken struct {
	claims jwt.MapClaims
}

func (t *unverifiedToken) Claims(v interface{}) error {
	b, err := json.Marshal(t.claims)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
