package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
    const secret = "test-secret"
    at, err := NewAccessToken(secret, 42, "ADMIN", []string{"EVENT", "DELEVENT"}, 15)
    if err != nil {
        t.Fatal(err)
    }

    tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        t.Fatalf("token does not verify: %v", err)
    }
    claims := tok.Claims.(jwt.MapClaims)
    if claims["sub"].(float64) != 42 {
        t.Errorf("sub = %v", claims["sub"])
    }
    if claims["role"] != "ADMIN" {
        t.Errorf("role = %v", claims["role"])
    }
    perms := claims["perms"].([]interface{})
    if len(perms) != 2 || perms[0] != "EVENT" || perms[1] != "DELEVENT" {
        t.Errorf("perms = %v", perms)
    }
    if remain := time.Until(at.Exp); remain <= 0 || remain > 15*time.Minute {
        t.Errorf("expiry out of range: %s", remain)
    }
}

func TestNewAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("right", 1, "MEMBER", []string{"EVENT"}, 5)
    if err != nil {
        t.Fatal(err)
    }
    tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("wrong"), nil
    })
    if err == nil && tok.Valid {
        t.Fatal("token verified under the wrong secret")
    }
}

func TestNewRefreshToken(t *testing.T) {
    a, err := NewRefreshToken(7)
    if err != nil {
        t.Fatal(err)
    }
    b, err := NewRefreshToken(7)
    if err != nil {
        t.Fatal(err)
    }
    if len(a.Raw) != 96 {
        t.Errorf("raw length = %d, want 96 hex chars", len(a.Raw))
    }
    if a.Raw == b.Raw {
        t.Error("two tokens must not collide")
    }
}

func TestHashRefreshRaw(t *testing.T) {
    h := HashRefreshRaw("token")
    if len(h) != 64 {
        t.Errorf("hash length = %d, want 64 hex chars", len(h))
    }
    if h != HashRefreshRaw("token") {
        t.Error("hash must be deterministic")
    }
    if h == HashRefreshRaw("other") {
        t.Error("distinct inputs must hash differently")
    }
}
