package middleware

// identity.go holds helpers shared across middleware files for naming the
// caller in cache and rate-limit keys. The value only has to be stable per
// caller, not authoritative, so unauthenticated requests collapse to "anon".

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user id from context as a string
// for key-building purposes. JWTAuth stores the raw claim value, which may
// be a float64 or string depending on how the token was minted.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case nil:
        return "anon"
    case string:
        if v != "" {
            return v
        }
        return "anon"
    case float64:
        return fmt.Sprintf("%.0f", v)
    default:
        return fmt.Sprint(v)
    }
}
