package handler // handler defines http handlers

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/repository"
)

// Capabilities checked by the event endpoints. They are granted at token
// issue time through the JWT perms claim: publishing requires EVENT, and
// DELEVENT lets its holder delete any event regardless of ownership.
const (
    PermEvent       = "EVENT"
    PermDeleteEvent = "DELEVENT"
)

// EventHandler bundles the repositories behind the event and membership
// endpoints.
type EventHandler struct {
    Events  *repository.EventRepo
    Members *repository.MembershipRepo
}

// NewEventHandler constructs an EventHandler and panics if a dependency is nil.
func NewEventHandler(events *repository.EventRepo, members *repository.MembershipRepo) *EventHandler {
    if events == nil || members == nil {
        panic("nil repository passed to NewEventHandler")
    }
    return &EventHandler{Events: events, Members: members}
}

// getUserID extracts the authenticated user id from echo.Context. The JWT
// middleware stores the raw claim value, which decodes as float64 for
// number claims and string for string claims.
func getUserID(c echo.Context) (uint64, error) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// hasPermission reports whether the authenticated caller's perms claim
// contains the given capability. The claim arrives as []interface{} when
// decoded from a token and as []string when set directly (tests).
func hasPermission(c echo.Context, perm string) bool {
    switch v := c.Get("perms").(type) {
    case []string:
        for _, p := range v {
            if p == perm {
                return true
            }
        }
    case []interface{}:
        for _, p := range v {
            if s, ok := p.(string); ok && s == perm {
                return true
            }
        }
    }
    return false
}

// eventIDParam parses the :id path parameter.
func eventIDParam(c echo.Context) (uint64, error) {
    return strconv.ParseUint(c.Param("id"), 10, 64)
}

// fmtTime renders a stored timestamp for responses.
func fmtTime(t time.Time) string {
    return t.UTC().Format(time.RFC3339)
}
