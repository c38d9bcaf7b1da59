package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
)

func testContext(t *testing.T) echo.Context {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    return e.NewContext(req, httptest.NewRecorder())
}

// JWT number claims decode as float64; the extractor must handle that and
// the direct types used by tests and middleware.
func TestGetUserID(t *testing.T) {
    cases := []struct {
        name  string
        value any
        want  uint64
        ok    bool
    }{
        {"float64 claim", float64(42), 42, true},
        {"uint64", uint64(7), 7, true},
        {"int", int(3), 3, true},
        {"numeric string", "11", 11, true},
        {"garbage string", "abc", 0, false},
        {"missing", nil, 0, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c := testContext(t)
            if tc.value != nil {
                c.Set("user_id", tc.value)
            }
            got, err := getUserID(c)
            if tc.ok && (err != nil || got != tc.want) {
                t.Fatalf("got (%d, %v), want (%d, nil)", got, err, tc.want)
            }
            if !tc.ok && err == nil {
                t.Fatalf("expected error, got %d", got)
            }
        })
    }
}

func TestHasPermission(t *testing.T) {
    c := testContext(t)
    c.Set("perms", []string{PermEvent})
    if !hasPermission(c, PermEvent) {
        t.Error("EVENT must be granted from []string")
    }
    if hasPermission(c, PermDeleteEvent) {
        t.Error("DELEVENT must not be granted")
    }

    // Decoded JWT claims arrive as []interface{}.
    c.Set("perms", []interface{}{PermEvent, PermDeleteEvent})
    if !hasPermission(c, PermDeleteEvent) {
        t.Error("DELEVENT must be granted from decoded claim")
    }

    c.Set("perms", nil)
    if hasPermission(c, PermEvent) {
        t.Error("missing claim must grant nothing")
    }
}

func TestPermsForRole(t *testing.T) {
    member := permsForRole("MEMBER")
    if len(member) != 1 || member[0] != PermEvent {
        t.Errorf("MEMBER perms = %v", member)
    }
    admin := permsForRole("ADMIN")
    if len(admin) != 2 || admin[1] != PermDeleteEvent {
        t.Errorf("ADMIN perms = %v", admin)
    }
}
