package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/config"
)

func cacheCtx(target string) echo.Context {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, target, nil)
    return e.NewContext(req, httptest.NewRecorder())
}

// Keys come from the concrete request path, so parameterized routes get one
// entry per resource instead of sharing the route pattern's entry.
func TestCacheKeyPerConcretePath(t *testing.T) {
    cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "path"}

    k1 := cacheKeyFrom(cfg, cacheCtx("/v1/events/1/joined"))
    k2 := cacheKeyFrom(cfg, cacheCtx("/v1/events/2/joined"))
    if k1 == k2 {
        t.Fatal("different resources must not share a cache key")
    }
    if k1 != cacheKeyFrom(cfg, cacheCtx("/v1/events/1/joined")) {
        t.Fatal("same path must produce a stable key")
    }
}

func TestCacheKeyStrategies(t *testing.T) {
    path := cacheKeyFrom(config.CacheConfig{Prefix: "c", KeyStrategy: "path"}, cacheCtx("/x?a=1"))
    pathQ := cacheKeyFrom(config.CacheConfig{Prefix: "c", KeyStrategy: "path_query"}, cacheCtx("/x?a=1"))
    if path == pathQ {
        t.Error("path and path_query strategies must differ when a query is present")
    }

    q1 := cacheKeyFrom(config.CacheConfig{Prefix: "c", KeyStrategy: "path_query"}, cacheCtx("/x?a=1"))
    q2 := cacheKeyFrom(config.CacheConfig{Prefix: "c", KeyStrategy: "path_query"}, cacheCtx("/x?a=2"))
    if q1 == q2 {
        t.Error("path_query must separate by query string")
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"application/json"}}
    body := []byte(`{"joined":[]}`)

    bs, err := encodePayload(http.StatusOK, hdr, body)
    if err != nil {
        t.Fatal(err)
    }
    status, gotHdr, gotBody, ok := decodePayload(bs)
    if !ok {
        t.Fatal("decode failed")
    }
    if status != http.StatusOK {
        t.Errorf("status = %d", status)
    }
    if gotHdr.Get("Content-Type") != "application/json" {
        t.Errorf("header = %v", gotHdr)
    }
    if string(gotBody) != string(body) {
        t.Errorf("body = %q", gotBody)
    }
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
    if _, _, _, ok := decodePayload([]byte{1, 2, 3}); ok {
        t.Error("short payload must not decode")
    }
}
