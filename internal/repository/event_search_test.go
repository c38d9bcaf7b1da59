package repository

import (
    "strings"
    "testing"
    "time"

    "github.com/iliyamo/event-directory/internal/model"
)

func baseFilter() SearchFilter {
    return SearchFilter{
        Requester: 7,
        From:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
        To:        time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
        Offset:    0,
        Count:     20,
    }
}

func TestCompileBaseline(t *testing.T) {
    f := baseFilter()
    join, cond, args := f.compile()

    if !strings.HasPrefix(join, "LEFT JOIN") {
        t.Fatalf("expected LEFT JOIN without joinedByMe, got %q", join)
    }
    if !strings.Contains(join, "eu.user_id = ?") {
        t.Fatalf("join must bind the requester: %q", join)
    }
    want := "e.time >= ? AND e.time <= ? AND e.status = ?"
    if cond != want {
        t.Fatalf("cond = %q, want %q", cond, want)
    }
    // requester, from, to, status — in binding order
    if len(args) != 4 {
        t.Fatalf("got %d args, want 4: %v", len(args), args)
    }
    if args[0] != uint64(7) {
        t.Errorf("args[0] = %v, want requester 7", args[0])
    }
    if args[3] != model.EventStatusCreated {
        t.Errorf("args[3] = %v, want status %q", args[3], model.EventStatusCreated)
    }
}

func TestCompileJoinedByMe(t *testing.T) {
    f := baseFilter()
    f.JoinedByMe = true
    join, _, args := f.compile()

    if !strings.HasPrefix(join, "INNER JOIN") {
        t.Fatalf("joinedByMe must switch to INNER JOIN, got %q", join)
    }
    if args[0] != uint64(7) {
        t.Errorf("join argument must be the requester, got %v", args[0])
    }
}

func TestCompileCreatedByMe(t *testing.T) {
    f := baseFilter()
    f.CreatedByMe = true
    _, cond, args := f.compile()

    if !strings.Contains(cond, "e.creator = ?") {
        t.Fatalf("createdByMe must add creator term: %q", cond)
    }
    if len(args) != 5 || args[4] != uint64(7) {
        t.Fatalf("creator arg must bind the requester, got %v", args)
    }
}

func TestCompileAllCriteria(t *testing.T) {
    f := baseFilter()
    f.CreatedByMe = true
    f.Category = "music"
    f.Query = "jazz"
    f.PlaceID = "p-42"
    _, cond, args := f.compile()

    for _, term := range []string{
        "e.creator = ?", "e.category = ?", "e.title LIKE ?", "e.place_id = ?",
    } {
        if !strings.Contains(cond, term) {
            t.Errorf("cond missing %q: %q", term, cond)
        }
    }
    // requester, from, to, status, creator, category, query, placeID
    if len(args) != 8 {
        t.Fatalf("got %d args, want 8: %v", len(args), args)
    }
    if args[5] != "music" || args[7] != "p-42" {
        t.Errorf("criteria args out of order: %v", args)
    }
}

// The LIKE wildcards belong in the bound value, never in the query text.
func TestCompileQueryWildcardsBound(t *testing.T) {
    f := baseFilter()
    f.Query = "half"
    _, cond, args := f.compile()

    if strings.Contains(cond, "%") {
        t.Fatalf("wildcard leaked into query text: %q", cond)
    }
    if args[len(args)-1] != "%half%" {
        t.Fatalf("query arg = %v, want %%half%%", args[len(args)-1])
    }
}

func TestCompileEmptyCriteriaSkipped(t *testing.T) {
    f := baseFilter()
    _, cond, _ := f.compile()
    for _, term := range []string{"category", "LIKE", "place_id", "creator"} {
        if strings.Contains(cond, term) {
            t.Errorf("empty criterion produced term %q in %q", term, cond)
        }
    }
}
