package repository

import (
    "database/sql"
    "errors"
    "testing"
)

func TestHasErrorCode(t *testing.T) {
    dup := errors.New("Error 1062 (23000): Duplicate entry '3-7' for key 'event_users.PRIMARY'")
    if !hasErrorCode(dup, mysqlErrDuplicateKey) {
        t.Error("duplicate key error not detected")
    }
    if hasErrorCode(dup, mysqlErrForeignKey) {
        t.Error("wrong code matched")
    }
    if hasErrorCode(nil, mysqlErrDuplicateKey) {
        t.Error("nil error must never match")
    }
}

func TestTranslateEventWriteErr(t *testing.T) {
    cases := []struct {
        name string
        in   error
        want error
    }{
        {"nil", nil, nil},
        {"invalid datetime", errors.New("Error 1292 (22007): Incorrect datetime value: '0000' for column 'time'"), ErrInvalidTime},
        {"check violation", errors.New("Error 3819 (HY000): Check constraint 'events_chk_1' is violated"), ErrInvalidCreator},
        {"foreign key", errors.New("Error 1452 (23000): Cannot add or update a child row: a foreign key constraint fails"), ErrInvalidCreator},
        {"passthrough", errors.New("Error 2013 (HY000): Lost connection to MySQL server"), nil},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got := translateEventWriteErr(tc.in)
            if tc.want != nil {
                if got != tc.want {
                    t.Fatalf("got %v, want %v", got, tc.want)
                }
                return
            }
            if got != tc.in {
                t.Fatalf("unclassified error must pass through, got %v", got)
            }
        })
    }
}

func TestNullableAndOptional(t *testing.T) {
    if nullable(nil) != nil {
        t.Error("nil pointer must store NULL")
    }
    empty := ""
    if nullable(&empty) != nil {
        t.Error("empty string must store NULL")
    }
    v := "x"
    if nullable(&v) != "x" {
        t.Error("non-empty value must pass through")
    }

    if optional(sql.NullString{}) != nil {
        t.Error("invalid column must scan to nil")
    }
    if optional(sql.NullString{Valid: true, String: ""}) != nil {
        t.Error("empty column must scan to nil")
    }
    if got := optional(sql.NullString{Valid: true, String: "y"}); got == nil || *got != "y" {
        t.Errorf("got %v, want y", got)
    }
}
