package repository

import "testing"

func mrow(eventID, userID uint64, name string) memberRow {
    return memberRow{EventID: eventID, User: JoinedUser{ID: userID, FullName: name}}
}

func TestGroupJoinedUsersTruncates(t *testing.T) {
    batch := []memberRow{
        mrow(1, 10, "a"), mrow(1, 11, "b"), mrow(1, 12, "c"),
        mrow(2, 20, "d"),
    }
    grouped := groupJoinedUsers(batch, 2)

    if len(grouped[1]) != 2 {
        t.Fatalf("event 1: got %d users, want 2", len(grouped[1]))
    }
    if len(grouped[2]) != 1 {
        t.Fatalf("event 2: got %d users, want 1", len(grouped[2]))
    }
}

func TestGroupJoinedUsersPreservesOrder(t *testing.T) {
    batch := []memberRow{mrow(5, 1, "first"), mrow(5, 2, "second"), mrow(5, 3, "third")}
    grouped := groupJoinedUsers(batch, 3)

    got := grouped[5]
    if got[0].FullName != "first" || got[1].FullName != "second" || got[2].FullName != "third" {
        t.Fatalf("batch order not preserved: %+v", got)
    }
}

func TestGroupJoinedUsersMissingEvent(t *testing.T) {
    grouped := groupJoinedUsers([]memberRow{mrow(1, 10, "a")}, 5)
    if users, ok := grouped[99]; ok {
        t.Fatalf("event without members must be absent from the map, got %v", users)
    }
}

func TestGroupJoinedUsersEmptyBatch(t *testing.T) {
    grouped := groupJoinedUsers(nil, 3)
    if len(grouped) != 0 {
        t.Fatalf("empty batch must group to empty map, got %v", grouped)
    }
}
