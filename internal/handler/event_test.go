package handler

import (
    "encoding/json"
    "testing"
    "time"

    "github.com/iliyamo/event-directory/internal/model"
    "github.com/iliyamo/event-directory/internal/repository"
)

func strptr(s string) *string { return &s }

func sampleDetail() *repository.EventDetail {
    return &repository.EventDetail{
        Event: model.Event{
            ID:          3,
            Creator:     7,
            Time:        time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC),
            TimeEnd:     time.Date(2025, 6, 1, 21, 0, 0, 0, time.UTC),
            Category:    "music",
            Title:       "Jazz night",
            Description: "desc",
            Image:       strptr("/img/3.png"),
            Link:        strptr("https://example.com/secret"),
            Status:      model.EventStatusCreated,
        },
        CreatorName: "Ada",
    }
}

func TestLinkVisible(t *testing.T) {
    cases := []struct {
        name    string
        creator uint64
        viewer  uint64
        member  bool
        want    bool
    }{
        {"creator", 7, 7, false, true},
        {"member", 7, 9, true, true},
        {"creator and member", 7, 7, true, true},
        {"stranger", 7, 9, false, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := linkVisible(tc.creator, tc.viewer, tc.member); got != tc.want {
                t.Fatalf("linkVisible(%d, %d, %v) = %v, want %v", tc.creator, tc.viewer, tc.member, got, tc.want)
            }
        })
    }
}

// Hidden and absent optional fields must disappear from the JSON entirely,
// not serialize as null.
func TestBuildEventViewLinkOmittedFromJSON(t *testing.T) {
    det := sampleDetail()
    view := buildEventView(det, 9, false) // stranger

    raw, err := json.Marshal(view)
    if err != nil {
        t.Fatal(err)
    }
    var m map[string]any
    if err := json.Unmarshal(raw, &m); err != nil {
        t.Fatal(err)
    }
    if _, ok := m["link"]; ok {
        t.Error("link key must be absent for a non-member viewer")
    }
    if m["image"] != "/img/3.png" {
        t.Errorf("image = %v, want /img/3.png", m["image"])
    }
    if m["time"] != "2025-06-01T18:00:00Z" {
        t.Errorf("time = %v, want RFC3339 UTC", m["time"])
    }
}

func TestBuildEventViewLinkForMember(t *testing.T) {
    det := sampleDetail()
    view := buildEventView(det, 9, true)
    if view.Link == nil || *view.Link != "https://example.com/secret" {
        t.Fatalf("member must see the link, got %v", view.Link)
    }
}

func TestBuildEventViewAbsentImageOmitted(t *testing.T) {
    det := sampleDetail()
    det.Event.Image = nil
    raw, err := json.Marshal(buildEventView(det, 7, false))
    if err != nil {
        t.Fatal(err)
    }
    var m map[string]any
    if err := json.Unmarshal(raw, &m); err != nil {
        t.Fatal(err)
    }
    if _, ok := m["image"]; ok {
        t.Error("absent image must not appear in JSON")
    }
}

func TestAssembleSearchDataVisibilityAndJoined(t *testing.T) {
    rows := []repository.EventRow{
        {Event: sampleDetail().Event, CreatorName: "Ada", IsJoined: false}, // viewer 9, stranger
        {Event: func() model.Event {
            e := sampleDetail().Event
            e.ID = 4
            return e
        }(), CreatorName: "Ada", IsJoined: true},
    }
    joined := map[uint64][]repository.JoinedUser{
        4: {{ID: 9, FullName: "Bob"}},
    }
    data := assembleSearchData(rows, joined, 9)
    if len(data) != 2 {
        t.Fatalf("got %d rows, want 2", len(data))
    }

    if data[0].Link != nil {
        t.Error("row 0: stranger must not see the link")
    }
    if data[1].Link == nil {
        t.Error("row 1: joined viewer must see the link")
    }
    if data[0].Joined == nil || len(data[0].Joined) != 0 {
        t.Errorf("row 0: joined must be an empty slice, got %v", data[0].Joined)
    }
    if len(data[1].Joined) != 1 || data[1].Joined[0].FullName != "Bob" {
        t.Errorf("row 1: joined = %v", data[1].Joined)
    }
    if !data[1].IsJoined || data[0].IsJoined {
        t.Error("isJoined flags must mirror the rows")
    }
}

// The search response serializes joined as [] rather than null for rows
// without members.
func TestSearchViewJoinedNeverNull(t *testing.T) {
    data := assembleSearchData([]repository.EventRow{{Event: sampleDetail().Event}}, nil, 7)
    raw, err := json.Marshal(data[0])
    if err != nil {
        t.Fatal(err)
    }
    var m map[string]any
    if err := json.Unmarshal(raw, &m); err != nil {
        t.Fatal(err)
    }
    if _, ok := m["joined"].([]any); !ok {
        t.Fatalf("joined = %v, want JSON array", m["joined"])
    }
    if _, ok := m["isJoined"]; !ok {
        t.Error("isJoined must always be present on search rows")
    }
}
