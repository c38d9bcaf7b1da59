package model

import "time"

// Event status values. An event is created in the `created` state and can
// only move to `deleted` (soft delete). Deleted events must be treated as
// nonexistent by every read path.
const (
    EventStatusCreated = "created"
    EventStatusDeleted = "deleted"
)

// Event represents a published event record as stored in the `events`
// table. The creator owns the event for mutation purposes. Image, Link,
// PlaceID and Location are nullable columns; a nil pointer means the column
// is NULL. Link is private: handlers decide per viewer whether it may be
// exposed, the repository always loads it.
//
// Fields:
//  ID          – primary key identifier, assigned by the database.
//  Creator     – user ID of the event creator.
//  Time        – when the event starts.
//  TimeEnd     – when the event ends (expected after Time, not enforced).
//  Category    – free-form category label.
//  Title       – event title, target of the search `q` filter.
//  Description – long description.
//  Image       – optional image reference.
//  Link        – optional private link, visible to creator and members only.
//  PlaceID     – optional external place identifier.
//  Location    – optional human-readable location.
//  Status      – `created` or `deleted`.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Event struct {
    ID          uint64    // events.id
    Creator     uint64    // events.creator
    Time        time.Time // events.time
    TimeEnd     time.Time // events.time_end
    Category    string    // events.category
    Title       string    // events.title
    Description string    // events.description
    Image       *string   // events.image (nullable)
    Link        *string   // events.link (nullable, private)
    PlaceID     *string   // events.place_id (nullable)
    Location    *string   // events.location (nullable)
    Status      string    // events.status
    CreatedAt   time.Time // events.created_at
    UpdatedAt   time.Time // events.updated_at
}
