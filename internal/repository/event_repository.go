package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/event-directory/internal/model"
)

// EventRepo provides persistence for events. Events are soft deleted:
// delete flips the status column and every read filters on
// status = 'created', so a deleted event is indistinguishable from a
// missing one. Ownership, existence and soft-delete status are enforced
// inside single conditional statements rather than with separate reads, so
// no check-then-act window exists between authorization and write.
type EventRepo struct {
    db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// EventDetail couples an event with its creator's public summary. It is
// produced by GetByID for the single-event read path.
type EventDetail struct {
    Event        model.Event
    CreatorName  string
    CreatorImage *string
}

// Create inserts a new event in the `created` state and populates the
// generated ID on the provided record. Store-level rejections of the time
// or creator values are translated to ErrInvalidTime / ErrInvalidCreator;
// anything else is returned as-is for the handler to treat as internal.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
    const q = `INSERT INTO events
               (creator, time, time_end, category, title, description, image, link, place_id, location, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q,
        ev.Creator, ev.Time, ev.TimeEnd, ev.Category, ev.Title, ev.Description,
        nullable(ev.Image), nullable(ev.Link), nullable(ev.PlaceID), nullable(ev.Location),
        model.EventStatusCreated)
    if err != nil {
        return translateEventWriteErr(err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    ev.ID = uint64(id)
    ev.Status = model.EventStatusCreated
    return nil
}

// GetByID returns a live event together with its creator summary. Soft
// deleted and missing events both yield ErrNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*EventDetail, error) {
    const q = `SELECT e.id, e.creator, e.time, e.time_end, e.category, e.title, e.description,
                      e.image, e.link, e.place_id, e.location,
                      cu.full_name, cu.image_path
               FROM events e
               INNER JOIN users cu ON cu.id = e.creator
               WHERE e.id = ? AND e.status = ?`
    var det EventDetail
    var image, link, placeID, location, creatorImage sql.NullString
    err := r.db.QueryRowContext(ctx, q, id, model.EventStatusCreated).Scan(
        &det.Event.ID, &det.Event.Creator, &det.Event.Time, &det.Event.TimeEnd,
        &det.Event.Category, &det.Event.Title, &det.Event.Description,
        &image, &link, &placeID, &location,
        &det.CreatorName, &creatorImage,
    )
    if err == sql.ErrNoRows {
        return nil, ErrNotFound
    }
    if err != nil {
        return nil, err
    }
    det.Event.Status = model.EventStatusCreated
    det.Event.Image = optional(image)
    det.Event.Link = optional(link)
    det.Event.PlaceID = optional(placeID)
    det.Event.Location = optional(location)
    det.CreatorImage = optional(creatorImage)
    return &det, nil
}

// Update replaces all mutable fields of an event in one conditional
// statement whose predicate combines id, ownership and live status. Zero
// affected rows is reported uniformly as ErrNotFound regardless of which
// predicate failed.
func (r *EventRepo) Update(ctx context.Context, ev *model.Event, requester uint64) error {
    const q = `UPDATE events
               SET title = ?, description = ?, image = ?, link = ?, time = ?, time_end = ?,
                   category = ?, place_id = ?, location = ?
               WHERE id = ? AND creator = ? AND status = ?`
    res, err := r.db.ExecContext(ctx, q,
        ev.Title, ev.Description, nullable(ev.Image), nullable(ev.Link), ev.Time, ev.TimeEnd,
        ev.Category, nullable(ev.PlaceID), nullable(ev.Location),
        ev.ID, requester, model.EventStatusCreated)
    if err != nil {
        return translateEventWriteErr(err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// SoftDelete marks an event deleted with a single conditional update. When
// override is false the ownership predicate is part of the statement, so
// authorization and the status transition happen atomically; with override
// (elevated delete permission) the ownership predicate is dropped. The
// returned bool reports whether a row transitioned.
func (r *EventRepo) SoftDelete(ctx context.Context, id, requester uint64, override bool) (bool, error) {
    q := `UPDATE events SET status = ? WHERE id = ? AND status = ?`
    args := []any{model.EventStatusDeleted, id, model.EventStatusCreated}
    if !override {
        q += ` AND creator = ?`
        args = append(args, requester)
    }
    res, err := r.db.ExecContext(ctx, q, args...)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n > 0, nil
}

// translateEventWriteErr maps MySQL constraint signals on event writes onto
// the sentinel taxonomy. Unrecognized errors pass through unchanged.
func translateEventWriteErr(err error) error {
    switch {
    case err == nil:
        return nil
    case hasErrorCode(err, mysqlErrInvalidDate):
        return ErrInvalidTime
    case hasErrorCode(err, mysqlErrCheckViolation), hasErrorCode(err, mysqlErrForeignKey):
        return ErrInvalidCreator
    default:
        return err
    }
}

// nullable converts an optional field into a driver value, mapping both nil
// and empty string to NULL so that absent and blank inputs store the same.
func nullable(s *string) any {
    if s == nil || *s == "" {
        return nil
    }
    return *s
}

// optional converts a scanned nullable column into an optional field,
// treating empty strings as absent to match the serialization rule that
// only non-empty values are ever emitted.
func optional(s sql.NullString) *string {
    if !s.Valid || s.String == "" {
        return nil
    }
    v := s.String
    return &v
}
