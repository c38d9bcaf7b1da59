package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"

    "github.com/iliyamo/event-directory/internal/model"
)

// SearchFilter defines the criteria and pagination for searching events.
// Requester scopes the membership join and the createdByMe term; From/To
// bound the mandatory time window. Category, Query and PlaceID are applied
// only when non-empty. Query is matched against the title with LIKE under
// the store's default collation (utf8mb4, case-insensitive).
type SearchFilter struct {
    Requester   uint64
    From        time.Time
    To          time.Time
    CreatedByMe bool
    JoinedByMe  bool
    Category    string
    Query       string
    PlaceID     string
    Offset      int
    Count       int
}

// compile turns the filter into a membership join clause, a conjunctive
// WHERE condition and the bound arguments, in binding order. Every
// criterion value travels as a bound parameter; nothing is spliced into
// the query text, including the LIKE wildcards, which are added to the
// argument value. The membership relation is a join, not a filter: INNER
// when restricting to joined events, LEFT otherwise so the is_joined flag
// can be read without narrowing the result set. Both variants bind the
// requester id, so the join can never expose another user's memberships.
func (f SearchFilter) compile() (joinClause, cond string, args []any) {
    if f.JoinedByMe {
        joinClause = `INNER JOIN event_users eu ON eu.user_id = ? AND eu.event_id = e.id`
    } else {
        joinClause = `LEFT JOIN event_users eu ON eu.user_id = ? AND eu.event_id = e.id`
    }
    args = append(args, f.Requester)

    where := []string{"e.time >= ?", "e.time <= ?", "e.status = ?"}
    args = append(args, f.From, f.To, model.EventStatusCreated)

    if f.CreatedByMe {
        where = append(where, "e.creator = ?")
        args = append(args, f.Requester)
    }
    if f.Category != "" {
        where = append(where, "e.category = ?")
        args = append(args, f.Category)
    }
    if f.Query != "" {
        where = append(where, "e.title LIKE ?")
        args = append(args, "%"+f.Query+"%")
    }
    if f.PlaceID != "" {
        where = append(where, "e.place_id = ?")
        args = append(args, f.PlaceID)
    }
    return joinClause, strings.Join(where, " AND "), args
}

// EventRow is one search result: the event, the creator summary, whether
// the requester joined it, and the window total shared by every row of the
// same execution.
type EventRow struct {
    Event        model.Event
    CreatorName  string
    CreatorImage *string
    IsJoined     bool
    Total        int
}

// Search executes the compiled filter in a single pass. Results are
// ordered by time ascending (no tie-break among equal timestamps) and
// paginated with LIMIT/OFFSET, while COUNT(*) OVER() carries the
// pre-pagination match count on every returned row. The second return
// value is that total, taken from the first row; an empty page therefore
// reports 0 even when rows exist outside the page.
func (r *EventRepo) Search(ctx context.Context, f SearchFilter) ([]EventRow, int, error) {
    joinClause, cond, args := f.compile()

    q := `SELECT e.id, e.creator, e.time, e.time_end, e.category, e.title, e.description,
                 e.image, e.link, e.place_id, e.location,
                 eu.user_id IS NOT NULL AS is_joined,
                 cu.full_name, cu.image_path,
                 COUNT(*) OVER() AS total
          FROM events e
          ` + joinClause + `
          INNER JOIN users cu ON cu.id = e.creator
          WHERE ` + cond + `
          ORDER BY e.time ASC
          LIMIT ? OFFSET ?`
    args = append(args, f.Count, f.Offset)

    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, 0, err
    }
    defer rows.Close()

    out := make([]EventRow, 0, f.Count)
    for rows.Next() {
        var er EventRow
        var image, link, placeID, location, creatorImage sql.NullString
        if err := rows.Scan(
            &er.Event.ID, &er.Event.Creator, &er.Event.Time, &er.Event.TimeEnd,
            &er.Event.Category, &er.Event.Title, &er.Event.Description,
            &image, &link, &placeID, &location,
            &er.IsJoined,
            &er.CreatorName, &creatorImage,
            &er.Total,
        ); err != nil {
            return nil, 0, err
        }
        er.Event.Status = model.EventStatusCreated
        er.Event.Image = optional(image)
        er.Event.Link = optional(link)
        er.Event.PlaceID = optional(placeID)
        er.Event.Location = optional(location)
        er.CreatorImage = optional(creatorImage)
        out = append(out, er)
    }
    if err := rows.Err(); err != nil {
        return nil, 0, err
    }
    total := 0
    if len(out) > 0 {
        total = out[0].Total
    }
    return out, total, nil
}
