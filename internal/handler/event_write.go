package handler

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/model"
    "github.com/iliyamo/event-directory/internal/queue"
    "github.com/iliyamo/event-directory/internal/repository"
    queue_publisher "github.com/iliyamo/event-directory/internal/service"
)

// eventBody is the write payload shared by create and edit. Times are
// RFC3339 strings; optional fields stay nil when absent and blank strings
// are treated the same as absent by the repository.
type eventBody struct {
    Time        string  `json:"time"`
    TimeEnd     string  `json:"timeEnd"`
    Category    string  `json:"category"`
    Title       string  `json:"title"`
    Description string  `json:"description"`
    Image       *string `json:"image"`
    Link        *string `json:"link"`
    PlaceID     *string `json:"placeId"`
    Location    *string `json:"location"`
}

// parseEventBody binds and validates the shared payload into a model
// event. The zero uint64 fields (ID, Creator) are filled by the caller.
func parseEventBody(c echo.Context) (*model.Event, error) {
    var body eventBody
    if err := c.Bind(&body); err != nil {
        return nil, err
    }
    start, err := time.Parse(time.RFC3339, body.Time)
    if err != nil {
        return nil, repository.ErrInvalidTime
    }
    end, err := time.Parse(time.RFC3339, body.TimeEnd)
    if err != nil {
        return nil, repository.ErrInvalidTime
    }
    return &model.Event{
        Time:        start.UTC(),
        TimeEnd:     end.UTC(),
        Category:    body.Category,
        Title:       body.Title,
        Description: body.Description,
        Image:       body.Image,
        Link:        body.Link,
        PlaceID:     body.PlaceID,
        Location:    body.Location,
    }, nil
}

// writeErrorResponse maps repository sentinels from event writes onto the
// HTTP taxonomy; anything unclassified is logged and reported as 500 with
// an empty body.
func writeErrorResponse(c echo.Context, op string, err error) error {
    switch err {
    case repository.ErrInvalidTime:
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid time format"})
    case repository.ErrInvalidCreator:
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid creator"})
    case repository.ErrNotFound:
        return c.JSON(http.StatusNotFound, echo.Map{})
    default:
        log.Printf("event/%s: %v", op, err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
}

// CreateEvent handles POST /v1/events. Publishing requires the EVENT
// capability. On success the new id is returned and an activity message is
// published in the background; broker failures never fail the request.
func (h *EventHandler) CreateEvent(c echo.Context) error {
    creator, err := getUserID(c)
    if err != nil || !hasPermission(c, PermEvent) {
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    ev, err := parseEventBody(c)
    if err != nil {
        if err == repository.ErrInvalidTime {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid time format"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    ev.Creator = creator

    if err := h.Events.Create(c.Request().Context(), ev); err != nil {
        return writeErrorResponse(c, "add", err)
    }

    // Detached from the request context: the response does not wait on the broker.
    go func(msg queue.EventCreatedMessage) {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        _ = queue_publisher.PublishEventCreated(ctx, msg)
    }(queue.EventCreatedMessage{
        EventID:   ev.ID,
        Creator:   ev.Creator,
        Title:     ev.Title,
        Category:  ev.Category,
        Time:      fmtTime(ev.Time),
        TimeEnd:   fmtTime(ev.TimeEnd),
        CreatedAt: time.Now().UTC().Format(time.RFC3339),
    })

    return c.JSON(http.StatusOK, echo.Map{"id": ev.ID})
}

// EditEvent handles POST /v1/events/:id. It replaces all mutable fields
// through one conditional update that checks id, ownership and live status
// in the same statement; a zero-row update is a uniform 404 that does not
// reveal whether the event exists, was deleted, or belongs to someone else.
func (h *EventHandler) EditEvent(c echo.Context) error {
    requester, err := getUserID(c)
    if err != nil || !hasPermission(c, PermEvent) {
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    id, err := eventIDParam(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    ev, err := parseEventBody(c)
    if err != nil {
        if err == repository.ErrInvalidTime {
            return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid time format"})
        }
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    ev.ID = id

    if err := h.Events.Update(c.Request().Context(), ev, requester); err != nil {
        return writeErrorResponse(c, "edit", err)
    }
    return c.JSON(http.StatusOK, echo.Map{})
}

// DeleteEvent handles POST /v1/events/:id/delete (soft delete). Holders of
// the DELEVENT capability may delete any event; everyone else deletes only
// their own, enforced inside the single conditional update rather than by
// a separate ownership read.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
    requester, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    id, err := eventIDParam(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    override := hasPermission(c, PermDeleteEvent)

    deleted, err := h.Events.SoftDelete(c.Request().Context(), id, requester, override)
    if err != nil {
        log.Printf("event/del: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
    if !deleted && !override {
        // Without the elevated capability a no-op means the caller does
        // not own a live event with this id.
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    return c.JSON(http.StatusOK, echo.Map{})
}
