// Package handler defines the HTTP layer over the event repositories. This
// file implements the single-event read paths and the field visibility
// policy: the private link is shown only to the creator and to members,
// and optional fields are omitted from the JSON entirely rather than
// emitted as null, so clients can distinguish "absent" from "hidden".
package handler

import (
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/repository"
)

// eventView is the single-get representation of an event. Image and Link
// carry omitempty and are only populated when the visibility policy allows.
type eventView struct {
    ID           uint64  `json:"id"`
    Creator      uint64  `json:"creator"`
    Time         string  `json:"time"`
    TimeEnd      string  `json:"timeEnd"`
    Category     string  `json:"category"`
    Title        string  `json:"title"`
    Description  string  `json:"description"`
    PlaceID      *string `json:"placeId"`
    Location     *string `json:"location"`
    CreatorName  string  `json:"creatorName"`
    CreatorImage *string `json:"creatorImage"`
    Image        *string `json:"image,omitempty"`
    Link         *string `json:"link,omitempty"`
}

// linkVisible implements the link visibility rule: the creator always sees
// it, and so does anyone holding a membership for the event.
func linkVisible(creator, viewer uint64, member bool) bool {
    return member || creator == viewer
}

// buildEventView applies the visibility policy to a repository detail row.
// The repository already normalizes empty optional columns to nil, so
// assigning Image directly preserves the only-when-non-empty rule.
func buildEventView(det *repository.EventDetail, viewer uint64, member bool) eventView {
    v := eventView{
        ID:           det.Event.ID,
        Creator:      det.Event.Creator,
        Time:         fmtTime(det.Event.Time),
        TimeEnd:      fmtTime(det.Event.TimeEnd),
        Category:     det.Event.Category,
        Title:        det.Event.Title,
        Description:  det.Event.Description,
        PlaceID:      det.Event.PlaceID,
        Location:     det.Event.Location,
        CreatorName:  det.CreatorName,
        CreatorImage: det.CreatorImage,
        Image:        det.Event.Image,
    }
    if linkVisible(det.Event.Creator, viewer, member) {
        v.Link = det.Event.Link
    }
    return v
}

// GetEvent handles GET /v1/events/:id. Soft-deleted and unknown events are
// both answered with an empty 404. The membership-existence check feeds
// the same visibility rule the search path evaluates through its join flag.
func (h *EventHandler) GetEvent(c echo.Context) error {
    viewer, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    id, err := eventIDParam(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    ctx := c.Request().Context()

    member, err := h.Members.IsMember(ctx, id, viewer)
    if err != nil {
        log.Printf("event/get: membership check failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
    det, err := h.Events.GetByID(ctx, id)
    if err != nil {
        if err == repository.ErrNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{})
        }
        log.Printf("event/get: load failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
    return c.JSON(http.StatusOK, buildEventView(det, viewer, member))
}

// GetJoinedUsers handles GET /v1/events/:id/joined and returns every user
// who joined the event as {joined: [...]}. The list is deliberately
// unbounded for compatibility with existing clients; the repository method
// carries the hardening note.
func (h *EventHandler) GetJoinedUsers(c echo.Context) error {
    id, err := eventIDParam(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    users, err := h.Members.ListJoinedUsers(c.Request().Context(), id)
    if err != nil {
        log.Printf("event/joined: load failed: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
    return c.JSON(http.StatusOK, echo.Map{"joined": users})
}
