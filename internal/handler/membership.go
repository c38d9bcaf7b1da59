package handler

import (
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/repository"
)

// JoinEvent handles POST /v1/events/:id/join. The uniqueness constraint on
// the membership pair arbitrates concurrent joins; a duplicate maps to 409
// and a missing event or user to 404.
func (h *EventHandler) JoinEvent(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    id, err := eventIDParam(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    switch err := h.Members.Join(c.Request().Context(), id, userID); err {
    case nil:
        return c.JSON(http.StatusOK, echo.Map{})
    case repository.ErrAlreadyJoined:
        return c.JSON(http.StatusConflict, echo.Map{"message": "The user is already registered for the event"})
    case repository.ErrMissingReference:
        return c.JSON(http.StatusNotFound, echo.Map{"message": "User or event was not found"})
    default:
        log.Printf("event/join: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
}

// UnjoinEvent handles POST /v1/events/:id/unjoin. Removing a membership
// that does not exist is not an error; the endpoint answers 200 either way.
func (h *EventHandler) UnjoinEvent(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    id, err := eventIDParam(c)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
    }
    if err := h.Members.Unjoin(c.Request().Context(), id, userID); err != nil {
        log.Printf("event/unjoin: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }
    return c.JSON(http.StatusOK, echo.Map{})
}
