package handler

import (
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/event-directory/internal/repository"
)

// searchRequest mirrors the POST /v1/events/search payload. From and To
// are required RFC3339 timestamps; the rest are optional criteria. Offset
// and Count paginate, CountJoined caps the joined-user summaries attached
// to each row (0 skips the aggregation entirely).
type searchRequest struct {
    CreatedByMe bool   `json:"createdByMe"`
    JoinedByMe  bool   `json:"joinedByMe"`
    From        string `json:"from"`
    To          string `json:"to"`
    Offset      int    `json:"offset"`
    Count       int    `json:"count"`
    Category    string `json:"category"`
    CountJoined int    `json:"countJoined"`
    Q           string `json:"q"`
    PlaceID     string `json:"placeId"`
}

// searchEventView is one row of the search response. Unlike the single-get
// view it always carries the isJoined flag and a joined array (empty, not
// null, when no members are attached).
type searchEventView struct {
    ID           uint64                  `json:"id"`
    Creator      uint64                  `json:"creator"`
    Time         string                  `json:"time"`
    TimeEnd      string                  `json:"timeEnd"`
    Category     string                  `json:"category"`
    Title        string                  `json:"title"`
    Description  string                  `json:"description"`
    PlaceID      *string                 `json:"placeId"`
    Location     *string                 `json:"location"`
    CreatorName  string                  `json:"creatorName"`
    CreatorImage *string                 `json:"creatorImage"`
    IsJoined     bool                    `json:"isJoined"`
    Image        *string                 `json:"image,omitempty"`
    Link         *string                 `json:"link,omitempty"`
    Joined       []repository.JoinedUser `json:"joined"`
}

// assembleSearchData turns repository rows into response views, applying
// the same visibility rule as the single-get path: on this path the
// membership evidence is the outer-join flag carried on each row. The
// joined map comes from the batch aggregator and is already truncated.
func assembleSearchData(rows []repository.EventRow, joined map[uint64][]repository.JoinedUser, viewer uint64) []searchEventView {
    data := make([]searchEventView, 0, len(rows))
    for _, row := range rows {
        v := searchEventView{
            ID:           row.Event.ID,
            Creator:      row.Event.Creator,
            Time:         fmtTime(row.Event.Time),
            TimeEnd:      fmtTime(row.Event.TimeEnd),
            Category:     row.Event.Category,
            Title:        row.Event.Title,
            Description:  row.Event.Description,
            PlaceID:      row.Event.PlaceID,
            Location:     row.Event.Location,
            CreatorName:  row.CreatorName,
            CreatorImage: row.CreatorImage,
            IsJoined:     row.IsJoined,
            Image:        row.Event.Image,
            Joined:       []repository.JoinedUser{},
        }
        if linkVisible(row.Event.Creator, viewer, row.IsJoined) {
            v.Link = row.Event.Link
        }
        if members, ok := joined[row.Event.ID]; ok {
            v.Joined = members
        }
        data = append(data, v)
    }
    return data
}

// SearchEvents handles POST /v1/events/search. The request flows through
// the filter compiler, one paginated query pass that also yields the
// pre-pagination total, per-row visibility, and (when requested) the
// joined-users batch aggregation as a second read-only round trip.
func (h *EventHandler) SearchEvents(c echo.Context) error {
    viewer, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{})
    }
    var req searchRequest
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
    }
    from, err := time.Parse(time.RFC3339, req.From)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid time format"})
    }
    to, err := time.Parse(time.RFC3339, req.To)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid time format"})
    }

    filter := repository.SearchFilter{
        Requester:   viewer,
        From:        from.UTC(),
        To:          to.UTC(),
        CreatedByMe: req.CreatedByMe,
        JoinedByMe:  req.JoinedByMe,
        Category:    req.Category,
        Query:       req.Q,
        PlaceID:     req.PlaceID,
        Offset:      req.Offset,
        Count:       req.Count,
    }
    ctx := c.Request().Context()
    rows, total, err := h.Events.Search(ctx, filter)
    if err != nil {
        log.Printf("event/search: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{})
    }

    joined := map[uint64][]repository.JoinedUser{}
    if req.CountJoined > 0 && len(rows) > 0 {
        ids := make([]uint64, 0, len(rows))
        for _, row := range rows {
            ids = append(ids, row.Event.ID)
        }
        joined, err = h.Members.JoinedUsersForEvents(ctx, ids, req.CountJoined)
        if err != nil {
            log.Printf("event/search: joined batch failed: %v", err)
            return c.JSON(http.StatusInternalServerError, echo.Map{})
        }
    }

    return c.JSON(http.StatusOK, echo.Map{
        "data":  assembleSearchData(rows, joined, viewer),
        "total": total,
    })
}
