// Package queue defines message payloads exchanged over the message broker.
package queue

// EventCreatedMessage is published when a new event is successfully stored.
// It carries enough information for downstream consumers to log, notify or
// feed analytics without querying the primary database.
type EventCreatedMessage struct {
    EventID   uint64 `json:"event_id"`
    Creator   uint64 `json:"creator"`
    Title     string `json:"title"`
    Category  string `json:"category"`
    Time      string `json:"time"`
    TimeEnd   string `json:"time_end"`
    CreatedAt string `json:"created_at"`
}
