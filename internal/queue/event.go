// Package queue defines message payloads exchanged over the message broker
// and the publisher and consumer that move them.
package queue

// SightingReportedQueue is the durable queue sighting events are routed to.
const SightingReportedQueue = "sighting.reported"

// SightingReportedEvent is published when a sighting is recorded.  It
// carries enough for downstream consumers to log or notify without
// querying the primary database.
type SightingReportedEvent struct {
	SightingID    int64   `json:"sighting_id"`
	SuperheroID   int64   `json:"superhero_id"`
	SuperheroName string  `json:"superhero_name"`
	LocationID    int64   `json:"location_id"`
	LocationName  string  `json:"location_name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	SightedAt     string  `json:"sighted_at"`  // RFC 3339, UTC
	ReportedAt    string  `json:"reported_at"` // RFC 3339, UTC
}
