// Package comment provides the comment domain model, validation, and data access.
package comment

import "time"

// Comment is a message left for Golden.
type Comment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is a candidate comment before the store assigns id and created_at.
type Input struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
