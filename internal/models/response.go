package models

import "time"

// Response represents a public offer against a Request. QuantityAvailable is
// immutable once created; only the accepted flag toggles, via the
// reconciliation engine.
type Response struct {
	ID                int64     `db:"id" json:"id"`
	RequestID         int64     `db:"request_id" json:"request_id"`
	ResponderName     *string   `db:"responder_name" json:"responder_name,omitempty"`
	ResponderContact  *string   `db:"responder_contact" json:"responder_contact,omitempty"`
	QuantityAvailable int       `db:"quantity_available" json:"quantity_available"`
	Location          string    `db:"location" json:"location"`
	Notes             *string   `db:"notes" json:"notes,omitempty"`
	Accepted          bool      `db:"accepted" json:"accepted"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// CreateResponseInput represents input for submitting a response.
type CreateResponseInput struct {
	ResponderName     *string `json:"responder_name"`
	ResponderContact  *string `json:"responder_contact"`
	QuantityAvailable *int    `json:"quantity_available"`
	Location          string  `json:"location"`
	Notes             *string `json:"notes"`
}

// ReconcileRow is the locked view the reconciliation engine works on: a
// response joined with its parent request's current quantity_needed.
type ReconcileRow struct {
	ResponseID        int64 `db:"id"`
	RequestID         int64 `db:"request_id"`
	QuantityAvailable int   `db:"quantity_available"`
	Accepted          bool  `db:"accepted"`
	QuantityNeeded    int   `db:"quantity_needed"`
}
