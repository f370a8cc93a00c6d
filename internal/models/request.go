package models

import "time"

// Request statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Request represents an admin-posted need for a quantity of an item.
// QuantityNeeded is the live remaining-unmet-need counter; it changes only
// through an admin edit or through response accept/unaccept.
type Request struct {
	ID             int64     `db:"id" json:"id"`
	ItemName       string    `db:"item_name" json:"item_name"`
	QuantityNeeded int       `db:"quantity_needed" json:"quantity_needed"`
	Unit           string    `db:"unit" json:"unit"`
	Description    string    `db:"description" json:"description"`
	Status         string    `db:"status" json:"status"` // open, closed
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// RequestWithCount is a Request plus the number of responses submitted
// against it, used by the admin list view.
type RequestWithCount struct {
	Request
	ResponseCount int `db:"response_count" json:"response_count"`
}

// RequestDetail is a Request with its responses attached.
type RequestDetail struct {
	Request
	Responses []*Response `json:"responses"`
}

// CreateRequestInput represents input for creating a request.
type CreateRequestInput struct {
	ItemName       string  `json:"item_name"`
	QuantityNeeded *int    `json:"quantity_needed"`
	Unit           string  `json:"unit"`
	Description    *string `json:"description"`
}

// UpdateRequestPatch carries the fields an admin may change. All fields are
// pointers so only the supplied fields are validated and written.
type UpdateRequestPatch struct {
	ItemName       *string `json:"item_name"`
	QuantityNeeded *int    `json:"quantity_needed"`
	Unit           *string `json:"unit"`
	Description    *string `json:"description"`
	Status         *string `json:"status"`
}

// Empty reports whether the patch carries no fields at all.
func (p *UpdateRequestPatch) Empty() bool {
	return p.ItemName == nil && p.QuantityNeeded == nil && p.Unit == nil &&
		p.Description == nil && p.Status == nil
}
