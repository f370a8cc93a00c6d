package validation

import (
	"regexp"
	"strconv"
	"strings"

	"gihanotis/internal/models"
)

// Quantity bounds shared by requests and responses.
const (
	MaxQuantity = 1000000

	DefaultPage    = 1
	DefaultPerPage = 50
	MaxPerPage     = 100
)

// Error is returned when a field violates its constraint. The message names
// the violated rule and is safe to return to the client.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

// Patterns removed by Sanitize. This is defense in depth on top of output
// escaping in whatever renders these values, not a substitute for it.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?is)<iframe[^>]*>.*?</iframe>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)onerror=`),
	regexp.MustCompile(`(?i)onload=`),
}

// Sanitize strips known-dangerous substrings from free text.
func Sanitize(text string) string {
	for _, p := range dangerousPatterns {
		text = p.ReplaceAllString(text, "")
	}
	return text
}

// ValidateCreateRequest checks a request creation payload. Required-field
// presence is the handler's concern; this validates and sanitizes whatever
// is present.
func ValidateCreateRequest(in *models.CreateRequestInput) error {
	if err := checkItemName(&in.ItemName); err != nil {
		return err
	}
	if in.QuantityNeeded != nil {
		if err := checkQuantityNeeded(*in.QuantityNeeded); err != nil {
			return err
		}
	}
	if err := checkUnit(&in.Unit); err != nil {
		return err
	}
	if in.Description != nil {
		if err := checkDescription(in.Description); err != nil {
			return err
		}
	}
	return nil
}

// ValidateUpdateRequest checks a partial request update. Only non-nil fields
// are validated, which is what makes partial patches safe.
func ValidateUpdateRequest(p *models.UpdateRequestPatch) error {
	if p.ItemName != nil {
		if err := checkItemName(p.ItemName); err != nil {
			return err
		}
	}
	if p.QuantityNeeded != nil {
		if err := checkQuantityNeeded(*p.QuantityNeeded); err != nil {
			return err
		}
	}
	if p.Unit != nil {
		if err := checkUnit(p.Unit); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := checkDescription(p.Description); err != nil {
			return err
		}
	}
	if p.Status != nil {
		if *p.Status != models.StatusOpen && *p.Status != models.StatusClosed {
			return newError("status", "Status must be 'open' or 'closed'")
		}
	}
	return nil
}

// ValidateCreateResponse checks a response submission payload.
func ValidateCreateResponse(in *models.CreateResponseInput) error {
	if in.QuantityAvailable != nil {
		q := *in.QuantityAvailable
		if q <= 0 {
			return newError("quantity_available", "Quantity must be greater than 0")
		}
		if q > MaxQuantity {
			return newError("quantity_available", "Quantity too large (max 1,000,000)")
		}
	}
	if err := checkLocation(&in.Location); err != nil {
		return err
	}
	if in.ResponderName != nil && *in.ResponderName != "" {
		if len(*in.ResponderName) > 255 {
			return newError("responder_name", "Name too long (max 255 characters)")
		}
		*in.ResponderName = Sanitize(*in.ResponderName)
	}
	if in.ResponderContact != nil && *in.ResponderContact != "" {
		if len(*in.ResponderContact) > 255 {
			return newError("responder_contact", "Contact info too long (max 255 characters)")
		}
	}
	if in.Notes != nil && *in.Notes != "" {
		if len(*in.Notes) > 2000 {
			return newError("notes", "Notes too long (max 2000 characters)")
		}
		*in.Notes = Sanitize(*in.Notes)
	}
	return nil
}

func checkItemName(name *string) error {
	if strings.TrimSpace(*name) == "" {
		return newError("item_name", "Item name cannot be empty")
	}
	if len(*name) > 255 {
		return newError("item_name", "Item name too long (max 255 characters)")
	}
	if len(*name) < 2 {
		return newError("item_name", "Item name too short (min 2 characters)")
	}
	*name = Sanitize(*name)
	return nil
}

func checkQuantityNeeded(q int) error {
	if q < 0 {
		return newError("quantity_needed", "Quantity cannot be negative")
	}
	if q > MaxQuantity {
		return newError("quantity_needed", "Quantity too large (max 1,000,000)")
	}
	return nil
}

func checkUnit(unit *string) error {
	if strings.TrimSpace(*unit) == "" {
		return newError("unit", "Unit cannot be empty")
	}
	if len(*unit) > 50 {
		return newError("unit", "Unit too long (max 50 characters)")
	}
	return nil
}

func checkDescription(desc *string) error {
	if *desc == "" {
		return nil
	}
	if len(*desc) > 5000 {
		return newError("description", "Description too long (max 5000 characters)")
	}
	*desc = Sanitize(*desc)
	return nil
}

func checkLocation(loc *string) error {
	if strings.TrimSpace(*loc) == "" {
		return newError("location", "Location cannot be empty")
	}
	if len(*loc) > 500 {
		return newError("location", "Location too long (max 500 characters)")
	}
	if len(*loc) < 3 {
		return newError("location", "Location too short (min 3 characters)")
	}
	*loc = Sanitize(*loc)
	return nil
}

// ValidatePagination coerces raw page/per_page query values to integers,
// applying defaults when they are absent. Non-numeric input is a validation
// error, not a silent fallback.
func ValidatePagination(pageRaw, perPageRaw string) (page, perPage int, err error) {
	page = DefaultPage
	perPage = DefaultPerPage

	if pageRaw != "" {
		page, err = strconv.Atoi(pageRaw)
		if err != nil {
			return 0, 0, newError("page", "Invalid pagination parameters")
		}
	}
	if perPageRaw != "" {
		perPage, err = strconv.Atoi(perPageRaw)
		if err != nil {
			return 0, 0, newError("per_page", "Invalid pagination parameters")
		}
	}

	if page < 1 {
		return 0, 0, newError("page", "Page must be >= 1")
	}
	if perPage < 1 || perPage > MaxPerPage {
		return 0, 0, newError("per_page", "Per page must be between 1 and 100")
	}
	return page, perPage, nil
}
