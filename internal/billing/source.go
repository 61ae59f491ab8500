package billing

import "time"

// Source tags where a billable interval came from
type Source string

const (
	// SourceRounded is an ordinary logged interval after rounding
	SourceRounded Source = "rounded"
	// SourceRoundedOverlapping is a rounded interval whose time was already
	// claimed by another accepted interval (overtime)
	SourceRoundedOverlapping Source = "rounded-overlapping"
	// SourceMinimumBillableTime is synthetic padding up to the case minimum
	SourceMinimumBillableTime Source = "minimum-billable-time"
)

// RoundingInterval is the grid raw timestamps are rounded onto
const RoundingInterval = 5 * time.Minute

// Padding never runs past this wall clock time of its day
const (
	DayEndHour   = 23
	DayEndMinute = 55
)

// String implements fmt.Stringer
func (s Source) String() string {
	return string(s)
}

// IsOvertime reports whether the source marks double-booked time
func (s Source) IsOvertime() bool {
	return s == SourceRoundedOverlapping
}

// Customer identifies the customer an entry is billed to.
// The zero value is NoCustomer.
type Customer struct {
	id    string
	known bool
}

// NoCustomer is used for entries whose phase does not resolve to a customer.
// It is never the same customer as anything, including another NoCustomer.
var NoCustomer = Customer{}

// KnownCustomer returns the identity for a resolved customer id.
// An empty id yields NoCustomer.
func KnownCustomer(id string) Customer {
	if id == "" {
		return NoCustomer
	}
	return Customer{id: id, known: true}
}

// ID returns the customer id and whether the customer is known
func (c Customer) ID() (string, bool) {
	return c.id, c.known
}

// Same reports whether both identities refer to the same known customer
func (c Customer) Same(other Customer) bool {
	return c.known && other.known && c.id == other.id
}

// String implements fmt.Stringer
func (c Customer) String() string {
	if !c.known {
		return "(no customer)"
	}
	return c.id
}
