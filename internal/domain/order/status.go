package order

import "github.com/go-faster/errors"

// Status is the order lifecycle state. The wire form is the integer value;
// transitions are free-form: any status may follow any other.
type Status int

const (
	StatusPending    Status = 0
	StatusConfirmed  Status = 1
	StatusProcessing Status = 2
	StatusShipped    Status = 3
	StatusDelivered  Status = 4
	StatusCancelled  Status = 5
)

// ErrInvalidStatus is returned for status values outside the enumeration.
var ErrInvalidStatus = errors.New("invalid order status")

var statusNames = [...]string{
	StatusPending:    "Pending",
	StatusConfirmed:  "Confirmed",
	StatusProcessing: "Processing",
	StatusShipped:    "Shipped",
	StatusDelivered:  "Delivered",
	StatusCancelled:  "Cancelled",
}

// String returns the status name, e.g. "Pending". Report groupings key on
// these names.
func (s Status) String() string {
	if !s.Valid() {
		return "Unknown"
	}
	return statusNames[s]
}

// Valid reports whether s is a member of the enumeration.
func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCancelled
}

// ParseStatus converts a wire integer into a Status, rejecting values
// outside the enumeration.
func ParseStatus(v int) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return 0, errors.Wrapf(ErrInvalidStatus, "%d", v)
	}
	return s, nil
}
