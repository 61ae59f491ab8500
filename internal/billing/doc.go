// Package billing turns raw logged intervals into billable records.
//
// A reconciliation run rounds every finished entry onto a five minute grid,
// resolves the overlaps that rounding introduces, flags the remaining double
// bookings as overtime and pads short blocks up to the minimum billable time
// of their case. The package does no I/O; everything it needs from the outside
// world is asked through the resolver interfaces in lookup.go.
package billing
