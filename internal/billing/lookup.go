package billing

import "time"

// CaseConfig is the billing policy of a case
type CaseConfig struct {
	CaseID string
	// MinBillableMinutes is the minimum billed duration per contiguous block.
	// Zero or less disables padding for the case.
	MinBillableMinutes int
}

// MinBillable returns the minimum billable time as a duration
func (c CaseConfig) MinBillable() time.Duration {
	return time.Duration(c.MinBillableMinutes) * time.Minute
}

// CustomerResolver maps a phase to the customer it is billed to
type CustomerResolver interface {
	CustomerForPhase(phaseID string) (customerID string, ok bool)
}

// CaseResolver maps a phase to the configuration of its case
type CaseResolver interface {
	CaseForPhase(phaseID string) (CaseConfig, bool)
}

// NextEntryFinder returns the earliest known interval start at or after the
// given time, ignoring the listed entry ids
type NextEntryFinder interface {
	NextEntryStart(after time.Time, exclude []string) (time.Time, bool)
}

// CustomerResolverFunc adapts a function to CustomerResolver
type CustomerResolverFunc func(phaseID string) (string, bool)

// CustomerForPhase implements CustomerResolver
func (f CustomerResolverFunc) CustomerForPhase(phaseID string) (string, bool) {
	return f(phaseID)
}

// CaseResolverFunc adapts a function to CaseResolver
type CaseResolverFunc func(phaseID string) (CaseConfig, bool)

// CaseForPhase implements CaseResolver
func (f CaseResolverFunc) CaseForPhase(phaseID string) (CaseConfig, bool) {
	return f(phaseID)
}

// NextEntryFinderFunc adapts a function to NextEntryFinder
type NextEntryFinderFunc func(after time.Time, exclude []string) (time.Time, bool)

// NextEntryStart implements NextEntryFinder
func (f NextEntryFinderFunc) NextEntryStart(after time.Time, exclude []string) (time.Time, bool) {
	return f(after, exclude)
}

// customerOf resolves the customer identity of a phase. A nil resolver, an
// unset phase or an unresolvable phase all yield NoCustomer.
func customerOf(customers CustomerResolver, phaseID string) Customer {
	if customers == nil || phaseID == "" {
		return NoCustomer
	}
	id, ok := customers.CustomerForPhase(phaseID)
	if !ok {
		return NoCustomer
	}
	return KnownCustomer(id)
}
