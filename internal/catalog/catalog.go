// Package catalog holds the master data entries are booked against:
// customers, their cases, the phases of each case and the worktypes.
// It is synced from the project management system as a YAML file.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xolan/billable/internal/billing"
)

// Customer is a billed organisation
type Customer struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Case is a billable engagement of one customer
type Case struct {
	ID                 string `yaml:"id"`
	Name               string `yaml:"name"`
	Customer           string `yaml:"customer"`
	MinBillableMinutes int    `yaml:"min_billable_minutes"`
}

// Phase is the unit entries are booked on
type Phase struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Case   string `yaml:"case"`
	Active bool   `yaml:"active"`
}

// Worktype classifies the kind of work done
type Worktype struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Active bool   `yaml:"active"`
}

// Catalog is the loaded master data
type Catalog struct {
	Customers []Customer `yaml:"customers"`
	Cases     []Case     `yaml:"cases"`
	Phases    []Phase    `yaml:"phases"`
	Worktypes []Worktype `yaml:"worktypes"`

	customers map[string]Customer
	cases     map[string]Case
	phases    map[string]Phase
	worktypes map[string]Worktype
}

// Load reads and validates the catalog at path
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// LoadOrEmpty is Load, but a missing file yields an empty catalog
func LoadOrEmpty(path string) (*Catalog, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	return Load(path)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	c := New()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.index()
	return c, nil
}

// New returns an empty catalog
func New() *Catalog {
	c := &Catalog{}
	c.index()
	return c
}

// Validate checks for empty and duplicate ids and references to records
// that do not exist. All problems are reported together.
func (c *Catalog) Validate() error {
	var problems []string
	seen := func(kind string) func(id string) {
		ids := make(map[string]bool)
		return func(id string) {
			switch {
			case strings.TrimSpace(id) == "":
				problems = append(problems, fmt.Sprintf("%s with empty id", kind))
			case ids[id]:
				problems = append(problems, fmt.Sprintf("duplicate %s %q", kind, id))
			}
			ids[id] = true
		}
	}

	customerIDs := make(map[string]bool)
	checkCustomer := seen("customer")
	for _, cu := range c.Customers {
		checkCustomer(cu.ID)
		customerIDs[cu.ID] = true
	}

	caseIDs := make(map[string]bool)
	checkCase := seen("case")
	for _, ca := range c.Cases {
		checkCase(ca.ID)
		caseIDs[ca.ID] = true
		if !customerIDs[ca.Customer] {
			problems = append(problems, fmt.Sprintf("case %q references unknown customer %q", ca.ID, ca.Customer))
		}
		if ca.MinBillableMinutes < 0 {
			problems = append(problems, fmt.Sprintf("case %q has negative min_billable_minutes", ca.ID))
		}
	}

	checkPhase := seen("phase")
	for _, p := range c.Phases {
		checkPhase(p.ID)
		if !caseIDs[p.Case] {
			problems = append(problems, fmt.Sprintf("phase %q references unknown case %q", p.ID, p.Case))
		}
	}

	checkWorktype := seen("worktype")
	for _, w := range c.Worktypes {
		checkWorktype(w.ID)
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Catalog) index() {
	c.customers = make(map[string]Customer, len(c.Customers))
	for _, cu := range c.Customers {
		c.customers[cu.ID] = cu
	}
	c.cases = make(map[string]Case, len(c.Cases))
	for _, ca := range c.Cases {
		c.cases[ca.ID] = ca
	}
	c.phases = make(map[string]Phase, len(c.Phases))
	for _, p := range c.Phases {
		c.phases[p.ID] = p
	}
	c.worktypes = make(map[string]Worktype, len(c.Worktypes))
	for _, w := range c.Worktypes {
		c.worktypes[w.ID] = w
	}
}

// Phase looks up a phase by id
func (c *Catalog) Phase(id string) (Phase, bool) {
	p, ok := c.phases[id]
	return p, ok
}

// Worktype looks up a worktype by id
func (c *Catalog) Worktype(id string) (Worktype, bool) {
	w, ok := c.worktypes[id]
	return w, ok
}

// Case looks up a case by id
func (c *Catalog) Case(id string) (Case, bool) {
	ca, ok := c.cases[id]
	return ca, ok
}

// Customer looks up a customer by id
func (c *Catalog) Customer(id string) (Customer, bool) {
	cu, ok := c.customers[id]
	return cu, ok
}

// CustomerForPhase resolves the customer a phase is billed to
func (c *Catalog) CustomerForPhase(phaseID string) (string, bool) {
	ca, ok := c.caseOf(phaseID)
	if !ok || ca.Customer == "" {
		return "", false
	}
	return ca.Customer, true
}

// CaseForPhase resolves the billing policy of the case a phase belongs to
func (c *Catalog) CaseForPhase(phaseID string) (billing.CaseConfig, bool) {
	ca, ok := c.caseOf(phaseID)
	if !ok {
		return billing.CaseConfig{}, false
	}
	return billing.CaseConfig{CaseID: ca.ID, MinBillableMinutes: ca.MinBillableMinutes}, true
}

func (c *Catalog) caseOf(phaseID string) (Case, bool) {
	p, ok := c.phases[phaseID]
	if !ok {
		return Case{}, false
	}
	ca, ok := c.cases[p.Case]
	return ca, ok
}

// PhasesOfCase returns the phases of a case sorted by id
func (c *Catalog) PhasesOfCase(caseID string) []Phase {
	var phases []Phase
	for _, p := range c.Phases {
		if p.Case == caseID {
			phases = append(phases, p)
		}
	}
	sort.Slice(phases, func(i, j int) bool { return phases[i].ID < phases[j].ID })
	return phases
}

// IsEmpty reports whether the catalog holds no phases
func (c *Catalog) IsEmpty() bool {
	return len(c.Phases) == 0
}

var (
	_ billing.CustomerResolver = (*Catalog)(nil)
	_ billing.CaseResolver     = (*Catalog)(nil)
)
