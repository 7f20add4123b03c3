// =============================================================================
// dzcb - Codeplug Validation
// =============================================================================
//
// This module checks an assembled codeplug against the limits of the Anytone
// hardware before any file is written:
//   - DMR ID range of contacts
//   - Color code range of digital channels
//   - Channel, zone and scan list capacity
//   - Unique channel short names
//
// ERROR HANDLING:
//   - Problems are collected, not returned one at a time
//   - Capacity problems are warnings: the CPS truncates, so generation
//     continues
//   - Broken invariants (duplicate short names) are errors
//   - TreatWarningsAsErrors turns every warning into a failed validation
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mycodeplug/dzcb/internal/models"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation problem.
type ValidationError struct {
	// Severity is SeverityError or SeverityWarning.
	Severity string

	// Entity is the kind of object checked: contact, channel, zone,
	// scanlist or codeplug.
	Entity string

	// Name identifies the object.
	Name string

	// Rule is the check that failed.
	Rule string

	Value   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Entity,
		e.Name,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no errors (and, with
	// TreatWarningsAsErrors, no warnings).
	IsValid bool

	// Errors contains all problems, including warnings.
	Errors []*ValidationError

	ErrorCount   int
	WarningCount int
}

func (r *ValidationResult) add(v *ValidationError, opts ValidationOptions) {
	r.Errors = append(r.Errors, v)
	if v.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
		return
	}
	r.WarningCount++
	if opts.TreatWarningsAsErrors {
		r.IsValid = false
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Limits are hardware capacities.
type Limits struct {
	MaxDMRID        int
	MaxColorCode    int
	MaxChannels     int
	MaxZones        int
	MaxZoneMembers  int
	MaxScanLists    int
	MaxScanMembers  int
	MaxContacts     int
	MaxGroupMembers int
}

// AnytoneLimits returns the capacities shared by the 878 and 890.
func AnytoneLimits() Limits {
	return Limits{
		MaxDMRID:        16777215,
		MaxColorCode:    15,
		MaxChannels:     4000,
		MaxZones:        250,
		MaxZoneMembers:  250,
		MaxScanLists:    250,
		MaxScanMembers:  50,
		MaxContacts:     10000,
		MaxGroupMembers: 64,
	}
}

// ValidationOptions contains options for validation.
type ValidationOptions struct {
	// TreatWarningsAsErrors makes any warning fail validation.
	// Default: false
	TreatWarningsAsErrors bool

	Limits Limits
}

// DefaultValidationOptions returns the default validation options.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{Limits: AnytoneLimits()}
}

// Validator checks codeplugs.
type Validator struct {
	options ValidationOptions
}

// NewValidator creates a Validator with the default options.
func NewValidator() *Validator {
	return &Validator{options: DefaultValidationOptions()}
}

// NewValidatorWithOptions creates a Validator with custom options.
func NewValidatorWithOptions(options ValidationOptions) *Validator {
	return &Validator{options: options}
}

// Validate checks a codeplug with the default options and returns the
// problems found.
func Validate(cp models.Codeplug) []*ValidationError {
	return NewValidator().ValidateAll(cp).Errors
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// ValidateAll runs every check on the codeplug.
func (v *Validator) ValidateAll(cp models.Codeplug) *ValidationResult {
	result := &ValidationResult{IsValid: true}
	for _, e := range v.check(cp) {
		result.add(e, v.options)
	}
	return result
}

func (v *Validator) check(cp models.Codeplug) []*ValidationError {
	var errs []*ValidationError
	errs = append(errs, v.validateContacts(cp.ContactList())...)
	errs = append(errs, v.validateChannels(cp.Channels)...)
	errs = append(errs, v.validateGroupLists(cp.GroupLists)...)
	errs = append(errs, v.validateZones(cp.Zones)...)
	errs = append(errs, v.validateScanLists(cp.ScanLists)...)
	return errs
}

func (v *Validator) capacity(entity string, count, max int) *ValidationError {
	if max <= 0 || count <= max {
		return nil
	}
	return &ValidationError{
		Severity: SeverityWarning,
		Entity:   "codeplug",
		Name:     entity,
		Rule:     "capacity",
		Value:    strconv.Itoa(count),
		Message:  fmt.Sprintf("%d %s exceed the radio capacity of %d", count, entity, max),
	}
}

func (v *Validator) validateContacts(contacts []models.Contact) []*ValidationError {
	var errs []*ValidationError
	unique := models.UniquifyContacts(contacts)
	if e := v.capacity("contacts", len(unique), v.options.Limits.MaxContacts); e != nil {
		errs = append(errs, e)
	}
	for _, c := range unique {
		if c.DMRID < 1 || c.DMRID > v.options.Limits.MaxDMRID {
			errs = append(errs, &ValidationError{
				Severity: SeverityWarning,
				Entity:   "contact",
				Name:     c.Name,
				Rule:     "dmrid_range",
				Value:    strconv.Itoa(c.DMRID),
				Message:  fmt.Sprintf("DMR ID must be between 1 and %d", v.options.Limits.MaxDMRID),
			})
		}
	}
	return errs
}

func (v *Validator) validateChannels(channels []models.Channel) []*ValidationError {
	var errs []*ValidationError
	if e := v.capacity("channels", len(channels), v.options.Limits.MaxChannels); e != nil {
		errs = append(errs, e)
	}

	owner := make(map[string]string, len(channels))
	for _, ch := range channels {
		short := ch.ShortName()
		if prev, dup := owner[short]; dup {
			errs = append(errs, &ValidationError{
				Severity: SeverityError,
				Entity:   "channel",
				Name:     ch.Name,
				Rule:     "unique_short_name",
				Value:    short,
				Message:  fmt.Sprintf("short name already used by '%s'", prev),
			})
		} else {
			owner[short] = ch.Name
		}

		if ch.IsDigital() {
			cc := ch.Digital.ColorCode
			if cc < 0 || cc > v.options.Limits.MaxColorCode {
				errs = append(errs, &ValidationError{
					Severity: SeverityWarning,
					Entity:   "channel",
					Name:     ch.Name,
					Rule:     "color_code_range",
					Value:    strconv.Itoa(cc),
					Message:  fmt.Sprintf("color code must be between 0 and %d", v.options.Limits.MaxColorCode),
				})
			}
		}
	}
	return errs
}

func (v *Validator) validateGroupLists(lists []models.GroupList) []*ValidationError {
	var errs []*ValidationError
	for _, gl := range lists {
		if n := len(gl.Contacts); n > v.options.Limits.MaxGroupMembers {
			errs = append(errs, &ValidationError{
				Severity: SeverityWarning,
				Entity:   "grouplist",
				Name:     gl.Name,
				Rule:     "members",
				Value:    strconv.Itoa(n),
				Message:  fmt.Sprintf("more than %d talkgroups", v.options.Limits.MaxGroupMembers),
			})
		}
	}
	return errs
}

func (v *Validator) validateZones(zones []models.Zone) []*ValidationError {
	var errs []*ValidationError
	if e := v.capacity("zones", len(zones), v.options.Limits.MaxZones); e != nil {
		errs = append(errs, e)
	}
	for _, z := range zones {
		if n := len(z.UniqueChannels()); n > v.options.Limits.MaxZoneMembers {
			errs = append(errs, &ValidationError{
				Severity: SeverityWarning,
				Entity:   "zone",
				Name:     z.Name,
				Rule:     "members",
				Value:    strconv.Itoa(n),
				Message:  fmt.Sprintf("more than %d channels", v.options.Limits.MaxZoneMembers),
			})
		}
	}
	return errs
}

func (v *Validator) validateScanLists(lists []models.ScanList) []*ValidationError {
	var errs []*ValidationError
	if e := v.capacity("scan lists", len(lists), v.options.Limits.MaxScanLists); e != nil {
		errs = append(errs, e)
	}
	for _, s := range lists {
		if n := len(s.UniqueChannels()); n > v.options.Limits.MaxScanMembers {
			errs = append(errs, &ValidationError{
				Severity: SeverityWarning,
				Entity:   "scanlist",
				Name:     s.Name,
				Rule:     "members",
				Value:    strconv.Itoa(n),
				Message:  fmt.Sprintf("only the first %d channels are written", v.options.Limits.MaxScanMembers),
			})
		}
	}
	return errs
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats problems for display, one per line.
func FormatErrors(errs []*ValidationError) string {
	if len(errs) == 0 {
		return "No validation errors."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d validation problem(s):\n", len(errs))
	for i, e := range errs {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, e.Error())
	}
	return b.String()
}
