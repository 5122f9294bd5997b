package kernel

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// zoneMaxLength is the maximum allowed length of a zone name.
const zoneMaxLength = 64

// ErrZoneIsNotConstructed indicates that a Zone was not created through NewZone.
// This error is returned when validating a zero-value Zone.
var ErrZoneIsNotConstructed = errs.NewValueIsRequiredError("Zone must be created via NewZone")

// Zone is a value object identifying the serviceable area an order is delivered in
// and a courier works in. It carries no geometry; it is an opaque tag used to narrow
// the dispatch feed to orders a courier can actually serve.
//
// The zero value of Zone is invalid and must be constructed via NewZone.
// Zone is immutable and safe for concurrent use.
//
// Example usage:
//
//	zone, err := kernel.NewZone("downtown")
//	if err != nil {
//	    // handle validation error
//	}
type Zone struct {
	name string
}

// NewZone creates a Zone from its name. The name is trimmed of surrounding
// whitespace and must be non-empty and at most 64 characters long.
func NewZone(name string) (Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Zone{}, errs.NewValueIsRequiredError("zone name")
	}
	if len(name) > zoneMaxLength {
		return Zone{}, errs.NewValueIsOutOfRangeError("zone name length", len(name), 1, zoneMaxLength)
	}
	return Zone{name: name}, nil
}

// String returns the zone name.
// For a zero value Zone this returns the empty string.
func (z Zone) String() string {
	return z.name
}

// IsEqual compares two zones by name.
func (z Zone) IsEqual(other Zone) bool {
	return z.name == other.name
}

// Validate checks that the Zone was constructed via NewZone.
// Returns ErrZoneIsNotConstructed for the zero value.
func (z Zone) Validate() error {
	if z.name == "" {
		return ErrZoneIsNotConstructed
	}
	return nil
}
