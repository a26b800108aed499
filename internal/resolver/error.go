package resolver

import (
	"fmt"
	"strings"
)

// CycleError reports a dependency cycle, naming every participating
// node (spec §7, §8 scenario 8).
type CycleError struct {
	Names []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("resolver: dependency cycle: %s", strings.Join(e.Names, " -> "))
}

// AmbiguityError reports an outbound reference that matches primary
// units in more than one IP, with no IP named explicitly to break the
// tie (spec §4.H).
type AmbiguityError struct {
	Name         string
	IPCandidates []string
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("resolver: %q is ambiguous across IPs: %s", e.Name, strings.Join(e.IPCandidates, ", "))
}

// MissingIPError reports a root or dependency that names an IP absent
// from the catalog (spec §7's "missing IP in catalog").
type MissingIPError struct {
	IP string
}

func (e *MissingIPError) Error() string {
	return fmt.Sprintf("resolver: IP %q not found in catalog", e.IP)
}
