package compare

import "github.com/Masterminds/semver/v3"

// Semver orders parsed semantic versions by precedence. Versions that differ
// only in build metadata are equivalent.
type Semver struct{}

// Less reports whether a has lower precedence than b.
func (Semver) Less(a, b *semver.Version) bool {
	return a.LessThan(b)
}

// String names the ordering.
func (Semver) String() string {
	return "semver"
}

// SemverStrings orders raw strings as semantic versions. Strings that do not
// parse as versions sort before all valid versions, byte-wise among
// themselves, so every input has a well-defined place.
type SemverStrings struct{}

// Less reports whether a orders before b.
func (SemverStrings) Less(a, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)

	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return true
	case errB != nil:
		return false
	default:
		return va.LessThan(vb)
	}
}

// String names the ordering.
func (SemverStrings) String() string {
	return "semver"
}
