package semver

// BumpKind names the most significant component that differs between two versions.
type BumpKind string

const (
	BumpMajor      BumpKind = "major"
	BumpMinor      BumpKind = "minor"
	BumpPatch      BumpKind = "patch"
	BumpPreRelease BumpKind = "prerelease"
	BumpBuild      BumpKind = "build"
	BumpNone       BumpKind = "none"
)

// String returns the string representation of the bump kind.
func (k BumpKind) String() string {
	return string(k)
}

// Classify reports which component changed going from old to next.
// The direction of the change is not considered; use Compare for that.
func Classify(old, next SemVersion) BumpKind {
	switch {
	case old.Major != next.Major:
		return BumpMajor
	case old.Minor != next.Minor:
		return BumpMinor
	case old.Patch != next.Patch:
		return BumpPatch
	case old.PreRelease != next.PreRelease:
		return BumpPreRelease
	case old.Build != next.Build:
		return BumpBuild
	default:
		return BumpNone
	}
}
