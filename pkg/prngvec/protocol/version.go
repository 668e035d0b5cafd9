package protocol

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// VectorFormatVersion versions the artifact layout and line format. Bump the
// major version whenever a change makes old and new vectors incomparable.
const VectorFormatVersion = "v1.0.0"

// IsCompatibleVersion reports whether vectors written under two format
// versions can be compared. Major versions must match exactly.
func IsCompatibleVersion(refVersion, testVersion string) (bool, error) {
	if !semver.IsValid(refVersion) {
		return false, fmt.Errorf("invalid reference version: %s", refVersion)
	}
	if !semver.IsValid(testVersion) {
		return false, fmt.Errorf("invalid test version: %s", testVersion)
	}

	return semver.Major(refVersion) == semver.Major(testVersion), nil
}

// GetCompatibilityError returns a user-friendly message for incompatible versions.
func GetCompatibilityError(refVersion, testVersion string) string {
	return fmt.Sprintf(
		"Vectors in format %s cannot be compared with reference format %s. Required version: %s.x.x",
		testVersion, refVersion, semver.Major(refVersion),
	)
}
