// Package zippath normalizes Windows-style archive entry paths into safe
// relative paths suitable for joining under a destination root.
package zippath

import (
	"errors"
	"strings"
)

// ErrTraversal reports an entry path containing a ".." segment. Such
// entries are rejected outright rather than resolved, so a hostile archive
// can never place a file outside the destination root.
var ErrTraversal = errors.New("zippath: path would escape destination root")

// Normalize converts a raw archive entry path into a relative,
// forward-slash separated path: drive-letter prefixes are stripped,
// backslashes become slashes, and empty and "." segments are dropped.
//
// An empty result with a nil error means the path carried no usable
// segments (for example a bare drive root); callers treat it as a
// directory marker. Normalize is pure and idempotent.
func Normalize(raw string) (string, error) {
	p := strings.ReplaceAll(raw, `\`, "/")
	p = stripDrive(p)

	segs := strings.Split(p, "/")
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		switch s {
		case "", ".":
			continue
		case "..":
			return "", ErrTraversal
		}
		// An embedded or doubled drive prefix ("C:/C:/x") would survive the
		// leading strip and break idempotence, so bare drive segments are
		// dropped wherever they appear.
		if isDriveSegment(s) {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "/"), nil
}

// stripDrive removes a leading Windows drive prefix: a single ASCII
// letter, a colon, and a path separator.
func stripDrive(p string) string {
	if len(p) >= 3 && isASCIILetter(p[0]) && p[1] == ':' && p[2] == '/' {
		return p[3:]
	}
	return p
}

func isDriveSegment(s string) bool {
	return len(s) == 2 && isASCIILetter(s[0]) && s[1] == ':'
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
