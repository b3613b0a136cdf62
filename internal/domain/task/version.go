package task

import (
	"fmt"
	"strings"
)

// VersionStrategy selects how a version code becomes a display label.
type VersionStrategy string

const (
	// VersionPrefix applies the briefing and prefix rules of ResolveVersion.
	VersionPrefix VersionStrategy = "prefix"
	// VersionVerbatim uses the version code unchanged.
	VersionVerbatim VersionStrategy = "verbatim"
)

var briefingRequestTypes = map[string]struct{}{
	"BRIEFING EXTERNO":   {},
	"[SICREDI] Briefing": {},
	"[GERAL] Briefing":   {},
	"BRIEFING":           {},
}

// ParseVersionStrategy validates a strategy name. Empty selects VersionPrefix.
func ParseVersionStrategy(name string) (VersionStrategy, error) {
	switch VersionStrategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", VersionPrefix:
		return VersionPrefix, nil
	case VersionVerbatim:
		return VersionVerbatim, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVersionStrategy, name)
	}
}

// Resolve derives the display label for a version code.
func (s VersionStrategy) Resolve(code, requestType string) string {
	if s == VersionVerbatim {
		return code
	}
	return ResolveVersion(code, requestType)
}

// ResolveVersion derives a short display label from a version code and
// request type.
func ResolveVersion(code, requestType string) string {
	if _, ok := briefingRequestTypes[requestType]; ok {
		return "V0"
	}
	if code == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(code, "BRF"):
		return "V0"
	case strings.HasPrefix(code, "V") && len(code) > 1:
		return leadingDigits(code, "V")
	case strings.HasPrefix(code, "DES"):
		return leadingDigits(code, "DES")
	case strings.HasPrefix(code, "EXT"):
		return leadingDigits(code, "EXT")
	}
	return code
}

// leadingDigits returns prefix plus the digit run that follows it in code,
// or code itself when no digit follows.
func leadingDigits(code, prefix string) string {
	rest := code[len(prefix):]
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	if n == 0 {
		return code
	}
	return prefix + rest[:n]
}
