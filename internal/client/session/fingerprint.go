package session

import "github.com/smartcampus/assistant-cli/internal/client/models"

// Fingerprint condenses the logged-in identity into a comparable string.
// Anonymous sessions fingerprint to "".
func Fingerprint(s models.Session) string {
	if !s.Authenticated() {
		return ""
	}
	return string(s.Identity()) + "/" + s.Profile.University + "/" + s.Profile.RollNo
}

// ShouldPurge decides whether per-user cached state (upload queue,
// preferences) must be wiped before it is shown. It is true exactly when two
// different identities are involved; a fresh install (no previous
// fingerprint) or an anonymous load never purges.
//
// The previous fingerprint survives logout on purpose: if the same user logs
// back in their cached state is still theirs, while a different user logging
// in still triggers the purge.
func ShouldPurge(prev, cur string) bool {
	return prev != "" && cur != "" && prev != cur
}
