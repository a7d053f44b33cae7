package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Realm is the access level attached to every album and photo.
//
// Realms form a strict ladder: private implies protected implies public.
// Role checks are membership-based, not ordered: a caller sees a resource
// only when their role list contains the resource's realm name.
type Realm int

const (
	RealmPublic    Realm = 1
	RealmProtected Realm = 2
	RealmPrivate   Realm = 3
)

// ParseRealm converts a realm name (case-insensitive) or numeric level to a Realm.
func ParseRealm(s string) (Realm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "1":
		return RealmPublic, nil
	case "protected", "2":
		return RealmProtected, nil
	case "private", "3":
		return RealmPrivate, nil
	}
	return 0, fmt.Errorf("unknown realm %q", s)
}

// RealmForPath classifies an album or document path by its first segment.
//
// Folders rooted at "Public" are public, "Private" private, and everything
// else (including "Protected" and unclassified folders) defaults to protected.
func RealmForPath(path string) Realm {
	segment := path
	for strings.HasPrefix(segment, "/") {
		segment = segment[1:]
	}
	if i := strings.IndexByte(segment, '/'); i >= 0 {
		segment = segment[:i]
	}
	switch {
	case strings.HasPrefix(segment, "Public"):
		return RealmPublic
	case strings.HasPrefix(segment, "Private"):
		return RealmPrivate
	default:
		return RealmProtected
	}
}

func (r Realm) String() string {
	switch r {
	case RealmPublic:
		return "public"
	case RealmProtected:
		return "protected"
	case RealmPrivate:
		return "private"
	}
	return fmt.Sprintf("realm(%d)", int(r))
}

// Allows reports whether a caller holding the given roles may read a resource in this realm.
func (r Realm) Allows(roles []string) bool {
	name := r.String()
	for _, role := range roles {
		if strings.EqualFold(strings.TrimSpace(role), name) {
			return true
		}
	}
	return false
}

// MarshalJSON serializes the realm as its lowercase name.
func (r Realm) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts both string names ("public") and numeric levels (1).
func (r *Realm) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseRealm(s)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("realm must be a string or integer: %w", err)
	}
	parsed, err := ParseRealm(fmt.Sprintf("%d", n))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SplitRoles normalizes a comma-separated role list into trimmed lowercase names.
func SplitRoles(roles string) []string {
	parts := strings.Split(roles, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
