// Package authz implements rule- and realm-based authorization.
//
// Route-level decisions come from an ordered CSV rules file
// (action,uri-pattern[,role]); the first rule whose pattern matches the
// request URI and whose role applies decides, and anything unmatched is
// denied. Resource-level decisions compare a caller's roles against the realm
// of the album or photo named in the URI, which is how the forward-auth
// endpoint guards direct image fetches.
package authz

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Rule is one authorization rule from the rules file.
//
// A nil Role applies to every caller. Patterns use fnmatch-style wildcards:
// '*' matches any run of characters including slashes, '?' a single character.
type Rule struct {
	Action  string // "allow" or "deny"
	Pattern string
	Role    string // empty means any role
}

// MatchesURI reports whether the URI matches this rule's pattern.
func (r Rule) MatchesURI(uri string) bool {
	return wildcardMatch(r.Pattern, uri)
}

// AppliesToRoles reports whether this rule applies to callers with the given roles.
func (r Rule) AppliesToRoles(roles []string) bool {
	if r.Role == "" {
		return true
	}
	for _, role := range roles {
		if strings.EqualFold(role, r.Role) {
			return true
		}
	}
	return false
}

// Manager evaluates ordered authorization rules.
type Manager struct {
	rules  []Rule
	logger *log.Logger
}

// NewManager creates a manager with a fixed rule set.
func NewManager(rules []Rule, logger *log.Logger) *Manager {
	return &Manager{rules: rules, logger: logger}
}

// LoadManager reads the rules file at path and returns a manager over it.
func LoadManager(path string, logger *log.Logger) (*Manager, error) {
	rules, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("authorization rules loaded", "path", path, "rules", len(rules))
	}
	return NewManager(rules, logger), nil
}

// LoadRules parses a CSV rules file. Blank lines and lines starting with '#'
// are skipped; rows with fewer than two fields are ignored with a warning left
// to the caller.
func LoadRules(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rules file: %w", err)
	}

	var rules []Rule
	for _, row := range records {
		if len(row) == 0 || strings.HasPrefix(strings.TrimSpace(row[0]), "#") {
			continue
		}
		if len(row) < 2 {
			continue
		}
		rule := Rule{
			Action:  strings.ToLower(strings.TrimSpace(row[0])),
			Pattern: strings.TrimSpace(row[1]),
		}
		if len(row) > 2 {
			rule.Role = strings.TrimSpace(row[2])
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

// IsAuthorized evaluates the rules in order for the given URI and roles.
// The first matching rule decides; no match denies.
func (m *Manager) IsAuthorized(uri string, roles []string) bool {
	for _, rule := range m.rules {
		if !rule.MatchesURI(uri) || !rule.AppliesToRoles(roles) {
			continue
		}
		if m.logger != nil {
			m.logger.Debug("rule matched", "action", rule.Action, "pattern", rule.Pattern, "uri", uri)
		}
		return rule.Action == "allow"
	}
	return false
}

// wildcardMatch matches s against an fnmatch-style pattern where '*' spans
// any characters (slashes included) and '?' matches one. path.Match is not
// usable here: its '*' stops at path separators, but the rules file patterns
// expect "/photos/api/*" to cover nested paths.
func wildcardMatch(pattern, s string) bool {
	var pi, si, star, mark int
	star = -1
	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			mark = si
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}
