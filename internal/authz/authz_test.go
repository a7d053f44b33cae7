package authz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/shared"
)

func TestLoadRules(t *testing.T) {
	t.Run("ParsesFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roles.csv")
		content := `# comment line
allow,/api/health
allow,/api/users*,admin
allow,/photos/api/*
deny,/api/*
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write rules: %v", err)
		}

		rules, err := LoadRules(path)
		if err != nil {
			t.Fatalf("failed to load rules: %v", err)
		}
		if len(rules) != 4 {
			t.Fatalf("expected 4 rules, got %d", len(rules))
		}
		if rules[1].Role != "admin" {
			t.Errorf("expected admin role on users rule, got %q", rules[1].Role)
		}
	})

	t.Run("MissingFile", func(t *testing.T) {
		if _, err := LoadRules(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
			t.Error("loading a missing rules file should fail")
		}
	})
}

func TestManagerIsAuthorized(t *testing.T) {
	manager := NewManager([]Rule{
		{Action: "allow", Pattern: "/api/health"},
		{Action: "allow", Pattern: "/api/users*", Role: "admin"},
		{Action: "allow", Pattern: "/photos/api/*"},
		{Action: "deny", Pattern: "*"},
	}, nil)

	t.Run("FirstMatchWins", func(t *testing.T) {
		if !manager.IsAuthorized("/api/health", []string{"public"}) {
			t.Error("health should be open to everyone")
		}
	})

	t.Run("RoleScopedRule", func(t *testing.T) {
		if !manager.IsAuthorized("/api/users", []string{"admin"}) {
			t.Error("admin should reach the users API")
		}
		if manager.IsAuthorized("/api/users", []string{"public"}) {
			t.Error("non-admin must not reach the users API")
		}
	})

	t.Run("WildcardSpansSlashes", func(t *testing.T) {
		if !manager.IsAuthorized("/photos/api/albums/abc/photos", []string{"public"}) {
			t.Error("* should cover nested paths")
		}
	})

	t.Run("DefaultDeny", func(t *testing.T) {
		empty := NewManager(nil, nil)
		if empty.IsAuthorized("/anything", []string{"admin"}) {
			t.Error("no rules means no access")
		}
	})
}

func TestWildcardMatch(t *testing.T) {
	cases := []struct {
		pattern string
		s       string
		want    bool
	}{
		{"/api/*", "/api/albums", true},
		{"/api/*", "/api/albums/uuid/photos", true},
		{"/api/?", "/api/a", true},
		{"/api/?", "/api/ab", false},
		{"*", "/anything/at/all", true},
		{"/exact", "/exact", true},
		{"/exact", "/exact/sub", false},
		{"*suffix", "prefix-then-suffix", true},
	}

	for _, tc := range cases {
		if got := wildcardMatch(tc.pattern, tc.s); got != tc.want {
			t.Errorf("wildcardMatch(%q, %q) = %v, want %v", tc.pattern, tc.s, got, tc.want)
		}
	}
}

func TestCheckResource(t *testing.T) {
	lib := &models.Library{
		Albums: map[string]*models.Album{
			"al-pub":  {UUID: "al-pub", Realm: models.RealmPublic},
			"al-priv": {UUID: "al-priv", Realm: models.RealmPrivate},
		},
		Photos: map[string]*models.Photo{
			"ph-prot": {UUID: "ph-prot", Realm: models.RealmProtected},
		},
	}

	t.Run("AllowsMatchingRealm", func(t *testing.T) {
		if err := CheckResource(lib, "/photos/api/albums/al-pub", []string{"public"}); err != nil {
			t.Errorf("public album should be readable by public role: %v", err)
		}
		if err := CheckResource(lib, "/photos/api/photos/ph-prot/img-md", []string{"protected"}); err != nil {
			t.Errorf("protected photo should be readable by protected role: %v", err)
		}
	})

	t.Run("DeniesOtherRealms", func(t *testing.T) {
		err := CheckResource(lib, "/photos/api/albums/al-priv", []string{"public", "protected"})
		if !errors.Is(err, shared.ErrAccessDenied) {
			t.Errorf("expected access denied, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := CheckResource(lib, "/photos/api/albums/missing", []string{"private"})
		if !errors.Is(err, shared.ErrAlbumNotFound) {
			t.Errorf("expected album not found, got %v", err)
		}

		err = CheckResource(lib, "/photos/api/photos/missing", []string{"private"})
		if !errors.Is(err, shared.ErrPhotoNotFound) {
			t.Errorf("expected photo not found, got %v", err)
		}
	})

	t.Run("MalformedURI", func(t *testing.T) {
		err := CheckResource(lib, "/photos/api", []string{"private"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected invalid input, got %v", err)
		}

		err = CheckResource(lib, "/photos/api/things/uuid", []string{"private"})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected invalid input for unknown kind, got %v", err)
		}
	})

	t.Run("QueryStringIgnored", func(t *testing.T) {
		if err := CheckResource(lib, "/photos/api/albums/al-pub?size=md", []string{"public"}); err != nil {
			t.Errorf("query string should not affect parsing: %v", err)
		}
	})
}
