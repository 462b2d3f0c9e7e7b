package notify

import (
	"testing"

	"docpress/internal/wordpress"
)

func TestRolesFor(t *testing.T) {
	tests := []struct {
		name string
		role string
		want []string
	}{
		{"subscriber includes all higher roles", "subscriber", []string{"administrator", "editor", "author", "contributor", "subscriber"}},
		{"contributor", "contributor", []string{"administrator", "editor", "author", "contributor"}},
		{"author", "author", []string{"administrator", "editor", "author"}},
		{"editor", "editor", []string{"administrator", "editor"}},
		{"administrator still notifies editors", "administrator", []string{"administrator", "editor"}},
		{"empty role", "", []string{"administrator", "editor"}},
		{"unknown role queried as given", "shop_manager", []string{"administrator", "editor", "shop_manager"}},
		{"normalized case", " Subscriber ", []string{"administrator", "editor", "author", "contributor", "subscriber"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rolesFor(tt.role)
			if len(got) != len(tt.want) {
				t.Fatalf("rolesFor(%q) = %v, want %v", tt.role, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("rolesFor(%q)[%d] = %q, want %q", tt.role, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFilterRecipients(t *testing.T) {
	users := []wordpress.User{
		{ID: 1, Email: "ana@example.com"},
		{ID: 2, Email: "bruno@other.org"},
		{ID: 3, Email: ""},
		{ID: 4, Email: "ANA@example.com"},
		{ID: 5, Email: "carla@example.com"},
	}

	t.Run("domain allow-list", func(t *testing.T) {
		got := filterRecipients(users, []string{"example.com"})
		if len(got) != 2 {
			t.Fatalf("filterRecipients() returned %d users, want 2", len(got))
		}
		if got[0].ID != 1 || got[1].ID != 5 {
			t.Errorf("filterRecipients() = ids %d, %d, want 1, 5", got[0].ID, got[1].ID)
		}
	})

	t.Run("empty allow-list admits all domains", func(t *testing.T) {
		got := filterRecipients(users, nil)
		if len(got) != 3 {
			t.Errorf("filterRecipients() returned %d users, want 3", len(got))
		}
	})

	t.Run("drops blank and duplicate emails", func(t *testing.T) {
		got := filterRecipients(users, nil)
		seen := make(map[string]bool)
		for _, u := range got {
			if u.Email == "" {
				t.Errorf("filterRecipients() kept a blank email")
			}
			if seen[u.Email] {
				t.Errorf("filterRecipients() kept duplicate %q", u.Email)
			}
			seen[u.Email] = true
		}
	})
}

func TestDomainAllowed(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		domains []string
		want    bool
	}{
		{"match", "a@example.com", []string{"example.com"}, true},
		{"case insensitive", "a@EXAMPLE.com", []string{"Example.COM"}, true},
		{"no match", "a@other.org", []string{"example.com"}, false},
		{"no at sign", "invalid", []string{"example.com"}, false},
		{"empty list", "a@anything.dev", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domainAllowed(tt.email, tt.domains); got != tt.want {
				t.Errorf("domainAllowed(%q, %v) = %v, want %v", tt.email, tt.domains, got, tt.want)
			}
		})
	}
}
