package notify

import (
	"strings"

	"docpress/internal/wordpress"
)

// roleHierarchy lists the built-in WordPress roles from most to least
// privileged.
var roleHierarchy = []string{"administrator", "editor", "author", "contributor", "subscriber"}

// rolesFor expands the configured notification role to itself plus every
// higher role in the hierarchy. Administrator and editor are notified
// regardless; unknown roles are queried as given alongside them.
func rolesFor(role string) []string {
	role = strings.TrimSpace(strings.ToLower(role))

	for i, name := range roleHierarchy {
		if name == role {
			end := i + 1
			if end < 2 {
				end = 2
			}
			return append([]string(nil), roleHierarchy[:end]...)
		}
	}

	roles := append([]string(nil), roleHierarchy[:2]...)
	if role != "" {
		roles = append(roles, role)
	}
	return roles
}

// filterRecipients drops users without an email address, users outside the
// domain allow-list, and duplicate addresses. An empty allow-list admits
// every domain.
func filterRecipients(users []wordpress.User, allowedDomains []string) []wordpress.User {
	seen := make(map[string]bool, len(users))
	recipients := make([]wordpress.User, 0, len(users))

	for _, u := range users {
		email := strings.TrimSpace(strings.ToLower(u.Email))
		if email == "" || seen[email] {
			continue
		}
		if !domainAllowed(email, allowedDomains) {
			continue
		}
		seen[email] = true
		recipients = append(recipients, u)
	}

	return recipients
}

func domainAllowed(email string, allowedDomains []string) bool {
	if len(allowedDomains) == 0 {
		return true
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]

	for _, allowed := range allowedDomains {
		if strings.EqualFold(domain, strings.TrimSpace(allowed)) {
			return true
		}
	}
	return false
}
