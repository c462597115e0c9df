package console

import "github.com/frankenpanel/frankenpanel/internal/api/response"

// NavEntry is one item in the console navigation
type NavEntry struct {
	Key       string
	Title     string
	Superuser bool
}

// DefaultNav returns the console navigation in display order
func DefaultNav() []NavEntry {
	return []NavEntry{
		{Key: "dashboard", Title: "Dashboard"},
		{Key: "sites", Title: "Sites"},
		{Key: "databases", Title: "Databases"},
		{Key: "domains", Title: "Domains"},
		{Key: "backups", Title: "Backups"},
		{Key: "users", Title: "Users", Superuser: true},
		{Key: "audit", Title: "Audit Log", Superuser: true},
	}
}

// VisibleNav filters entries to those the operator may see. A nil user
// sees only the unrestricted entries. The input is never modified.
func VisibleNav(entries []NavEntry, user *response.User) []NavEntry {
	out := make([]NavEntry, 0, len(entries))
	for _, e := range entries {
		if e.Superuser && (user == nil || !user.IsSuperuser) {
			continue
		}
		out = append(out, e)
	}
	return out
}
