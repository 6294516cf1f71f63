package auth

import (
	"fmt"

	"go-directory-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each default policy exists before adding
// it, making the operation idempotent and safe to run on every application
// start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors can read the public directory, submit
	// registrations, and log in. The admin role inherits all of that and
	// additionally curates every store.
	policies := [][]string{
		{"anonymous", "/categories", "GET"},
		{"anonymous", "/categories/*", "GET"},
		{"anonymous", "/businesses", "GET"},
		{"anonymous", "/businesses/*", "GET"},
		{"anonymous", "/business-registrations", "POST"},
		{"anonymous", "/site-settings", "GET"},
		{"anonymous", "/uploads/*", "GET"},
		{"anonymous", "/auth/login", "POST"},
		{"anonymous", "/auth/logout", "POST"},

		{"admin", "/categories", "POST"},
		{"admin", "/categories/*", "PATCH"},
		{"admin", "/categories/*", "DELETE"},
		{"admin", "/businesses", "POST"},
		{"admin", "/businesses/*", "PATCH"},
		{"admin", "/businesses/*", "DELETE"},
		{"admin", "/admin/*", "GET"},
		{"admin", "/admin/*", "PATCH"},
		{"admin", "/admin/*", "PUT"},
		{"admin", "/admin/*", "DELETE"},
		{"admin", "/upload", "POST"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// The admin role inherits everything the anonymous role can do.
	if has, _ := e.HasRoleForUser("admin", "anonymous"); !has {
		if _, err := e.AddRoleForUser("admin", "anonymous"); err != nil {
			log.Error(err, "Failed to add role 'admin' -> 'anonymous'")
		}
	}
	log.Info("Policy seeding complete.")
}
