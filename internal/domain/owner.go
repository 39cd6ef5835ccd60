package domain

import (
	"os"
	"os/user"
)

// CurrentUser resolves the user owning the current process. It is evaluated
// on every call, never cached at package init.
//
// Resolution order: os/user, then $USER, then "unknown". Static binaries in
// minimal containers frequently have no passwd database.
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "unknown"
}
