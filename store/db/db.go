// Package db selects a store.Driver implementation from the profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/showrunnerhq/showrunner/server/profile"
	"github.com/showrunnerhq/showrunner/store"
	"github.com/showrunnerhq/showrunner/store/db/mysql"
	"github.com/showrunnerhq/showrunner/store/db/postgres"
	"github.com/showrunnerhq/showrunner/store/db/sqlite"
)

// NewDriver opens the database driver named by the profile.
func NewDriver(prof *profile.Profile) (store.Driver, error) {
	switch prof.Driver {
	case "sqlite":
		return sqlite.NewDB(prof.DSN)
	case "postgres":
		return postgres.NewDB(prof.DSN)
	case "mysql":
		return mysql.NewDB(prof.DSN)
	default:
		return nil, errors.Errorf("unknown db driver %q", prof.Driver)
	}
}
