package prism

import (
	"embed"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files so hosts running the
// bun storage provider can apply the module schema with their own migrator.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
