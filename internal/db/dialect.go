package db

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Dialect names reported by the supported drivers.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// DialectName returns the active database dialect name.
func DialectName(conn *gorm.DB) string {
	if conn == nil || conn.Dialector == nil {
		return ""
	}
	return conn.Dialector.Name()
}

// IsSQLite reports whether the connection uses SQLite.
func IsSQLite(conn *gorm.DB) bool {
	return DialectName(conn) == DialectSQLite
}

// ContainsFilter returns a case-insensitive "column contains term" condition
// with its bind value. SQLite has no ILIKE, so both sides are lower-cased there.
func ContainsFilter(conn *gorm.DB, column, term string) (string, string) {
	pattern := "%" + likeEscaper.Replace(term) + "%"
	if IsSQLite(conn) {
		return fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, column), strings.ToLower(pattern)
	}
	return fmt.Sprintf(`%s ILIKE ? ESCAPE '\'`, column), pattern
}
