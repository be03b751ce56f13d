package database

import "strings"

// BuildDatabaseURL joins a server-level connection URL with the raffle
// database name. sslmode defaults to disable when the caller did not
// choose one; an empty name means the base URL already names a database.
func BuildDatabaseURL(baseURL, databaseName string) string {
	if databaseName == "" {
		return baseURL
	}

	base := strings.TrimRight(baseURL, "/")
	query := ""
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base, query = base[:i], base[i+1:]
	}

	databaseURL := base + "/" + databaseName
	if query != "" {
		databaseURL += "?" + query
	}
	if !strings.Contains(databaseURL, "sslmode=") {
		if strings.Contains(databaseURL, "?") {
			databaseURL += "&sslmode=disable"
		} else {
			databaseURL += "?sslmode=disable"
		}
	}
	return databaseURL
}
