package repository

import "strings"

// orderClause maps a user-supplied sort key onto a whitelisted column and
// direction. Unknown keys fall back to the default clause so user input
// never reaches the SQL text directly.
func orderClause(allowed map[string]string, sortBy, sortOrder, fallback string) string {
	column, ok := allowed[sortBy]
	if !ok {
		return fallback
	}
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	return column + " " + direction
}
