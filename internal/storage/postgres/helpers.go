package postgres

import (
	"fmt"
	"strings"
)

// buildApplicationListQuery constructs the SQL query for listing
// applications based on filters.
func buildApplicationListQuery(baseQuery string, conditions []string, args *[]interface{}, reqOffset, reqLimit int) string {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(baseQuery)

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC") // Default ordering

	// Add LIMIT and OFFSET
	*args = append(*args, reqLimit)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	*args = append(*args, reqOffset)
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))

	return queryBuilder.String()
}

// buildApplicationCountQuery constructs the total-count query for the same
// filter conditions.
func buildApplicationCountQuery(conditions []string) string {
	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT COUNT(*) FROM applications")

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	return queryBuilder.String()
}
