// Package schema holds table and column names of the news database, so SQL
// built in repositories never repeats raw identifiers.
package schema

func qualify(alias string, columns ...string) []string {
	if alias == "" {
		return columns
	}
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return qualified
}
