package repository

import "strings"

// sortableColumns whitelists sort fields exposed through the API.
var sortableColumns = map[string]string{
	"createdAt":    "created_at",
	"created_at":   "created_at",
	"updatedAt":    "updated_at",
	"updated_at":   "updated_at",
	"title":        "title",
	"name":         "name",
	"level":        "level",
	"difficulty":   "difficulty",
	"passingScore": "passing_score",
	"quizCount":    "quiz_count",
	"score":        "score",
}

// orderClause turns "field:asc|desc" into a safe ORDER BY clause,
// defaulting to newest first.
func orderClause(sort string) string {
	column := "created_at"
	dir := "DESC"

	if sort != "" {
		parts := strings.SplitN(sort, ":", 2)
		if mapped, ok := sortableColumns[parts[0]]; ok {
			column = mapped
		}
		if len(parts) == 2 && strings.EqualFold(parts[1], "asc") {
			dir = "ASC"
		}
	}

	return column + " " + dir
}

func lowered(s string) string {
	return strings.ToLower(s)
}
