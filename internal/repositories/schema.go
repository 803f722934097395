package repositories

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// loadSchema reads sql/<name>.sql from the embedded filesystem and strips comments.
func loadSchema(name string) (string, error) {
	content, err := schemaFiles.ReadFile(path.Join("sql", name+".sql"))
	if err != nil {
		return "", fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	ddl := strings.TrimSpace(removeComments(string(content)))
	if ddl == "" {
		return "", fmt.Errorf("schema %s is empty", name)
	}
	return ddl, nil
}

// removeComments removes SQL comments from a statement.
func removeComments(sql string) string {
	lines := strings.Split(sql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
