// Package schemas embeds the JSON Schema documents shipped with the console.
package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.schema.json
var files embed.FS

// JobPayload is the schema name of the job create/update body.
const JobPayload = "job_payload.schema.json"

// Load returns the content of the named schema.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not embedded: %w", name, err)
	}
	return string(data), nil
}
