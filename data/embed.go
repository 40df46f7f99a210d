// Package data embeds the bundled level files.
package data

import "embed"

// DefaultLevel is the level loaded when no path is configured.
const DefaultLevel = "cave.json"

//go:embed *.json
var levelFS embed.FS

// FS returns the embedded filesystem containing the bundled levels.
func FS() embed.FS {
	return levelFS
}
