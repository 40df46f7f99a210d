package gamedata

import "github.com/gdamore/tcell/v2"

// ActorDef defines the starting stats of a player or enemy type.
type ActorDef struct {
	ID          string  `json:"id"`          // Unique identifier (e.g., "orc")
	Name        string  `json:"name"`        // Display name
	Glyph       string  `json:"glyph"`       // Single character for rendering
	Color       string  `json:"color"`       // Hex color code (e.g., "#3CB043")
	Sprite      int     `json:"sprite"`      // Value marking this actor in a level's mob layer
	Player      bool    `json:"player"`      // True for the player character
	HP          int     `json:"hp"`          // Starting hit points
	Defense     int     `json:"defense"`     // Attack roll needed to hit
	MaxMove     float64 `json:"maxMove"`     // Per-turn movement budget
	SpawnWeight int     `json:"spawnWeight"` // Relative frequency in generated levels
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *ActorDef) GlyphRune() rune {
	for _, r := range d.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color, white if it does not parse.
func (d *ActorDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// ActorsFile represents the structure of actors.json.
type ActorsFile struct {
	Actors []ActorDef `json:"actors"`
}

// LoadActors loads actor definitions from the embedded actors.json file.
func LoadActors() ([]ActorDef, error) {
	file, err := Load[ActorsFile]("actors.json")
	if err != nil {
		return nil, err
	}
	return file.Actors, nil
}
