package world

import (
	"context"
	"fmt"
	"io/fs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/cavetactics/internal/entity"
	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/grid"
	"github.com/samdwyer/cavetactics/internal/telemetry"
)

// Layer order in a level file.
const (
	LayerGround = iota
	LayerWalls
	LayerProps
	LayerMobs
	LayerItems
	LayerTop
	LayerCollision
	layerCount
)

// LevelFile is the on-disk level format: a tile-map export with one
// row-major data array per layer.
type LevelFile struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Layers []LayerFile `json:"layers"`
}

// LayerFile is one layer of a level file.
type LayerFile struct {
	Name string `json:"name"`
	Data []int  `json:"data"`
}

// LoadLevel reads and validates a level file. On any error no level is returned.
func LoadLevel(ctx context.Context, fsys fs.FS, name string, reg *gamedata.ActorRegistry) (*Level, error) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.load")
	defer span.End()
	span.SetAttributes(attribute.String("level.name", name))

	file, err := gamedata.LoadFS[LevelFile](fsys, name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: %w", ErrInvalidLevelData, err)
	}

	lvl, err := ParseLevel(file, reg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("level %s: %w", name, err)
	}

	span.SetAttributes(
		attribute.Int("level.width", lvl.Width),
		attribute.Int("level.height", lvl.Height),
		attribute.Int("level.enemies", len(lvl.Enemies)),
		attribute.Int("level.items", len(lvl.Items)),
	)
	return lvl, nil
}

// ParseLevel validates a decoded level file and builds a Level from it.
func ParseLevel(file LevelFile, reg *gamedata.ActorRegistry) (*Level, error) {
	w, h := file.Width, file.Height
	if w < 1 || h < 1 || w > MaxDimension || h > MaxDimension {
		return nil, fmt.Errorf("%w: dimensions %dx%d outside 1..%d", ErrInvalidLevelData, w, h, MaxDimension)
	}
	if len(file.Layers) < layerCount {
		return nil, fmt.Errorf("%w: %d layers, want %d", ErrInvalidLevelData, len(file.Layers), layerCount)
	}
	for i, layer := range file.Layers[:layerCount] {
		if len(layer.Data) != w*h {
			return nil, fmt.Errorf("%w: layer %d has %d cells, want %d", ErrInvalidLevelData, i, len(layer.Data), w*h)
		}
	}

	layers := file.Layers
	lvl := newLevel(w, h)
	havePlayer := false

	for i := 0; i < w*h; i++ {
		pos := grid.Tile{X: i % w, Y: i / w}
		for l := 0; l < layerCount; l++ {
			if layers[l].Data[i] < 0 {
				return nil, fmt.Errorf("%w: negative value in layer %d at %v", ErrInvalidLevelData, l, pos)
			}
		}

		collides := layers[LayerCollision].Data[i] > 0
		lvl.Collision[i] = collides
		switch {
		case layers[LayerWalls].Data[i] > 0:
			lvl.Tiles[i] = TileWall
		case layers[LayerProps].Data[i] > 0:
			lvl.Tiles[i] = TileProp
		case collides:
			lvl.Tiles[i] = TileWall
		default:
			lvl.Tiles[i] = TileFloor
		}

		if def := reg.GetBySprite(layers[LayerMobs].Data[i]); def != nil {
			if def.Player {
				if havePlayer {
					return nil, fmt.Errorf("%w: second player start at %v", ErrInvalidLevelData, pos)
				}
				havePlayer = true
				lvl.Player = Spawn{Def: def, Pos: pos}
			} else {
				if len(lvl.Enemies) >= MaxMobs {
					return nil, fmt.Errorf("%w: more than %d mobs: %w", ErrInvalidLevelData, MaxMobs, entity.ErrCapacityExceeded)
				}
				lvl.Enemies = append(lvl.Enemies, Spawn{Def: def, Pos: pos})
			}
		}

		if sprite := layers[LayerItems].Data[i]; sprite > 0 {
			if len(lvl.Items) >= MaxItems {
				return nil, fmt.Errorf("%w: more than %d items: %w", ErrInvalidLevelData, MaxItems, entity.ErrCapacityExceeded)
			}
			lvl.Items = append(lvl.Items, Item{Sprite: sprite, Pos: pos})
		}
	}

	if !havePlayer {
		return nil, fmt.Errorf("%w: no player start", ErrInvalidLevelData)
	}
	return lvl, nil
}
