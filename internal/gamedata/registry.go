package gamedata

import (
	"errors"
	"math/rand"
)

// Sprite values used in level mob layers.
const (
	SpritePlayer = 13
	SpriteOrc    = 21
)

// ActorRegistry holds loaded actor definitions.
type ActorRegistry struct {
	actors      []ActorDef
	totalWeight int
}

// NewActorRegistry creates a registry from loaded actor definitions.
func NewActorRegistry(actors []ActorDef) *ActorRegistry {
	totalWeight := 0
	for _, a := range actors {
		if !a.Player {
			totalWeight += a.SpawnWeight
		}
	}
	return &ActorRegistry{
		actors:      actors,
		totalWeight: totalWeight,
	}
}

// LoadActorRegistry loads and creates a registry from the embedded actors.json.
func LoadActorRegistry() (*ActorRegistry, error) {
	actors, err := LoadActors()
	if err != nil {
		return nil, err
	}
	if len(actors) == 0 {
		return nil, errors.New("no actors loaded from actors.json")
	}
	registry := NewActorRegistry(actors)
	if registry.Player() == nil {
		return nil, errors.New("actors.json has no player definition")
	}
	return registry, nil
}

// MustLoadActorRegistry loads a registry, panicking on error.
func MustLoadActorRegistry() *ActorRegistry {
	registry, err := LoadActorRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects an enemy definition by weighted probability.
// The player definition is never returned.
func (r *ActorRegistry) SpawnRandom(rng *rand.Rand) *ActorDef {
	if r.totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.actors {
		if r.actors[i].Player {
			continue
		}
		cumulative += r.actors[i].SpawnWeight
		if roll < cumulative {
			return &r.actors[i]
		}
	}
	return nil
}

// Player returns the player definition, or nil if none is loaded.
func (r *ActorRegistry) Player() *ActorDef {
	for i := range r.actors {
		if r.actors[i].Player {
			return &r.actors[i]
		}
	}
	return nil
}

// GetBySprite returns the definition placed by a level mob-layer value, or nil.
func (r *ActorRegistry) GetBySprite(sprite int) *ActorDef {
	if sprite <= 0 {
		return nil
	}
	for i := range r.actors {
		if r.actors[i].Sprite == sprite {
			return &r.actors[i]
		}
	}
	return nil
}
