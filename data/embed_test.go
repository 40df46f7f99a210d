package data

import (
	"context"
	"testing"

	"github.com/samdwyer/cavetactics/internal/gamedata"
	"github.com/samdwyer/cavetactics/internal/world"
)

func TestDefaultLevelLoads(t *testing.T) {
	lvl, err := world.LoadLevel(context.Background(), FS(), DefaultLevel, gamedata.MustLoadActorRegistry())
	if err != nil {
		t.Fatalf("LoadLevel(%s) failed: %v", DefaultLevel, err)
	}
	if len(lvl.Enemies) == 0 {
		t.Error("Default level should contain enemies")
	}
	if lvl.Occupancy().IsBlocked(lvl.Player.Pos) {
		t.Errorf("Player starts on a blocked tile %v", lvl.Player.Pos)
	}
}
