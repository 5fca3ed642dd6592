package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/ecs"
	"github.com/younwookim/gardengun/internal/infrastructure/config"
	"github.com/younwookim/gardengun/internal/infrastructure/logging"
)

const testDT = 1.0 / 60

func createTestGameConfig() *config.GameConfig {
	actor := func(model string, floatHeight float64) config.ActorConfig {
		return config.ActorConfig{
			Model:     model,
			HalfWidth: 0.5,
			Platformer: config.PlatformerConfig{
				FullSpeed:       12,
				FullJumpHeight:  4,
				FloatHeight:     floatHeight,
				Acceleration:    40,
				AirAcceleration: 20,
				CoyoteTime:      0.15,
			},
		}
	}
	goblin := actor("Goblin", 1.2)
	goblin.InitialClip = "Dance"

	return &config.GameConfig{
		Display: config.DisplayConfig{ScreenWidth: 800, ScreenHeight: 600, Scale: 1, TPS: 60, PixelsPerUnit: 32},
		Physics: config.PhysicsConfig{Gravity: 30},
		Player:  actor("Player", 1.5),
		Goblin:  goblin,
		Shooting: config.ShootingConfig{
			Cooldown:      1,
			BulletSpeed:   20,
			BulletTimeout: 20,
			BulletRadius:  0.2,
		},
		Ammunition: config.AmmunitionConfig{
			CarryOffset:   ecs.V3(0, 1, 1),
			CarryScale:    0.5,
			ShrinkPerShot: 0.1,
			EjectSpeed:    3,
			EjectLift:     20,
			EjectSpin:     10,
			PickupScale:   0.4,
			PickupSpin:    2,
		},
		Planting: config.PlantingConfig{
			GrowRate:     2,
			InitialScale: 0.1,
			SpawnOffset:  1,
			HalfExtents:  ecs.V2(1, 1.5),
		},
		Camera: config.CameraConfig{
			CameraAt:  config.PursuitConfig{StopAtRange: 0.5, Acceleration: 20, StopAcceleration: 40, MaxVelocity: 15},
			LookingAt: config.PursuitConfig{StopAtRange: 1, Acceleration: 30, StopAcceleration: 60, MaxVelocity: 20},
			Offset:    ecs.V3(0, 5, 10),
		},
		Models: map[string]config.ModelConfig{
			"Player": {Players: []string{ArmaturePlayer}, Clips: map[string]float64{"Idle": 2, DeathClip: 1.2}},
			"Goblin": {Players: []string{ArmaturePlayer}, Clips: map[string]float64{"Dance": 1.5, DeathClip: 1}},
			"Gate":   {Players: []string{GateOpener}, Clips: map[string]float64{OpenClip: 1}},
		},
	}
}

// testHarness bundles a world with the systems and state machine driving it
type testHarness struct {
	cfg       *config.GameConfig
	ctx       *Context
	machine   *state.Machine
	populator *Populator
	schedule  *Schedule
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	cfg := createTestGameConfig()
	machine := state.NewMachine(state.Game, logging.Discard())
	return &testHarness{
		cfg:       cfg,
		ctx:       NewContext(ecs.NewWorld(), machine, testDT, logging.Discard()),
		machine:   machine,
		populator: NewPopulator(cfg),
		schedule:  NewSchedule(cfg),
	}
}

func (h *testHarness) world() *ecs.World {
	return h.ctx.World
}

func (h *testHarness) spawn(t *testing.T, entityType string, pos ecs.Vec3) ecs.EntityID {
	t.Helper()
	id, err := h.populator.Spawn(h.world(), config.EntityConfig{Type: entityType, Position: pos}, false)
	require.NoError(t, err)
	return id
}

func (h *testHarness) spawnBlock(t *testing.T, pos ecs.Vec3, barren bool) ecs.EntityID {
	t.Helper()
	id, err := h.populator.Spawn(h.world(), config.EntityConfig{Type: config.TypeBlock, Position: pos, Barren: barren}, false)
	require.NoError(t, err)
	return id
}

// update runs the non-physics part of a frame on the given collisions
func (h *testHarness) update(collisions ...ecs.CollisionEvent) {
	h.ctx.Collisions = collisions
	h.schedule.Update(h.ctx)
}

// pickUp gives the carrier the pickable through a sensor contact
func (h *testHarness) pickUp(t *testing.T, carrier, pickable ecs.EntityID) ecs.EntityID {
	t.Helper()
	h.ctx.Collisions = []ecs.CollisionEvent{sensorContact(carrier, pickable)}
	ammo := h.schedule.Ammunition
	ammo.InitiatePickup(h.ctx)
	ammo.HandleCarrying(h.ctx)
	h.ctx.Commands.Flush()
	h.ctx.Collisions = nil

	carried := h.world().CanCarry[carrier].Carries
	require.NotZero(t, carried)
	return carried
}

func sensorContact(a, b ecs.EntityID) ecs.CollisionEvent {
	return ecs.CollisionEvent{Kind: ecs.CollisionStarted, A: a, B: b, Sensor: true}
}

func solidContact(a, b ecs.EntityID) ecs.CollisionEvent {
	return ecs.CollisionEvent{Kind: ecs.CollisionStarted, A: a, B: b}
}

func armatureOf(t *testing.T, w *ecs.World, owner ecs.EntityID, player string) ecs.AnimationPlayer {
	t.Helper()
	id, ok := w.Animations[owner].Players[player]
	require.True(t, ok, "no %s player", player)
	return w.AnimationPlayer[id]
}

func assertVec3InDelta(t *testing.T, expected, actual ecs.Vec3) {
	t.Helper()
	require.InDelta(t, expected.X, actual.X, 1e-9, "X")
	require.InDelta(t, expected.Y, actual.Y, 1e-9, "Y")
	require.InDelta(t, expected.Z, actual.Z, 1e-9, "Z")
}
