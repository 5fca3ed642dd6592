package config

import "github.com/younwookim/gardengun/internal/ecs"

// GameConfig is the root config for game.yaml
type GameConfig struct {
	Display    DisplayConfig          `yaml:"display"`
	Physics    PhysicsConfig          `yaml:"physics"`
	Player     ActorConfig            `yaml:"player"`
	Goblin     ActorConfig            `yaml:"goblin"`
	Shooting   ShootingConfig         `yaml:"shooting"`
	Ammunition AmmunitionConfig       `yaml:"ammunition"`
	Planting   PlantingConfig         `yaml:"planting"`
	Camera     CameraConfig           `yaml:"camera"`
	Models     map[string]ModelConfig `yaml:"models"`
}

type DisplayConfig struct {
	ScreenWidth   int     `yaml:"screenWidth"`
	ScreenHeight  int     `yaml:"screenHeight"`
	Scale         int     `yaml:"scale"`
	TPS           int     `yaml:"tps"`
	PixelsPerUnit float64 `yaml:"pixelsPerUnit"`
}

// DT returns the fixed frame duration in seconds
func (d DisplayConfig) DT() float64 {
	if d.TPS <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(d.TPS)
}

type PhysicsConfig struct {
	Gravity float64 `yaml:"gravity"` // units/s²
}

// ActorConfig configures a platformer-controlled character
type ActorConfig struct {
	Model       string           `yaml:"model"`
	Platformer  PlatformerConfig `yaml:"platformer"`
	HalfWidth   float64          `yaml:"halfWidth"`
	InitialClip string           `yaml:"initialClip,omitempty"`
}

type PlatformerConfig struct {
	FullSpeed       float64 `yaml:"fullSpeed"`
	FullJumpHeight  float64 `yaml:"fullJumpHeight"`
	FloatHeight     float64 `yaml:"floatHeight"`
	Acceleration    float64 `yaml:"acceleration"`
	AirAcceleration float64 `yaml:"airAcceleration"`
	CoyoteTime      float64 `yaml:"coyoteTime"`
}

// ToComponent converts to the ECS component
func (p PlatformerConfig) ToComponent() ecs.PlatformerConfig {
	return ecs.PlatformerConfig{
		FullSpeed:       p.FullSpeed,
		FullJumpHeight:  p.FullJumpHeight,
		FloatHeight:     p.FloatHeight,
		Acceleration:    p.Acceleration,
		AirAcceleration: p.AirAcceleration,
		CoyoteTime:      p.CoyoteTime,
	}
}

type ShootingConfig struct {
	Cooldown      float64 `yaml:"cooldown"`      // seconds
	BulletSpeed   float64 `yaml:"bulletSpeed"`   // units/s
	BulletTimeout float64 `yaml:"bulletTimeout"` // seconds
	BulletRadius  float64 `yaml:"bulletRadius"`
}

type AmmunitionConfig struct {
	CarryOffset   ecs.Vec3 `yaml:"carryOffset"`
	CarryScale    float64  `yaml:"carryScale"`
	ShrinkPerShot float64  `yaml:"shrinkPerShot"`
	EjectSpeed    float64  `yaml:"ejectSpeed"`
	EjectLift     float64  `yaml:"ejectLift"`
	EjectSpin     float64  `yaml:"ejectSpin"`
	PickupScale   float64  `yaml:"pickupScale"`
	PickupSpin    float64  `yaml:"pickupSpin"` // radians/s
}

type PlantingConfig struct {
	GrowRate     float64  `yaml:"growRate"` // scale units/s
	InitialScale float64  `yaml:"initialScale"`
	SpawnOffset  float64  `yaml:"spawnOffset"`
	HalfExtents  ecs.Vec2 `yaml:"halfExtents"`
}

type CameraConfig struct {
	CameraAt  PursuitConfig `yaml:"cameraAt"`
	LookingAt PursuitConfig `yaml:"lookingAt"`
	Offset    ecs.Vec3      `yaml:"offset"`
}

// PursuitConfig tunes one second-order pursuit point
type PursuitConfig struct {
	StopAtRange      float64 `yaml:"stopAtRange"`
	Acceleration     float64 `yaml:"acceleration"`
	StopAcceleration float64 `yaml:"stopAcceleration"`
	MaxVelocity      float64 `yaml:"maxVelocity"`
}

// ModelConfig lists what a model file would contain: named animation players
// and named clips with their durations in seconds
type ModelConfig struct {
	Players []string           `yaml:"players"`
	Clips   map[string]float64 `yaml:"clips"`
}

// Owner builds the clip half of an AnimationsOwner. Players are filled in when
// the player entities are spawned.
func (m ModelConfig) Owner() ecs.AnimationsOwner {
	owner := ecs.NewAnimationsOwner()
	for name, duration := range m.Clips {
		owner.Clips[name] = ecs.Clip{Name: name, Duration: duration}
	}
	return owner
}
