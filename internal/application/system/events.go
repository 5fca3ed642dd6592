// Package system holds the gameplay systems. Each runs once per frame in the
// order fixed by Schedule, reading the frame's collisions and draining the
// event queues it owns.
package system

import (
	"github.com/charmbracelet/log"

	"github.com/younwookim/gardengun/internal/application/state"
	"github.com/younwookim/gardengun/internal/ecs"
)

// PickEvent is raised when a picker touches a pickable
type PickEvent struct {
	Picker   ecs.EntityID
	Pickable ecs.EntityID
}

// UseUpShotEvent consumes one shot of carried ammunition
type UseUpShotEvent struct {
	Carrier           ecs.EntityID
	CarriedAmmunition ecs.EntityID
	EjectDirection    ecs.Vec3
}

// KillEvent asks the killing system to kill an entity
type KillEvent struct {
	EntityToKill ecs.EntityID
}

// ShootEvent is a shoot intent from the player controls
type ShootEvent struct {
	Shooter   ecs.EntityID
	Direction ecs.Vec3
}

// Events are the gameplay queues, each drained once per frame by its handler
type Events struct {
	Pick  ecs.Events[PickEvent]
	UseUp ecs.Events[UseUpShotEvent]
	Kill  ecs.Events[KillEvent]
	Shoot ecs.Events[ShootEvent]
}

// Clear drops everything still queued (level reload)
func (e *Events) Clear() {
	e.Pick.Clear()
	e.UseUp.Clear()
	e.Kill.Clear()
	e.Shoot.Clear()
}

// StateRequester is the part of the state machine systems may use
type StateRequester interface {
	Current() state.AppState
	Request(next state.AppState)
}

// Context is what a system sees during one frame
type Context struct {
	World      *ecs.World
	Commands   *ecs.Commands
	Events     *Events
	Collisions []ecs.CollisionEvent
	State      StateRequester
	DT         float64
	Logger     *log.Logger
}

// NewContext binds a world to fresh queues and a command buffer
func NewContext(w *ecs.World, sr StateRequester, dt float64, logger *log.Logger) *Context {
	return &Context{
		World:    w,
		Commands: ecs.NewCommands(w),
		Events:   &Events{},
		State:    sr,
		DT:       dt,
		Logger:   logger,
	}
}
