// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Type represents the type of event
type Type string

// Sound cue event types
const (
	PlayerShot         Type = "player_shot"
	ActorShot          Type = "actor_shot"
	VehicleShot        Type = "vehicle_shot"
	BombDropped        Type = "bomb_dropped"
	VehicleBombDropped Type = "vehicle_bomb_dropped"
	Explosion          Type = "explosion"
	CrateHit           Type = "crate_hit"
	MissileLaunched    Type = "missile_launched"
	MissileImpact      Type = "missile_impact"
)

// Game lifecycle event types
const (
	ActorEliminated   Type = "actor_eliminated"
	VehicleEliminated Type = "vehicle_eliminated"
	GameOver          Type = "game_over"
	GameReset         Type = "game_reset"
)

// SoundTypes lists every event type that carries a sound cue
func SoundTypes() []Type {
	return []Type{
		PlayerShot, ActorShot, VehicleShot,
		BombDropped, VehicleBombDropped,
		Explosion, CrateHit,
		MissileLaunched, MissileImpact,
	}
}

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type registration struct {
	id      uint64
	handler Handler
}

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID: id,
		Cancel: func() {
			b.unsubscribe(eventType, id)
		},
	}
}

// unsubscribe removes a handler by subscription id
func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.handlers[eventType]
	for i, reg := range handlers {
		if reg.id == id {
			b.handlers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers synchronously
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, reg := range handlers {
		reg.handler(event)
	}
}

// Specific event implementations

// SoundEvent is a one-shot cue with an optional emitter position used for
// attenuation and panning by the listener.
type SoundEvent struct {
	BaseEvent
	Position    mgl64.Vec3
	HasPosition bool
}

// NewSoundEvent creates a positioned sound cue
func NewSoundEvent(eventType Type, source interface{}, position mgl64.Vec3) *SoundEvent {
	return &SoundEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Position:    position,
		HasPosition: true,
	}
}

// NewAmbientSoundEvent creates a sound cue heard at full volume everywhere
func NewAmbientSoundEvent(eventType Type, source interface{}) *SoundEvent {
	return &SoundEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
	}
}

// EliminationEvent reports an actor or vehicle removed from play
type EliminationEvent struct {
	BaseEvent
	Slot     int
	Faction  string
	Position mgl64.Vec3
}

// NewEliminationEvent creates an elimination event
func NewEliminationEvent(eventType Type, source interface{}, slot int, faction string, position mgl64.Vec3) *EliminationEvent {
	return &EliminationEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Slot:     slot,
		Faction:  faction,
		Position: position,
	}
}
