package ecs

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/strata"
)

// LayerEvent is a strata layer event as seen by ECS systems.
type LayerEvent struct {
	Type    string
	LayerID string
	Name    string
	Entity  donburi.Entity
	X, Y    float64
	Arg     any
}

// LayerEventType is the Donburi event type layer events are published to.
var LayerEventType = events.NewEventType[LayerEvent]()

// LayerRef links an entity to the strata layer it mirrors.
type LayerRef struct {
	Layer *strata.Layer
}

// LayerComponent is attached to every entity created by a [Bridge].
var LayerComponent = donburi.NewComponentType[LayerRef]()

// Bridge keeps a Donburi world in step with one canvas's layers.
type Bridge struct {
	world    donburi.World
	entities map[string]donburi.Entity
}

// Attach installs hooks on c that mirror its layers as entities and publish
// the listed event types to [LayerEventType]. Layers already on the canvas
// get entities immediately.
func Attach(c *strata.Canvas, world donburi.World, types ...string) *Bridge {
	b := &Bridge{world: world, entities: make(map[string]donburi.Entity)}
	for _, l := range c.Layers(nil) {
		b.track(l)
	}
	c.SetEventHooks(b.Hooks(types...))
	return b
}

// Hooks returns the canvas hooks a bridge runs on. "add" and "remove" are
// always present so entities follow the layer list.
func (b *Bridge) Hooks(types ...string) strata.Hooks {
	publish := make(map[string]bool, len(types))
	for _, t := range types {
		publish[t] = true
	}
	h := strata.Hooks{
		strata.EventAdd: func(e *strata.Event) {
			b.track(e.Layer)
			if publish[strata.EventAdd] {
				b.publish(e)
			}
		},
		strata.EventRemove: func(e *strata.Event) {
			if publish[strata.EventRemove] {
				b.publish(e)
			}
			b.untrack(e.Layer)
		},
	}
	for t := range publish {
		if t == strata.EventAdd || t == strata.EventRemove {
			continue
		}
		h[t] = b.publish
	}
	return h
}

// Entity returns the entity mirroring l.
func (b *Bridge) Entity(l *strata.Layer) (donburi.Entity, bool) {
	if l == nil {
		return donburi.Null, false
	}
	e, ok := b.entities[l.ID()]
	return e, ok && b.world.Valid(e)
}

// Len returns the number of mirrored layers.
func (b *Bridge) Len() int { return len(b.entities) }

func (b *Bridge) track(l *strata.Layer) {
	if l == nil {
		return
	}
	if _, ok := b.entities[l.ID()]; ok {
		return
	}
	e := b.world.Create(LayerComponent)
	LayerComponent.SetValue(b.world.Entry(e), LayerRef{Layer: l})
	b.entities[l.ID()] = e
}

func (b *Bridge) untrack(l *strata.Layer) {
	if l == nil {
		return
	}
	if e, ok := b.entities[l.ID()]; ok {
		if b.world.Valid(e) {
			b.world.Remove(e)
		}
		delete(b.entities, l.ID())
	}
}

func (b *Bridge) publish(e *strata.Event) {
	ev := LayerEvent{Type: e.Type, X: e.X, Y: e.Y, Arg: e.Arg}
	if e.Layer != nil {
		ev.LayerID = e.Layer.ID()
		ev.Name = e.Layer.Name
		ev.Entity, _ = b.Entity(e.Layer)
	}
	LayerEventType.Publish(b.world, ev)
}
