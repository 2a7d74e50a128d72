// Package ecs bridges strata layer events into a [Donburi] world.
//
// [Attach] installs canvas hooks that publish every requested layer event
// as a [LayerEvent] and keep one entity per live layer, carrying a
// [LayerRef] component. Subscribe to [LayerEventType] in your systems to
// receive the events.
//
// Usage:
//
//	bridge := ecs.Attach(canvas, world, strata.EventClick, strata.EventDragStop)
//	ecs.LayerEventType.Subscribe(world, onLayerEvent)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
