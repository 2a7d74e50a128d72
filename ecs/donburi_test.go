package ecs

import (
	"testing"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"

	"github.com/phanxgames/strata"
	"github.com/phanxgames/strata/raster"
)

func newCanvas(t *testing.T) (*strata.Canvas, *strata.BasicSurface) {
	t.Helper()
	s := strata.NewBasicSurface(raster.New(100, 100), 100, 100)
	t.Cleanup(strata.ClearCache)
	return strata.For(s), s
}

func TestAttachMirrorsLayers(t *testing.T) {
	c, _ := newCanvas(t)
	world := donburi.NewWorld()
	existing := c.AddLayer(strata.Patch{"type": "rectangle", "name": "existing"})

	b := Attach(c, world)
	added := c.AddLayer(strata.Patch{"type": "arc", "name": "added"})
	if b.Len() != 2 {
		t.Fatalf("mirrored %d layers, want 2", b.Len())
	}

	e, ok := b.Entity(added)
	if !ok {
		t.Fatal("added layer has no entity")
	}
	ref := LayerComponent.Get(world.Entry(e))
	if ref.Layer != added {
		t.Errorf("entity points at %v, want the added layer", ref.Layer)
	}

	c.RemoveLayer(existing)
	if _, ok := b.Entity(existing); ok {
		t.Error("removed layer still has an entity")
	}
	if b.Len() != 1 {
		t.Errorf("mirrored %d layers, want 1", b.Len())
	}
}

func TestAttachPublishesEvents(t *testing.T) {
	c, s := newCanvas(t)
	world := donburi.NewWorld()
	b := Attach(c, world, strata.EventClick, strata.EventRemove)

	var received []LayerEvent
	LayerEventType.Subscribe(world, func(w donburi.World, e LayerEvent) {
		received = append(received, e)
	})

	l := c.AddLayer(strata.Patch{
		"type": "rectangle", "name": "button", "x": 50, "y": 50, "width": 20, "height": 20,
		strata.EventClick: func(*strata.Event) {},
	})
	want, _ := b.Entity(l)

	s.InjectClick(50, 50)
	s.FlushInjected()
	c.RemoveLayer(l)

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents", len(received))
	}
	LayerEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d: %+v", len(received), received)
	}
	click := received[0]
	if click.Type != strata.EventClick || click.Name != "button" || click.Entity != want {
		t.Errorf("click event = %+v", click)
	}
	if click.X != 50 || click.Y != 50 {
		t.Errorf("click position = (%v, %v)", click.X, click.Y)
	}
	if received[1].Type != strata.EventRemove || received[1].LayerID != l.ID() {
		t.Errorf("remove event = %+v", received[1])
	}
}

func TestMultipleSubscribers(t *testing.T) {
	c, _ := newCanvas(t)
	world := donburi.NewWorld()
	Attach(c, world, strata.EventAdd)

	var count1, count2 int
	LayerEventType.Subscribe(world, func(w donburi.World, e LayerEvent) { count1++ })
	LayerEventType.Subscribe(world, func(w donburi.World, e LayerEvent) { count2++ })

	c.AddLayer(strata.Patch{"type": "rectangle"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
