// Package strata is a retained-mode layer engine for 2D drawing contexts
// shaped like the HTML canvas API.
//
// A [Canvas] keeps an ordered list of [Layer] values for one [Surface].
// Each layer is a bag of properties (position, size, style, handlers)
// plus a draw routine picked by its type. Every redraw clears the surface
// and paints the layers bottom to top, re-running hit tests against the
// last known pointer position so handlers fire for whatever is on top.
//
// # Quick start
//
//	surface := strata.NewBasicSurface(ctx, 640, 480)
//	c := strata.For(surface)
//	c.AddLayer(strata.Patch{
//		"type": "rectangle", "name": "box",
//		"x": 100, "y": 100, "width": 80, "height": 40,
//		"fillStyle": "#36c", "draggable": true,
//		strata.EventClick: func(e *strata.Event) {
//			e.Canvas.AnimateLayer(e.Layer, strata.Patch{"rotate": "+=90"},
//				strata.AnimateOptions{Duration: 300 * time.Millisecond})
//		},
//	})
//	c.DrawLayers(strata.DrawOptions{})
//
// The host drives the canvas: it forwards pointer input to
// [BasicSurface.Dispatch] and calls [Canvas.Tick] once per frame. The
// ebitenhost package does both for an Ebitengine window, and webcanvas
// does it for a browser canvas element.
//
// # Addressing layers
//
// Operations take a [LayerID] ([Index], [Name], [Pattern] or a *Layer)
// or a [GroupID] ([Group], [Pattern] or [GroupList]). Unknown ids are a
// no-op.
//
// # Masks and transforms
//
// A layer with "mask" set clips every later layer until a "restore"
// layer pops it. Canvas-level [Canvas.RotateCanvas], [Canvas.ScaleCanvas]
// and [Canvas.TranslateCanvas] push onto a save stack that hit testing
// mirrors, so rotated and scaled layers receive the right events.
//
// # Images
//
// Image layers whose source is still loading suspend the redraw pass. The
// pass resumes from the next layer when the image arrives, and the layer's
// "load" handler fires once. See the imageload package for decoding files,
// URLs and data URLs.
//
// # Extending
//
// [Config.Extend] returns a copy of a configuration with extra layer types
// and properties. The base configuration is never changed.
package strata
