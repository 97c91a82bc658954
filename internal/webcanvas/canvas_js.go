//go:build js
// +build js

package webcanvas

import (
	"fmt"
	"math"

	"github.com/gopherjs/gopherjs/js"

	"github.com/jominkmathew/neonfolio/internal/effects"
	"github.com/jominkmathew/neonfolio/internal/particle"
)

// Surface draws a field onto a canvas 2D context.
type Surface struct {
	Canvas *js.Object
	Ctx    *js.Object
}

var _ particle.Surface = (*Surface)(nil)

// Lookup returns the surface for the canvas element with id, or nil when
// the element is missing.
func Lookup(id string) *Surface {
	el := js.Global.Get("document").Call("getElementById", id)
	if el == nil || el == js.Undefined {
		return nil
	}
	return &Surface{Canvas: el, Ctx: el.Call("getContext", "2d")}
}

// Size is the drawing buffer size.
func (s *Surface) Size() (float64, float64) {
	return s.Canvas.Get("width").Float(), s.Canvas.Get("height").Float()
}

// FitWindow sizes the buffer to the viewport.
func (s *Surface) FitWindow() (float64, float64) {
	s.Canvas.Set("width", js.Global.Get("innerWidth").Int())
	s.Canvas.Set("height", js.Global.Get("innerHeight").Int())
	return s.Size()
}

// FitParent sizes the buffer to the element's parent box.
func (s *Surface) FitParent() (float64, float64) {
	parent := s.Canvas.Get("parentElement")
	if parent == nil || parent == js.Undefined {
		return s.FitWindow()
	}
	s.Canvas.Set("width", parent.Get("offsetWidth").Int())
	s.Canvas.Set("height", parent.Get("offsetHeight").Int())
	return s.Size()
}

func (s *Surface) Clear() {
	w, h := s.Size()
	s.Ctx.Call("clearRect", 0, 0, w, h)
}

func (s *Surface) Circle(x, y, r float64, c particle.Color) {
	s.Ctx.Call("beginPath")
	s.Ctx.Call("arc", x, y, r, 0, 2*math.Pi)
	s.Ctx.Set("fillStyle", CSS(c))
	s.Ctx.Call("fill")
}

func (s *Surface) Line(x0, y0, x1, y1 float64, c particle.Color) {
	s.Ctx.Call("beginPath")
	s.Ctx.Call("moveTo", x0, y0)
	s.Ctx.Call("lineTo", x1, y1)
	s.Ctx.Set("strokeStyle", CSS(c))
	s.Ctx.Set("lineWidth", 0.5)
	s.Ctx.Call("stroke")
}

// Local converts viewport coordinates to canvas coordinates.
func (s *Surface) Local(clientX, clientY float64) (float64, float64) {
	rect := s.Canvas.Call("getBoundingClientRect")
	return clientX - rect.Get("left").Float(), clientY - rect.Get("top").Float()
}

// Loop runs a function on every animation frame until stopped.
type Loop struct {
	frame   func(ts float64)
	id      int
	stopped bool
}

// Start schedules frame on requestAnimationFrame.
func Start(frame func(ts float64)) *Loop {
	l := &Loop{frame: frame}
	l.id = js.Global.Call("requestAnimationFrame", l.tick).Int()
	return l
}

func (l *Loop) tick(ts float64) {
	if l.stopped {
		return
	}
	l.id = js.Global.Call("requestAnimationFrame", l.tick).Int()
	l.frame(ts)
}

// Stop cancels the pending frame. No frame runs after Stop returns.
func (l *Loop) Stop() {
	l.stopped = true
	js.Global.Call("cancelAnimationFrame", l.id)
}

// Pointer forwards mouse movement to a field in the coordinates of s.
// mousemove on the window drives PointerMove; leaving the target element
// parks the pointer.
func Pointer(s *Surface, target *js.Object, f *particle.Field) {
	js.Global.Call("addEventListener", "mousemove", func(e *js.Object) {
		x, y := s.Local(e.Get("clientX").Float(), e.Get("clientY").Float())
		f.PointerMove(x, y)
	})
	if target == nil || target == js.Undefined {
		target = js.Global.Get("document")
	}
	target.Call("addEventListener", "mouseleave", func(*js.Object) {
		f.PointerLeave()
	})
}

// OnResize registers fn for window resizes.
func OnResize(fn func()) {
	js.Global.Call("addEventListener", "resize", func(*js.Object) { fn() })
}

// Magnetic makes every element matching selector lean towards the pointer.
// Touch devices are left alone.
func Magnetic(selector string) {
	if js.Global.Get("ontouchstart") != js.Undefined || js.Global.Get("navigator").Get("maxTouchPoints").Int() > 0 {
		return
	}
	els := js.Global.Get("document").Call("querySelectorAll", selector)
	for i := 0; i < els.Length(); i++ {
		el := els.Index(i)
		el.Call("addEventListener", "mousemove", func(e *js.Object) {
			rect := el.Call("getBoundingClientRect")
			dx, dy := effects.MagnetOffset(e.Get("clientX").Float(), e.Get("clientY").Float(),
				rect.Get("left").Float(), rect.Get("top").Float(), rect.Get("width").Float(), rect.Get("height").Float())
			el.Get("style").Set("transform", fmt.Sprintf("translate(%.1fpx, %.1fpx)", dx, dy))
		})
		el.Call("addEventListener", "mouseleave", func(*js.Object) {
			el.Get("style").Set("transform", "translate(0, 0)")
		})
	}
}
