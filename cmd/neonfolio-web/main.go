//go:build js
// +build js

package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/gopherjs/gopherjs/js"

	"github.com/jominkmathew/neonfolio/internal/config"
	"github.com/jominkmathew/neonfolio/internal/contact"
	"github.com/jominkmathew/neonfolio/internal/particle"
	"github.com/jominkmathew/neonfolio/internal/voice"
	"github.com/jominkmathew/neonfolio/internal/webcanvas"
)

type field struct {
	f   *particle.Field
	fit func() (float64, float64)
}

func main() {
	cfg := config.DefaultConfig()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	doc := js.Global.Get("document")

	var fields []field
	add := func(id string, pc particle.Config, window bool, leave *js.Object) {
		s := webcanvas.Lookup(id)
		if s == nil {
			log.Printf("canvas #%s missing, field disabled", id)
			return
		}
		f, err := particle.New(pc, rng)
		if err != nil {
			log.Printf("%s: %v", id, err)
			return
		}
		fit := s.FitParent
		if window {
			fit = s.FitWindow
		}
		w, h := fit()
		f.Initialize(s, w, h)
		webcanvas.Pointer(s, leave, f)
		fields = append(fields, field{f: f, fit: fit})
	}
	add("particleCanvas", cfg.Particles.Network, true, nil)
	add("nameCanvas", cfg.Particles.Name, false, doc.Call("getElementById", "hero"))
	add("cursorCanvas", cfg.Particles.Trail, true, nil)

	webcanvas.OnResize(func() {
		for _, fd := range fields {
			fd.f.Resize(fd.fit())
		}
	})

	loop := webcanvas.Start(func(float64) {
		for _, fd := range fields {
			if fd.f.Running() {
				fd.f.Step()
				fd.f.Render()
			}
		}
	})

	webcanvas.Magnetic(".btn, .social-link")
	bindVoice(doc)
	bindContact(doc, cfg)

	js.Global.Set("Neonfolio", map[string]interface{}{
		"stop": func() {
			loop.Stop()
			for _, fd := range fields {
				fd.f.Stop()
			}
		},
	})
	select {}
}

func bindVoice(doc *js.Object) {
	btn := doc.Call("getElementById", "voiceBtn")
	out := doc.Call("getElementById", "voiceFeedback")
	if btn == nil || btn == js.Undefined {
		return
	}
	ctl := voice.NewController(voice.NewWebSpeech("en-US"))
	if !ctl.Available() {
		btn.Get("style").Set("display", "none")
		return
	}

	show := func(fb voice.Feedback) {
		if out == nil || out == js.Undefined {
			return
		}
		out.Set("textContent", fb.Text)
		out.Get("classList").Call("add", "show")
		time.AfterFunc(fb.Duration, func() { out.Get("classList").Call("remove", "show") })
	}

	// Sole reader of the recognizer stream for the page's lifetime.
	go func() {
		for t := range ctl.Results() {
			fb, ok := ctl.Handle(t)
			btn.Get("classList").Call("remove", "listening")
			if !ok {
				continue
			}
			show(fb)
			if fb.Section != "" {
				section := fb.Section
				time.AfterFunc(voice.ScrollDelay, func() {
					el := doc.Call("getElementById", section)
					if el != nil && el != js.Undefined {
						el.Call("scrollIntoView", map[string]interface{}{"behavior": "smooth"})
					}
				})
			}
		}
	}()

	btn.Call("addEventListener", "click", func(*js.Object) {
		fb, err := ctl.Toggle(context.Background())
		if err != nil {
			log.Printf("voice: %v", err)
			return
		}
		if !ctl.Listening() {
			btn.Get("classList").Call("remove", "listening")
			return
		}
		btn.Get("classList").Call("add", "listening")
		show(fb)
	})
}

func bindContact(doc *js.Object, cfg *config.Config) {
	formEl := doc.Call("getElementById", "contactForm")
	if formEl == nil || formEl == js.Undefined {
		return
	}
	btn := formEl.Call("querySelector", "button[type=submit]")
	status := doc.Call("getElementById", "formStatus")
	form := contact.NewForm(cfg.Mailer())

	value := func(name string) string {
		el := formEl.Call("querySelector", "[name="+name+"]")
		if el == nil || el == js.Undefined {
			return ""
		}
		return el.Get("value").String()
	}
	render := func() {
		if btn != nil && btn != js.Undefined {
			btn.Set("textContent", form.ButtonLabel())
			btn.Set("disabled", !form.ButtonEnabled())
		}
		if status != nil && status != js.Undefined {
			status.Set("textContent", form.Status())
			status.Set("className", "form-status "+form.State().String())
		}
	}

	formEl.Call("addEventListener", "submit", func(e *js.Object) {
		e.Call("preventDefault")
		form.Fields = contact.Message{
			Name:    value("name"),
			Email:   value("email"),
			Subject: value("subject"),
			Body:    value("message"),
		}
		msg, err := form.Submit()
		if err != nil {
			log.Printf("contact: %v", err)
			return
		}
		render()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.SendTimeout())
			err := form.Transmit(ctx, msg)
			cancel()
			form.Complete(err, time.Now())
			if err == nil {
				formEl.Call("reset")
			}
			render()
			time.AfterFunc(contact.ResetDelay, func() {
				form.Expire(time.Now())
				render()
			})
		}()
	})
}
