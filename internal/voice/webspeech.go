//go:build js
// +build js

package voice

import (
	"context"
	"errors"

	"github.com/gopherjs/gopherjs/js"
)

// WebSpeech drives the browser SpeechRecognition API.
type WebSpeech struct {
	rec     *js.Object
	results chan Transcript
}

// NewWebSpeech returns nil when the browser lacks speech recognition, which
// NewController treats as unavailable.
func NewWebSpeech(lang string) Recognizer {
	ctor := js.Global.Get("SpeechRecognition")
	if ctor == js.Undefined || ctor == nil {
		ctor = js.Global.Get("webkitSpeechRecognition")
	}
	if ctor == js.Undefined || ctor == nil {
		return nil
	}

	w := &WebSpeech{
		rec:     ctor.New(),
		results: make(chan Transcript, 8),
	}
	w.rec.Set("continuous", false)
	w.rec.Set("interimResults", false)
	w.rec.Set("lang", lang)

	w.rec.Set("onresult", func(e *js.Object) {
		text := e.Get("results").Index(0).Index(0).Get("transcript").String()
		w.emit(Transcript{Text: text})
	})
	w.rec.Set("onerror", func(e *js.Object) {
		code := e.Get("error").String()
		if code == "no-speech" {
			w.emit(Transcript{Err: ErrNoSpeech})
			return
		}
		w.emit(Transcript{Err: errors.New(code)})
	})
	// onend also fires after nomatch and after a stop with nothing heard.
	w.rec.Set("onend", func(*js.Object) {
		w.emit(Transcript{Ended: true})
	})
	return w
}

func (w *WebSpeech) emit(t Transcript) {
	select {
	case w.results <- t:
	default:
	}
}

func (w *WebSpeech) Start(ctx context.Context) (err error) {
	defer func() {
		// start() throws InvalidStateError when already running.
		if r := recover(); r != nil {
			err = nil
		}
	}()
	w.rec.Call("start")
	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			w.Stop()
		}()
	}
	return nil
}

func (w *WebSpeech) Stop() { w.rec.Call("stop") }

func (w *WebSpeech) Results() <-chan Transcript { return w.results }
