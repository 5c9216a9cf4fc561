//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/inamate/focusframe/internal/engine"
	"github.com/inamate/focusframe/internal/scene"
	"github.com/inamate/focusframe/internal/transition"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine(transition.DefaultOptions())

	// Create the engine API object
	focusEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	focusEngine.Set("setFrame", js.FuncOf(setFrame))
	focusEngine.Set("loadSampleFrame", js.FuncOf(loadSampleFrame))
	focusEngine.Set("setDebug", js.FuncOf(setDebug))
	focusEngine.Set("setTransition", js.FuncOf(setTransition))
	focusEngine.Set("tick", js.FuncOf(tick))
	focusEngine.Set("reset", js.FuncOf(reset))

	// --- Queries (frontend ← backend) ---
	focusEngine.Set("render", js.FuncOf(render))
	focusEngine.Set("getViewport", js.FuncOf(getViewport))
	focusEngine.Set("getFrame", js.FuncOf(getFrame))
	focusEngine.Set("isAnimating", js.FuncOf(isAnimating))
	focusEngine.Set("computeFocus", js.FuncOf(computeFocus))

	// Register on global scope
	js.Global().Set("focusEngine", focusEngine)

	// Signal that WASM is ready
	js.Global().Set("focusWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func setFrame(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing frame JSON"})
	}

	if err := eng.LoadFrame(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleFrame(this js.Value, args []js.Value) interface{} {
	eng.SetFrame(scene.NewSampleFrame())
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setDebug(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetDebug(args[0].Truthy())
	return nil
}

// setTransition(durationMillis, easing)
func setTransition(this js.Value, args []js.Value) interface{} {
	opts := transition.DefaultOptions()
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		opts.Duration = time.Duration(args[0].Float() * float64(time.Millisecond))
	}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		opts.Easing, _ = transition.ParseEasing(args[1].String())
	}
	eng.SetOptions(opts)
	return nil
}

// tick(nowMillis) runs one frame of the pipeline and returns the result JSON.
// nowMillis is the requestAnimationFrame timestamp.
func tick(this js.Value, args []js.Value) interface{} {
	now := time.Now()
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		now = time.UnixMicro(int64(args[0].Float() * 1000))
	}
	return js.ValueOf(eng.TickJSON(now))
}

func reset(this js.Value, args []js.Value) interface{} {
	eng.Reset()
	return nil
}

// --- Query Handlers ---

// render(width, height) returns the draw commands JSON.
func render(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("[]")
	}
	return js.ValueOf(eng.Render(args[0].Float(), args[1].Float()))
}

func getViewport(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetViewport())
}

func getFrame(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetFrame())
}

func isAnimating(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.IsAnimating())
}

func computeFocus(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing frame JSON"})
	}

	result, err := engine.ComputeFocus(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	data, _ := json.Marshal(result)
	return js.ValueOf(string(data))
}
