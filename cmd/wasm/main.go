//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"shiftdash/pkg/engine"
	"shiftdash/pkg/report"
	"shiftdash/pkg/schema"
)

// NOTE: The page loads exactly one WASM instance; every build runs in it.
// buildSeq makes superseding explicit: each call gets a higher sequence and
// the JS side keeps only the highest it has seen, so a double-clicked build
// button cannot render a stale result over a newer one.

var buildSeq uint64

// buildAll handles the shiftdashBuildAll JS function call.
// args[0] = array of file names (strings)
// args[1] = array of Uint8Array file contents, same order as args[0]
// args[2] = string (settings JSON, may be empty)
// args[3] = string (target date, may be empty)
// Returns: BuildResult JSON, or {"error": ...} JSON on failure.
func buildAll(this js.Value, args []js.Value) interface{} {
	if len(args) < 4 {
		errJSON, _ := json.Marshal(map[string]string{"error": "buildAll requires 4 arguments: names, buffers, settingsJSON, targetDate"})
		return string(errJSON)
	}

	names := args[0]
	buffers := args[1]
	if names.Length() != buffers.Length() {
		errJSON, _ := json.Marshal(map[string]string{"error": "names and buffers must have the same length"})
		return string(errJSON)
	}

	inputs := make([]engine.Input, 0, names.Length())
	for i := 0; i < names.Length(); i++ {
		buf := buffers.Index(i)
		data := make([]byte, buf.Get("length").Int())
		js.CopyBytesToGo(data, buf)
		inputs = append(inputs, engine.ParseInput(names.Index(i).String(), data))
	}

	settings := schema.ParseSettings([]byte(args[2].String()))
	targetDate := args[3].String()

	buildSeq++
	result, err := report.BuildAll(inputs, settings, targetDate, report.Options{BuildSeq: buildSeq})
	if err != nil {
		return report.EncodeError(err)
	}
	return report.Encode(result)
}

// classifyFiles handles the shiftdashClassify JS function call. The upload
// UI calls it to label each picked file before the user hits build.
// args[0] = array of file names, args[1] = array of Uint8Array contents.
// Returns: JSON array of {name, kind, rows}.
func classifyFiles(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		errJSON, _ := json.Marshal(map[string]string{"error": "classify requires 2 arguments: names, buffers"})
		return string(errJSON)
	}

	names := args[0]
	buffers := args[1]
	type label struct {
		Name string          `json:"name"`
		Kind schema.FileKind `json:"kind"`
		Rows int             `json:"rows"`
	}
	labels := make([]label, 0, names.Length())
	for i := 0; i < names.Length() && i < buffers.Length(); i++ {
		buf := buffers.Index(i)
		data := make([]byte, buf.Get("length").Int())
		js.CopyBytesToGo(data, buf)
		in := engine.ParseInput(names.Index(i).String(), data)
		labels = append(labels, label{Name: in.Name, Kind: in.Kind, Rows: len(in.Records)})
	}

	data, err := json.Marshal(labels)
	if err != nil {
		return `[]`
	}
	return string(data)
}

func main() {
	js.Global().Set("shiftdashBuildAll", js.FuncOf(buildAll))
	js.Global().Set("shiftdashClassify", js.FuncOf(classifyFiles))

	// Keep the WASM instance alive for JS calls.
	select {}
}
