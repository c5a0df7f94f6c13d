package report

import (
	"encoding/json"

	"shiftdash/pkg/engine"
)

// Encode marshals a BuildResult for the JS boundary. Marshal failure cannot
// happen with well-formed results, but the boundary still degrades to an
// error JSON instead of panicking inside WASM.
func Encode(result *BuildResult) string {
	data, err := json.Marshal(result)
	if err != nil {
		return `{"error":"failed to encode build result"}`
	}
	return string(data)
}

// EncodeError marshals a build failure as the {"error": ...} JSON the JS
// side expects. Structured BuildErrors keep their kind/file/row context.
func EncodeError(err error) string {
	payload := map[string]interface{}{"error": err.Error()}
	if be, ok := err.(*engine.BuildError); ok {
		payload["error_detail"] = be
	}
	data, merr := json.Marshal(payload)
	if merr != nil {
		return `{"error":"build failed"}`
	}
	return string(data)
}
