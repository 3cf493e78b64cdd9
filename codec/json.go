package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec. Use it when snapshot files must be
// readable or writable by other tooling; the documents it produces are plain
// JSON objects with stable field names.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for newly-created snapshots. Existing files are
// self-describing and are opened by selecting the codec recorded in their
// header, so changing Default never invalidates them.
var Default Codec = GoJSON{}
