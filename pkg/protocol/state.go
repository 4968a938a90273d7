// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package protocol

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// GameState is an engine game state as a compact JSON object. The bridge
// never looks inside it; it is stored as a string so copies of a GameState
// can never alias each other or the buffers it was read from.
type GameState struct {
	raw string
}

// ParseGameState validates and compacts the given JSON object.
func ParseGameState(data []byte) (GameState, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return GameState{}, errors.New("game state is not a json object")
	}

	var buffer bytes.Buffer
	if err := json.Compact(&buffer, data); err != nil {
		return GameState{}, errors.Wrap(err, "game state")
	}

	return GameState{raw: buffer.String()}, nil
}

// NewGameState marshals v into a GameState.
func NewGameState(v any) (GameState, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return GameState{}, errors.Wrap(err, "game state")
	}

	return ParseGameState(data)
}

// IsZero reports whether the state is absent.
func (state GameState) IsZero() bool {
	return state.raw == ""
}

// JSON returns the compact JSON text of the state, or "null" if it is absent.
func (state GameState) JSON() string {
	if state.IsZero() {
		return "null"
	}

	return state.raw
}

// Bytes returns a fresh copy of the state's JSON text.
func (state GameState) Bytes() []byte {
	return []byte(state.JSON())
}

// Decode unmarshals the state into v.
func (state GameState) Decode(v any) error {
	return json.Unmarshal(state.Bytes(), v)
}

// Map decodes the state into a generic mapping. The returned map is owned
// by the caller.
func (state GameState) Map() (map[string]any, error) {
	var m map[string]any
	if err := state.Decode(&m); err != nil {
		return nil, err
	}

	return m, nil
}

// Equal reports whether both states have the same compact JSON text.
func (state GameState) Equal(other GameState) bool {
	return state.raw == other.raw
}

func (state GameState) String() string {
	return state.JSON()
}

func (state GameState) MarshalJSON() ([]byte, error) {
	return state.Bytes(), nil
}

func (state *GameState) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*state = GameState{}
		return nil
	}

	parsed, err := ParseGameState(data)
	if err != nil {
		return err
	}

	*state = parsed
	return nil
}
