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
	"fmt"
)

// Rotation is the curl direction of a shot.
type Rotation uint8

const (
	CW Rotation = iota + 1
	CCW
)

func ParseRotation(str string) (Rotation, error) {
	switch str {
	case "cw":
		return CW, nil
	case "ccw":
		return CCW, nil
	default:
		return 0, fmt.Errorf("invalid rotation %q", str)
	}
}

func (rotation Rotation) Valid() bool {
	return rotation == CW || rotation == CCW
}

func (rotation Rotation) String() string {
	switch rotation {
	case CW:
		return "cw"
	case CCW:
		return "ccw"
	default:
		return fmt.Sprintf("Rotation(%d)", uint8(rotation))
	}
}

// Mode tells the engine what to do with a shot line.
type Mode uint8

const (
	// RealShot commits the shot to the actual game.
	RealShot Mode = iota

	// SimulateWithState simulates the shot from the game state sent
	// along with it.
	SimulateWithState

	// SimulateFromFile simulates the shot from the engine's own state.
	SimulateFromFile
)

// ModeFor derives the Mode of a shot from whether it is a real move and
// whether it carries a game state.
func ModeFor(real bool, state GameState) Mode {
	switch {
	case real:
		return RealShot
	case !state.IsZero():
		return SimulateWithState
	default:
		return SimulateFromFile
	}
}

func ParseMode(str string) (Mode, error) {
	switch str {
	case "shot":
		return RealShot, nil
	case "simu":
		return SimulateWithState, nil
	case "simufile":
		return SimulateFromFile, nil
	default:
		return 0, fmt.Errorf("invalid mode %q", str)
	}
}

// IsSimulation reports whether a line in this mode expects a result.
func (mode Mode) IsSimulation() bool {
	return mode == SimulateWithState || mode == SimulateFromFile
}

func (mode Mode) String() string {
	switch mode {
	case RealShot:
		return "shot"
	case SimulateWithState:
		return "simu"
	case SimulateFromFile:
		return "simufile"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(mode))
	}
}

// Shot is a single throw: the initial velocity of the stone and its
// rotation. State is only set on simulation candidates.
type Shot struct {
	X, Y     float64
	Rotation Rotation

	State GameState
}

// Real returns a copy of the shot without a game state.
func (shot Shot) Real() Shot {
	shot.State = GameState{}
	return shot
}

func (shot Shot) String() string {
	return fmt.Sprintf("(%g, %g) %s", shot.X, shot.Y, shot.Rotation)
}
