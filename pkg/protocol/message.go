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

import "fmt"

// Kind identifies the variant of a Message.
type Kind uint8

const (
	// Other is informational engine output which is ignored.
	Other Kind = iota

	// ReadyForInput means the engine is blocked waiting for a shot line.
	ReadyForInput

	// SimulationResult carries the state after the last simulated shot.
	SimulationResult

	// GameOver is the terminal message of a session.
	GameOver
)

func (kind Kind) String() string {
	switch kind {
	case Other:
		return "other"
	case ReadyForInput:
		return "inputwait"
	case SimulationResult:
		return "jsonoutput"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(kind))
	}
}

// Message is a decoded line of engine output. State is set for
// ReadyForInput and SimulationResult, Outcome for GameOver. Line always
// holds the trimmed raw line.
type Message struct {
	Kind Kind

	State   GameState
	Outcome Outcome

	Line string
}

// Outcome is the result of a finished game.
type Outcome int

const (
	Won  Outcome = +1
	Lost Outcome = -1
)

func (outcome Outcome) String() string {
	switch outcome {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "undecided"
	}
}
