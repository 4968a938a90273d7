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

package bridge

import (
	"bufio"
	"context"
	"fmt"

	"laptudirm.com/x/sweep/pkg/protocol"
)

type turnState uint8

const (
	// idle: the engine has not prompted yet.
	idle turnState = iota

	// awaitingPrompt: a simulation exchange finished and the engine must
	// prompt again before the next line is written.
	awaitingPrompt

	// ready: a prompt has been read and not answered.
	ready

	// sent: a real shot was written and the turn is over.
	sent

	// closed: the game ended, nothing may be written any more.
	closed
)

func (state turnState) String() string {
	switch state {
	case idle:
		return "idle"
	case awaitingPrompt:
		return "awaiting-prompt"
	case ready:
		return "ready"
	case sent:
		return "sent"
	case closed:
		return "closed"
	default:
		return fmt.Sprintf("turnState(%d)", uint8(state))
	}
}

// controller is the single writer to the engine's input.
type controller struct {
	state turnState

	// first is set by every dispatched prompt and cleared by the first
	// simulation exchange after it. While it is set the prompt that
	// started the turn is still unanswered.
	first bool

	writer *bufio.Writer
}

// prompt records a prompt read by the session's main loop.
func (turn *controller) prompt() {
	turn.state = ready
	turn.first = true
}

// send writes a shot line, first waiting for a fresh prompt if the last
// one was already answered. Simulation lines block until their result.
func (session *Session) send(ctx context.Context, shot protocol.Shot, mode protocol.Mode) (protocol.GameState, error) {
	turn := &session.turn

	if turn.state == closed {
		return protocol.GameState{}, protocol.ErrGameOver
	}

	line, err := protocol.Encode(shot, mode)
	if err != nil {
		return protocol.GameState{}, err
	}

	switch turn.state {
	case ready:
	case awaitingPrompt:
		if err := session.awaitPrompt(ctx); err != nil {
			return protocol.GameState{}, err
		}
	default:
		return protocol.GameState{}, fmt.Errorf("bridge: write in %s state", turn.state)
	}

	session.log.Tracef("turn: writing %s (first: %t)", mode, turn.first)
	if err := session.write(line); err != nil {
		return protocol.GameState{}, err
	}

	turn.state = sent
	if !mode.IsSimulation() {
		return protocol.GameState{}, nil
	}

	session.stats.simulations.Add(1)
	state, err := session.awaitResult(ctx)
	if err != nil {
		return protocol.GameState{}, err
	}

	turn.state = awaitingPrompt
	turn.first = false
	return state, nil
}

func (session *Session) awaitPrompt(ctx context.Context) error {
	for {
		msg, err := session.next(ctx)
		if err != nil {
			return err
		}

		switch msg.Kind {
		case protocol.ReadyForInput:
			session.turn.state = ready
			return nil
		case protocol.SimulationResult:
			return &protocol.ProtocolError{Line: msg.Line, Reason: "simulation result with no outstanding request"}
		case protocol.GameOver:
			session.finish(msg.Outcome)
			return protocol.ErrGameOver
		}
	}
}

func (session *Session) awaitResult(ctx context.Context) (protocol.GameState, error) {
	for {
		msg, err := session.next(ctx)
		if err != nil {
			return protocol.GameState{}, err
		}

		switch msg.Kind {
		case protocol.SimulationResult:
			return msg.State, nil
		case protocol.ReadyForInput:
			return protocol.GameState{}, &protocol.ProtocolError{Line: msg.Line, Reason: "prompt while a simulation result is outstanding"}
		case protocol.GameOver:
			session.finish(msg.Outcome)
			return protocol.GameState{}, protocol.ErrGameOver
		}
	}
}
