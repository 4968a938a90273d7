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
	"context"

	"github.com/pkg/errors"

	"laptudirm.com/x/sweep/pkg/protocol"
)

var (
	// ErrSimulationLimit is returned by Simulate once a turn has used up
	// its simulation budget. Nothing is written to the engine.
	ErrSimulationLimit = errors.New("bridge: simulation limit reached")

	// ErrHandleExpired is returned by a Simulator used after the Decide
	// call it was handed to has returned.
	ErrHandleExpired = errors.New("bridge: simulator used outside of its turn")
)

// Policy decides the shot to play from a ready engine's game state. It
// may run simulations through sim before returning, and the returned
// shot is always played as a real move.
//
// Decide runs on the session's own goroutine; nothing is read from or
// written to the engine while it runs other than through sim.
type Policy interface {
	Decide(ctx context.Context, state protocol.GameState, sim Simulator) (protocol.Shot, error)
}

// PolicyFunc adapts an ordinary function into a Policy.
type PolicyFunc func(ctx context.Context, state protocol.GameState, sim Simulator) (protocol.Shot, error)

func (fn PolicyFunc) Decide(ctx context.Context, state protocol.GameState, sim Simulator) (protocol.Shot, error) {
	return fn(ctx, state, sim)
}

// Simulator runs speculative shots against the engine.
type Simulator interface {
	// Simulate sends the candidate shot as a simulation and blocks until
	// the engine replies with the resulting state. Candidates carrying a
	// State are simulated from it, others from the engine's own state.
	//
	// ErrGameOver is returned if the engine ends the game instead; the
	// policy should give up and return it.
	Simulate(ctx context.Context, candidate protocol.Shot) (protocol.GameState, error)
}

// handle is the Simulator given to a single Decide call.
type handle struct {
	session   *Session
	remaining int
	expired   bool
}

func (h *handle) Simulate(ctx context.Context, candidate protocol.Shot) (protocol.GameState, error) {
	switch {
	case h.expired:
		return protocol.GameState{}, ErrHandleExpired
	case h.remaining <= 0:
		return protocol.GameState{}, ErrSimulationLimit
	}

	h.remaining--
	return h.session.send(ctx, candidate, protocol.ModeFor(false, candidate.State))
}
