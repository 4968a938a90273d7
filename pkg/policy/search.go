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

package policy

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/sweep/pkg/bridge"
	"laptudirm.com/x/sweep/pkg/curling"
	"laptudirm.com/x/sweep/pkg/protocol"
)

// Evaluator scores the state reached after a simulated shot from the
// point of view of the team which played it. Higher is better.
type Evaluator func(state curling.State, team curling.Team) float64

// HouseEvaluator values the game score first and the house second.
func HouseEvaluator(state curling.State, team curling.Team) float64 {
	return 10*float64(state.Lead(team)) + float64(state.House(team))
}

// Search simulates every candidate from the prompt's state and plays the
// one whose result evaluates best. Ties keep the earlier candidate.
type Search struct {
	Candidates []protocol.Shot
	Evaluate   Evaluator
}

func NewSearch(candidates []protocol.Shot) *Search {
	return &Search{
		Candidates: candidates,
		Evaluate:   HouseEvaluator,
	}
}

func (search *Search) Decide(ctx context.Context, state protocol.GameState, sim bridge.Simulator) (protocol.Shot, error) {
	if len(search.Candidates) == 0 {
		return protocol.Shot{}, errors.New("search: no candidates")
	}

	best := search.Candidates[0].Real()

	current, err := curling.FromGameState(state)
	if err != nil {
		logrus.Warnf("search: %v, playing first candidate", err)
		return best, nil
	}

	team := current.NextTeam()
	bestScore := math.Inf(-1)

	for i, candidate := range search.Candidates {
		candidate.State = state

		result, err := sim.Simulate(ctx, candidate)
		if errors.Is(err, bridge.ErrSimulationLimit) {
			logrus.Debugf("search: simulation limit after %d candidates", i)
			break
		}

		if err != nil {
			return protocol.Shot{}, err
		}

		after, err := curling.FromGameState(result)
		if err != nil {
			return protocol.Shot{}, errors.Wrap(err, "search: simulation result")
		}

		if score := search.Evaluate(after, team); score > bestScore {
			best, bestScore = candidate.Real(), score
		}
	}

	logrus.Debugf("search: %s for %s scores %g", best, team, bestScore)
	return best, nil
}
