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
	"fmt"
	"reflect"
	"testing"

	"github.com/pkg/errors"

	"laptudirm.com/x/sweep/pkg/bridge"
	"laptudirm.com/x/sweep/pkg/protocol"
)

// simulatorSpy records candidates and answers them with simulateFn.
type simulatorSpy struct {
	budget     int
	candidates []protocol.Shot
	simulateFn func(protocol.Shot) (protocol.GameState, error)
}

func (spy *simulatorSpy) Simulate(_ context.Context, candidate protocol.Shot) (protocol.GameState, error) {
	if len(spy.candidates) >= spy.budget {
		return protocol.GameState{}, bridge.ErrSimulationLimit
	}

	spy.candidates = append(spy.candidates, candidate)
	return spy.simulateFn(candidate)
}

func mustState(t *testing.T, str string) protocol.GameState {
	t.Helper()

	state, err := protocol.ParseGameState([]byte(str))
	if err != nil {
		t.Fatalf("parse state: %v", err)
	}

	return state
}

// curlingState is a state with one stone of each team in play, team0's
// stone being the given distance above the tee.
func curlingState(t *testing.T, shot int, distance float64) protocol.GameState {
	return mustState(t, fmt.Sprintf(`{
		"end": 0, "shot": %d, "hammer": "team1",
		"stones": {
			"team0": [{"position": {"x": 0, "y": %g}, "angle": 0}],
			"team1": [{"position": {"x": 0, "y": 38.905}, "angle": 0}]
		},
		"scores": {"team0": [null], "team1": [null]}
	}`, shot, 38.405+distance))
}

func TestFixed(t *testing.T) {
	state := mustState(t, `{"score":0}`)
	spy := &simulatorSpy{
		budget: 10,
		simulateFn: func(protocol.Shot) (protocol.GameState, error) {
			return state, nil
		},
	}

	shot, err := NewFixed().Decide(context.Background(), state, spy)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	if len(spy.candidates) != 3 {
		t.Fatalf("simulated %d times, want 3", len(spy.candidates))
	}

	for _, candidate := range spy.candidates {
		if candidate.Rotation != protocol.CW || !candidate.State.Equal(state) {
			t.Errorf("unexpected candidate %+v", candidate)
		}
	}

	if want := (protocol.Shot{X: 0.1, Y: 2.5, Rotation: protocol.CCW}); !reflect.DeepEqual(shot, want) {
		t.Errorf("decided %+v, want %+v", shot, want)
	}
}

func TestFixedStopsAtLimit(t *testing.T) {
	spy := &simulatorSpy{
		budget: 1,
		simulateFn: func(protocol.Shot) (protocol.GameState, error) {
			return protocol.GameState{}, nil
		},
	}

	shot, err := NewFixed().Decide(context.Background(), mustState(t, `{}`), spy)
	if err != nil || shot.Rotation != protocol.CCW {
		t.Fatalf("decide: %+v, %v", shot, err)
	}
}

func TestFixedPassesGameOver(t *testing.T) {
	spy := &simulatorSpy{
		budget: 10,
		simulateFn: func(protocol.Shot) (protocol.GameState, error) {
			return protocol.GameState{}, protocol.ErrGameOver
		},
	}

	if _, err := NewFixed().Decide(context.Background(), mustState(t, `{}`), spy); !errors.Is(err, protocol.ErrGameOver) {
		t.Fatalf("decide returned %v, want game over", err)
	}
}

func TestSearchPicksBestCandidate(t *testing.T) {
	// team0 is to play shot 2; the candidate with X = 0.1 puts its stone
	// on the tee, every other candidate leaves it behind team1's stone.
	state := curlingState(t, 2, 2)
	good := curlingState(t, 3, 0)
	bad := curlingState(t, 3, 1)

	spy := &simulatorSpy{
		budget: 64,
		simulateFn: func(candidate protocol.Shot) (protocol.GameState, error) {
			if candidate.X == 0.1 && candidate.Rotation == protocol.CCW {
				return good, nil
			}
			return bad, nil
		},
	}

	candidates := DefaultCandidates()
	shot, err := NewSearch(candidates).Decide(context.Background(), state, spy)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	if len(spy.candidates) != len(candidates) {
		t.Errorf("simulated %d candidates, want %d", len(spy.candidates), len(candidates))
	}

	if shot.X != 0.1 || shot.Rotation != protocol.CCW || !shot.State.IsZero() {
		t.Errorf("decided %+v", shot)
	}
}

func TestSearchStopsAtLimit(t *testing.T) {
	state := curlingState(t, 0, 0)
	spy := &simulatorSpy{
		budget: 4,
		simulateFn: func(protocol.Shot) (protocol.GameState, error) {
			return state, nil
		},
	}

	shot, err := NewSearch(DefaultCandidates()).Decide(context.Background(), state, spy)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	if len(spy.candidates) != 4 {
		t.Errorf("simulated %d candidates, want 4", len(spy.candidates))
	}

	if first := DefaultCandidates()[0]; shot != first {
		t.Errorf("decided %+v, want the first candidate %+v", shot, first)
	}
}

func TestSearchWithOpaqueState(t *testing.T) {
	spy := &simulatorSpy{budget: 64}

	shot, err := NewSearch(DefaultCandidates()).Decide(context.Background(), mustState(t, `{"score":0}`), spy)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}

	if len(spy.candidates) != 0 || shot != DefaultCandidates()[0] {
		t.Fatalf("decided %+v after %d simulations", shot, len(spy.candidates))
	}
}

func TestNew(t *testing.T) {
	if names := Names(); !reflect.DeepEqual(names, []string{"fixed", "search"}) {
		t.Fatalf("names: %v", names)
	}

	policy, err := New("fixed", Options{Rounds: 5})
	if err != nil {
		t.Fatalf("new fixed: %v", err)
	}

	if fixed, ok := policy.(*Fixed); !ok || fixed.Rounds != 5 {
		t.Fatalf("new fixed: %#v", policy)
	}

	if policy, err := New("", Options{}); err != nil {
		t.Fatalf("new default: %v", err)
	} else if _, ok := policy.(*Search); !ok {
		t.Fatalf("default policy is %T", policy)
	}

	if _, err := New("random", Options{}); err == nil {
		t.Fatalf("new random did not fail")
	}
}
