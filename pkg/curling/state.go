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

// Package curling is a read-only view of the game states sent by digital
// curling engines. The bridge passes states through untouched; policies
// use this package when they need to look inside them.
package curling

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"

	"laptudirm.com/x/sweep/pkg/protocol"
)

// Sheet geometry, in meters.
const (
	TeeX = 0.0
	TeeY = 38.405

	HouseRadius = 1.829
	StoneRadius = 0.145

	StonesPerTeam = 8
	ShotsPerEnd   = 2 * StonesPerTeam
)

type Team string

const (
	Team0 Team = "team0"
	Team1 Team = "team1"
)

func (team Team) Opponent() Team {
	if team == Team0 {
		return Team1
	}

	return Team0
}

func (team Team) Valid() bool {
	return team == Team0 || team == Team1
}

// PerTeam holds one value for each team.
type PerTeam[T any] struct {
	Team0 T `json:"team0"`
	Team1 T `json:"team1"`
}

func (pair PerTeam[T]) Of(team Team) T {
	if team == Team1 {
		return pair.Team1
	}

	return pair.Team0
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance is the distance of the position from the tee.
func (position Position) Distance() float64 {
	return math.Hypot(position.X-TeeX, position.Y-TeeY)
}

// Stone is a stone in play. Stones which are not in play are null in
// the state and nil here.
type Stone struct {
	Position Position `json:"position"`
	Angle    float64  `json:"angle"`
}

// InHouse reports whether any part of the stone touches the house.
func (stone *Stone) InHouse() bool {
	return stone != nil && stone.Position.Distance() <= HouseRadius+StoneRadius
}

type GameResult struct {
	Winner Team   `json:"winner"`
	Reason string `json:"reason"`
}

type State struct {
	End    int  `json:"end"`
	Shot   int  `json:"shot"`
	Hammer Team `json:"hammer"`

	Stones PerTeam[[]*Stone] `json:"stones"`

	// Scores holds the score of every end, nil for ends not played yet.
	Scores        PerTeam[[]*int] `json:"scores"`
	ExtraEndScore PerTeam[*int]   `json:"extra_end_score"`

	ThinkingTimeRemaining PerTeam[float64] `json:"thinking_time_remaining"`

	GameResult *GameResult `json:"game_result"`
}

// FromGameState decodes a curling state.
func FromGameState(gameState protocol.GameState) (State, error) {
	var state State
	if err := gameState.Decode(&state); err != nil {
		return State{}, errors.Wrap(err, "curling state")
	}

	if !state.Hammer.Valid() {
		return State{}, errors.Errorf("curling state: invalid hammer %q", state.Hammer)
	}

	return state, nil
}

// NextTeam is the team which throws the next shot. The team with the
// hammer throws the odd shots of an end.
func (state State) NextTeam() Team {
	if state.Shot%2 == 1 {
		return state.Hammer
	}

	return state.Hammer.Opponent()
}

// Total is the number of points the team has scored so far.
func (state State) Total(team Team) int {
	total := 0
	for _, score := range state.Scores.Of(team) {
		if score != nil {
			total += *score
		}
	}

	if extra := state.ExtraEndScore.Of(team); extra != nil {
		total += *extra
	}

	return total
}

// Lead is the team's score minus its opponent's.
func (state State) Lead(team Team) int {
	return state.Total(team) - state.Total(team.Opponent())
}

// House is the number of points the team would score if the end finished
// now: the stones in the house closer to the tee than every opposing
// stone. It is negative when the opponent is scoring.
func (state State) House(team Team) int {
	type entry struct {
		team     Team
		distance float64
	}

	var house []entry
	for _, t := range [...]Team{Team0, Team1} {
		for _, stone := range state.Stones.Of(t) {
			if stone.InHouse() {
				house = append(house, entry{t, stone.Position.Distance()})
			}
		}
	}

	if len(house) == 0 {
		return 0
	}

	sort.Slice(house, func(i, j int) bool {
		return house[i].distance < house[j].distance
	})

	scorer, count := house[0].team, 0
	for _, e := range house {
		if e.team != scorer {
			break
		}
		count++
	}

	if scorer != team {
		return -count
	}

	return count
}

func (state State) String() string {
	return fmt.Sprintf("end %d shot %d (%s to play)", state.End, state.Shot, state.NextTeam())
}
