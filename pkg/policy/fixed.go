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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/sweep/pkg/bridge"
	"laptudirm.com/x/sweep/pkg/protocol"
)

// Fixed probes a fixed candidate a few times from the prompt's state and
// then plays a fixed shot, whatever the simulations showed. It is mainly
// useful to check that an engine works.
type Fixed struct {
	Rounds int

	Probe protocol.Shot
	Final protocol.Shot
}

func NewFixed() *Fixed {
	return &Fixed{
		Rounds: 3,
		Probe:  protocol.Shot{X: 0.1, Y: 2.5, Rotation: protocol.CW},
		Final:  protocol.Shot{X: 0.1, Y: 2.5, Rotation: protocol.CCW},
	}
}

func (fixed *Fixed) Decide(ctx context.Context, state protocol.GameState, sim bridge.Simulator) (protocol.Shot, error) {
	probe := fixed.Probe
	probe.State = state

	for round := 0; round < fixed.Rounds; round++ {
		result, err := sim.Simulate(ctx, probe)
		switch {
		case errors.Is(err, bridge.ErrSimulationLimit):
			return fixed.Final.Real(), nil
		case err != nil:
			return protocol.Shot{}, err
		}

		logrus.Tracef("fixed: round %d: %s", round+1, result)
	}

	return fixed.Final.Real(), nil
}
