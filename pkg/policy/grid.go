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

import "laptudirm.com/x/sweep/pkg/protocol"

// Grid returns a candidate for every combination of the given velocity
// components and both rotations.
func Grid(xs, ys []float64) []protocol.Shot {
	shots := make([]protocol.Shot, 0, 2*len(xs)*len(ys))
	for _, rotation := range [...]protocol.Rotation{protocol.CW, protocol.CCW} {
		for _, y := range ys {
			for _, x := range xs {
				shots = append(shots, protocol.Shot{X: x, Y: y, Rotation: rotation})
			}
		}
	}

	return shots
}

// DefaultCandidates covers draws into the house and light takeouts. It
// stays well inside the default simulation budget.
func DefaultCandidates() []protocol.Shot {
	return Grid(
		[]float64{-0.2, -0.1, 0, 0.1, 0.2},
		[]float64{2.4, 2.5, 2.6},
	)
}
