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

// Package policy contains the decision procedures which pick the shots
// played by a bridge session.
package policy

import (
	"fmt"
	"sort"

	"laptudirm.com/x/sweep/pkg/bridge"
)

// Options configure a policy created by New.
type Options struct {
	// Rounds is the number of simulations the fixed policy runs.
	Rounds int
}

type constructor func(Options) bridge.Policy

var policies = map[string]constructor{
	"fixed": func(options Options) bridge.Policy {
		fixed := NewFixed()
		if options.Rounds > 0 {
			fixed.Rounds = options.Rounds
		}
		return fixed
	},

	"search": func(Options) bridge.Policy {
		return NewSearch(DefaultCandidates())
	},
}

// New returns the named policy. The empty name is the search policy.
func New(name string, options Options) (bridge.Policy, error) {
	if name == "" {
		name = "search"
	}

	fn, found := policies[name]
	if !found {
		return nil, fmt.Errorf("new policy: invalid policy %s", name)
	}

	return fn(options), nil
}

// Names lists the available policies in order.
func Names() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
