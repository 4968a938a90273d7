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
	"io"
	"sync"
	"testing"
	"time"

	"laptudirm.com/x/sweep/pkg/protocol"
)

const testTimeout = 5 * time.Second

// fakeEngine plays the engine side of the protocol over in-memory pipes.
// It logs every line it says ("> ") and receives ("< ") in order.
type fakeEngine struct {
	t *testing.T

	stdout   *io.PipeWriter
	received chan string

	mu     sync.Mutex
	events []string
}

func newFakeEngine(t *testing.T, policy Policy, options Options) (*fakeEngine, *Session) {
	t.Helper()

	outR, outW := io.Pipe()
	inR, inW := io.Pipe()

	engine := &fakeEngine{
		t:        t,
		stdout:   outW,
		received: make(chan string, 16),
	}

	go func() {
		defer close(engine.received)

		scanner := bufio.NewScanner(inR)
		for scanner.Scan() {
			engine.log("< " + scanner.Text())
			engine.received <- scanner.Text()
		}
	}()

	t.Cleanup(func() {
		_ = outR.Close()
		_ = outW.Close()
		_ = inR.Close()
	})

	return engine, NewSession(outR, inW, policy, options)
}

func (engine *fakeEngine) log(event string) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.events = append(engine.events, event)
}

func (engine *fakeEngine) say(line string) {
	engine.log("> " + line)
	_, _ = io.WriteString(engine.stdout, line+"\n")
}

func (engine *fakeEngine) expect() string {
	engine.t.Helper()

	select {
	case line, ok := <-engine.received:
		if !ok {
			engine.t.Errorf("engine input closed while expecting a line")
		}
		return line
	case <-time.After(testTimeout):
		engine.t.Errorf("timed out waiting for a line from the bridge")
		return ""
	}
}

// silent checks that nothing more is written and that the input is closed.
func (engine *fakeEngine) silent() {
	engine.t.Helper()

	select {
	case line, ok := <-engine.received:
		if ok {
			engine.t.Errorf("unexpected line from the bridge: %q", line)
		}
	case <-time.After(testTimeout):
		engine.t.Errorf("engine input was not closed")
	}
}

func (engine *fakeEngine) close() {
	_ = engine.stdout.Close()
}

func (engine *fakeEngine) history() []string {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return append([]string(nil), engine.events...)
}

type result struct {
	outcome protocol.Outcome
	err     error
}

func start(ctx context.Context, session *Session) <-chan result {
	done := make(chan result, 1)
	go func() {
		outcome, err := session.Run(ctx)
		done <- result{outcome, err}
	}()
	return done
}

func wait(t *testing.T, done <-chan result) result {
	t.Helper()

	select {
	case res := <-done:
		return res
	case <-time.After(testTimeout):
		t.Fatalf("session did not finish")
		return result{}
	}
}

// shotPolicy always plays the same shot without simulating.
func shotPolicy(shot protocol.Shot) Policy {
	return PolicyFunc(func(context.Context, protocol.GameState, Simulator) (protocol.Shot, error) {
		return shot, nil
	})
}

var draw = protocol.Shot{X: 0.1, Y: 2.5, Rotation: protocol.CCW}
