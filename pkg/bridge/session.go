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
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/sweep/pkg/protocol"
)

// DefaultMaxSimulations is the per-turn simulation budget used when
// Options.MaxSimulations is not set.
const DefaultMaxSimulations = 64

type Options struct {
	// Name of the engine, used in log lines.
	Name string

	// MaxSimulations caps the simulations a policy may run per turn.
	MaxSimulations int

	// Transcript receives every line read from and written to the engine.
	Transcript io.Writer

	Logger *logrus.Logger
}

// Stats are counters about a session.
type Stats struct {
	Turns        int64
	Simulations  int64
	LinesRead    int64
	LinesWritten int64
}

type stats struct {
	turns, simulations, read, written atomic.Int64
}

// incoming is a line decoded by the reader goroutine.
type incoming struct {
	msg protocol.Message
	err error
}

// Session is a single conversation with an engine: it reads the engine's
// output, hands every prompt to its policy and writes the decided shots
// back. A Session is not reusable.
type Session struct {
	ID uuid.UUID

	options Options
	policy  Policy
	log     *logrus.Entry

	reader io.Reader
	output io.Writer
	turn   controller

	lines chan incoming
	done  chan struct{}
	err   error

	outcome protocol.Outcome

	prompted   chan struct{}
	promptOnce sync.Once

	started atomic.Bool
	stats   stats
}

// NewSession creates a session which reads engine output from r and
// writes shot lines to w. If w is an io.Closer it is closed when the
// session ends.
func NewSession(r io.Reader, w io.Writer, policy Policy, options Options) *Session {
	if options.MaxSimulations <= 0 {
		options.MaxSimulations = DefaultMaxSimulations
	}

	if options.Name == "" {
		options.Name = "engine"
	}

	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	id := uuid.New()
	log := logger.WithFields(logrus.Fields{
		"session": id.String()[:8],
		"engine":  options.Name,
	})

	return &Session{
		ID: id,

		options: options,
		policy:  policy,
		log:     log,

		reader: r,
		output: w,
		turn:   controller{writer: bufio.NewWriter(w)},

		lines: make(chan incoming),
		done:  make(chan struct{}),

		prompted: make(chan struct{}),
	}
}

// Prompted returns a channel which is closed once the engine prompts for
// its first shot.
func (session *Session) Prompted() <-chan struct{} {
	return session.prompted
}

func (session *Session) Stats() Stats {
	return Stats{
		Turns:        session.stats.turns.Load(),
		Simulations:  session.stats.simulations.Load(),
		LinesRead:    session.stats.read.Load(),
		LinesWritten: session.stats.written.Load(),
	}
}

// Run plays the session until the engine reports the end of the game,
// returning its outcome. Any other end of the session is an error:
// *protocol.ProtocolError, *protocol.EncodingError, protocol.ErrStreamClosed,
// a policy's error or ctx's error. The engine's input is closed before Run
// returns.
func (session *Session) Run(ctx context.Context) (protocol.Outcome, error) {
	if !session.started.CompareAndSwap(false, true) {
		return 0, errors.New("bridge: session already run")
	}

	go session.read()
	defer session.shutdown()

	for {
		msg, err := session.next(ctx)
		if err != nil {
			return 0, err
		}

		switch msg.Kind {
		case protocol.GameOver:
			session.finish(msg.Outcome)
			return msg.Outcome, nil

		case protocol.ReadyForInput:
			if err := session.dispatch(ctx, msg.State); err != nil {
				if errors.Is(err, protocol.ErrGameOver) && session.turn.state == closed {
					return session.outcome, nil
				}

				return 0, err
			}

		case protocol.SimulationResult:
			return 0, &protocol.ProtocolError{
				Line:   msg.Line,
				Reason: "simulation result with no outstanding request",
			}
		}
	}
}

// dispatch hands a prompt to the policy and plays the shot it decides on.
func (session *Session) dispatch(ctx context.Context, state protocol.GameState) error {
	session.turn.prompt()
	session.promptOnce.Do(func() { close(session.prompted) })
	session.stats.turns.Add(1)

	sim := &handle{session: session, remaining: session.options.MaxSimulations}
	shot, err := session.policy.Decide(ctx, state, sim)
	sim.expired = true

	if err != nil {
		if errors.Is(err, protocol.ErrGameOver) {
			return err
		}

		return errors.Wrap(err, "policy")
	}

	if session.turn.state == closed {
		return protocol.ErrGameOver
	}

	if !shot.State.IsZero() {
		session.log.Debug("turn: dropping game state from real shot")
		shot = shot.Real()
	}

	session.log.Infof("Playing \x1b[33m%s\x1b[0m", shot)
	_, err = session.send(ctx, shot, protocol.RealShot)
	return err
}

// read is the session's reader goroutine. It decodes every engine line
// and passes it on until the output ends, a line fails to decode, the
// game ends or the session is shut down.
func (session *Session) read() {
	defer close(session.lines)

	reader := bufio.NewReader(session.reader)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			msg, decodeErr := protocol.Decode(line)
			if decodeErr != nil {
				msg.Line = strings.Trim(line, " \n\t\r")
			}

			if !session.deliver(incoming{msg: msg, err: decodeErr}) {
				return
			}

			if decodeErr != nil || msg.Kind == protocol.GameOver {
				return
			}
		}

		if err != nil {
			session.err = err
			return
		}
	}
}

func (session *Session) deliver(in incoming) bool {
	select {
	case session.lines <- in:
		return true
	case <-session.done:
		return false
	}
}

// next returns the next line read from the engine.
func (session *Session) next(ctx context.Context) (protocol.Message, error) {
	select {
	case <-ctx.Done():
		return protocol.Message{}, ctx.Err()

	case in, ok := <-session.lines:
		if !ok {
			if session.err != nil && !errors.Is(session.err, io.EOF) {
				return protocol.Message{}, errors.Wrapf(protocol.ErrStreamClosed, "%v", session.err)
			}

			return protocol.Message{}, protocol.ErrStreamClosed
		}

		session.stats.read.Add(1)
		session.record(">", in.msg.Line)
		return in.msg, in.err
	}
}

func (session *Session) write(line string) error {
	session.record("<", strings.TrimSuffix(line, "\n"))

	if _, err := session.turn.writer.WriteString(line); err != nil {
		return errors.Wrap(err, "bridge: write")
	}

	if err := session.turn.writer.Flush(); err != nil {
		return errors.Wrap(err, "bridge: write")
	}

	session.stats.written.Add(1)
	return nil
}

func (session *Session) record(direction, line string) {
	session.log.Debugf("(%s)%s %s", session.options.Name, direction, line)

	if session.options.Transcript != nil {
		fmt.Fprintf(session.options.Transcript, "%s %s\n", direction, line)
	}
}

func (session *Session) finish(outcome protocol.Outcome) {
	session.turn.state = closed
	session.outcome = outcome
}

func (session *Session) shutdown() {
	session.turn.state = closed
	close(session.done)

	if closer, ok := session.output.(io.Closer); ok {
		_ = closer.Close()
	}
}
