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

package protocol

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	wonLine  = "won the game"
	lostLine = "lost the game"

	promptToken = "inputwait"
	resultToken = "jsonoutput"

	nullState = "null"
)

// Decode classifies a line of engine output. Lines with no known leading
// token decode to an Other message; a known token followed by a payload
// which isn't a JSON object is a *ProtocolError.
func Decode(line string) (Message, error) {
	line = strings.Trim(line, " \n\t\r")
	msg := Message{Kind: Other, Line: line}

	switch line {
	case wonLine:
		msg.Kind, msg.Outcome = GameOver, Won
		return msg, nil
	case lostLine:
		msg.Kind, msg.Outcome = GameOver, Lost
		return msg, nil
	}

	token, payload, _ := strings.Cut(line, " ")
	switch token {
	case promptToken:
		msg.Kind = ReadyForInput
	case resultToken:
		msg.Kind = SimulationResult
	default:
		return msg, nil
	}

	state, err := ParseGameState([]byte(payload))
	if err != nil {
		return Message{}, &ProtocolError{
			Line:   line,
			Reason: fmt.Sprintf("bad %s payload: %v", token, err),
		}
	}

	msg.State = state
	return msg, nil
}

// Encode serializes a shot into the line the engine expects, including
// the trailing newline:
//
//	<x> <y> <rotation> <mode> <json|null>
//
// Simulations from a sent state must carry one, every other mode must not.
func Encode(shot Shot, mode Mode) (string, error) {
	if math.IsNaN(shot.X) || math.IsInf(shot.X, 0) {
		return "", &EncodingError{Field: "x", Value: formatFloat(shot.X)}
	}

	if math.IsNaN(shot.Y) || math.IsInf(shot.Y, 0) {
		return "", &EncodingError{Field: "y", Value: formatFloat(shot.Y)}
	}

	if !shot.Rotation.Valid() {
		return "", &EncodingError{Field: "rotation", Value: shot.Rotation.String()}
	}

	switch mode {
	case SimulateWithState:
		if shot.State.IsZero() {
			return "", &EncodingError{Field: "state", Value: "null for " + mode.String()}
		}
	case RealShot, SimulateFromFile:
		if !shot.State.IsZero() {
			return "", &EncodingError{Field: "state", Value: "present for " + mode.String()}
		}
	default:
		return "", &EncodingError{Field: "mode", Value: mode.String()}
	}

	return fmt.Sprintf(
		"%s %s %s %s %s\n",
		formatFloat(shot.X), formatFloat(shot.Y),
		shot.Rotation, mode, shot.State.JSON(),
	), nil
}

// ParseCommand parses a line produced by Encode back into its shot and mode.
func ParseCommand(line string) (Shot, Mode, error) {
	line = strings.Trim(line, " \n\t\r")

	fail := func(reason string, a ...any) (Shot, Mode, error) {
		return Shot{}, 0, &ProtocolError{Line: line, Reason: fmt.Sprintf(reason, a...)}
	}

	// The state payload is compact JSON but may still hold spaces inside
	// strings, so only the first four fields are split off.
	fields := strings.SplitN(line, " ", 5)
	if len(fields) != 5 {
		return fail("expected 5 fields, found %d", len(fields))
	}

	var shot Shot
	var err error

	if shot.X, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return fail("bad x velocity")
	}

	if shot.Y, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return fail("bad y velocity")
	}

	if shot.Rotation, err = ParseRotation(fields[2]); err != nil {
		return fail("%v", err)
	}

	mode, err := ParseMode(fields[3])
	if err != nil {
		return fail("%v", err)
	}

	if payload := fields[4]; payload != nullState {
		if shot.State, err = ParseGameState([]byte(payload)); err != nil {
			return fail("%v", err)
		}
	}

	if (mode == SimulateWithState) == shot.State.IsZero() {
		return fail("state does not match mode %s", mode)
	}

	return shot, mode, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
