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

	"github.com/pkg/errors"
)

var (
	// ErrStreamClosed is returned when the engine's output ends before
	// it reported the end of the game.
	ErrStreamClosed = errors.New("protocol: engine output closed before game over")

	// ErrGameOver is returned to callers which try to talk to the engine
	// after it has reported the end of the game.
	ErrGameOver = errors.New("protocol: game over")
)

// ProtocolError reports a line which does not have the shape expected of
// it at the point of the conversation it was read at.
type ProtocolError struct {
	Line   string
	Reason string
}

func (err *ProtocolError) Error() string {
	return fmt.Sprintf("protocol: %s: %q", err.Reason, err.Line)
}

// EncodingError reports a shot field which can't be sent to the engine.
type EncodingError struct {
	Field string
	Value string
}

func (err *EncodingError) Error() string {
	return fmt.Sprintf("protocol: can't encode %s %s", err.Field, err.Value)
}
