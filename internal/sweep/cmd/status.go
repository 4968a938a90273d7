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

package cmd

import (
	"github.com/pkg/errors"

	"laptudirm.com/x/sweep/pkg/protocol"
)

// Process exit statuses.
const (
	StatusOK            = 0
	StatusFailure       = 1
	StatusProtocolError = 2
	StatusStreamClosed  = 3
	StatusEncodingError = 4
)

// ExitStatus maps an error returned by a command to the status sweep
// exits with. A finished game is a success whatever its outcome.
func ExitStatus(err error) int {
	var protocolErr *protocol.ProtocolError
	var encodingErr *protocol.EncodingError

	switch {
	case err == nil:
		return StatusOK
	case errors.As(err, &protocolErr):
		return StatusProtocolError
	case errors.Is(err, protocol.ErrStreamClosed):
		return StatusStreamClosed
	case errors.As(err, &encodingErr):
		return StatusEncodingError
	default:
		return StatusFailure
	}
}
