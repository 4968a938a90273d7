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

package engine

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 10000
)

// ParseAddress splits a host:port address. A bare port uses DefaultHost
// and an address without a port uses DefaultPort.
func ParseAddress(address string) (string, int, error) {
	if address == "" {
		return DefaultHost, DefaultPort, nil
	}

	if port, err := strconv.Atoi(address); err == nil {
		return DefaultHost, port, checkPort(port)
	}

	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		// No port in the address, only a host.
		return address, DefaultPort, nil
	}

	if host == "" {
		host = DefaultHost
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", 0, errors.Errorf("parse address: invalid port %q", portStr)
	}

	return host, port, checkPort(port)
}

func checkPort(port int) error {
	if port <= 0 || port > 65535 {
		return errors.Errorf("parse address: port %d out of range", port)
	}

	return nil
}
