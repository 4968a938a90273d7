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
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type EngineConfig struct {
	Name string `yaml:"name"`
	Cmd  string `yaml:"cmd"`
	Dir  string `yaml:"dir"`
	Arg  string `yaml:"arg"`

	// Host and Port of the game server the engine connects to on its
	// own. They are passed as the engine's last two arguments.
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// Stderr is a file to redirect the engine's standard error to.
	Stderr string `yaml:"stderr"`
}

// Args returns the command line arguments of the engine.
func (config EngineConfig) Args() ([]string, error) {
	if config.Port <= 0 || config.Port > 65535 {
		return nil, errors.Errorf("engine %s: invalid port %d", config.Name, config.Port)
	}

	host := config.Host
	if host == "" {
		host = DefaultHost
	}

	return append(strings.Fields(config.Arg), host, strconv.Itoa(config.Port)), nil
}

// Engine is a running engine process.
type Engine struct {
	config EngineConfig

	*exec.Cmd

	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr *os.File
}

// Start launches the engine process with its standard streams piped.
func Start(config EngineConfig) (*Engine, error) {
	if config.Cmd == "" {
		return nil, errors.Errorf("engine %s: no command", config.Name)
	}

	args, err := config.Args()
	if err != nil {
		return nil, err
	}

	var engine Engine
	engine.config = config
	engine.Cmd = exec.Command(config.Cmd, args...)
	engine.Cmd.Dir = config.Dir

	if engine.stdin, err = engine.Cmd.StdinPipe(); err != nil {
		return nil, errors.Wrap(err, "engine: stdin")
	}

	if engine.stdout, err = engine.Cmd.StdoutPipe(); err != nil {
		return nil, errors.Wrap(err, "engine: stdout")
	}

	if config.Stderr != "" {
		engine.stderr, err = os.Create(config.Stderr)
		if err != nil {
			return nil, errors.Wrap(err, "engine: stderr")
		}

		engine.Cmd.Stderr = engine.stderr
	}

	logrus.Debugf("\x1b[34m%s\x1b[0m %s", config.Cmd, strings.Join(args, " "))
	if err := engine.Cmd.Start(); err != nil {
		engine.closeStderr()
		return nil, errors.Wrapf(err, "engine %s", config.Name)
	}

	return &engine, nil
}

func (engine *Engine) Name() string {
	return engine.config.Name
}

// Stdin is the engine's standard input. Closing it closes the pipe.
func (engine *Engine) Stdin() io.WriteCloser {
	return engine.stdin
}

// Stdout is the engine's standard output.
func (engine *Engine) Stdout() io.Reader {
	return engine.stdout
}

// Kill closes the engine's input and kills it.
func (engine *Engine) Kill() error {
	_ = engine.stdin.Close()
	defer engine.closeStderr()

	if err := engine.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}

	// Reap the process; its exit status after a kill is meaningless.
	_ = engine.Cmd.Wait()
	return nil
}

func (engine *Engine) closeStderr() {
	if engine.stderr != nil {
		_ = engine.stderr.Close()
	}
}
