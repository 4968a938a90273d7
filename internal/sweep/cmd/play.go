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
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"laptudirm.com/x/sweep/pkg/bridge"
	"laptudirm.com/x/sweep/pkg/engine"
	"laptudirm.com/x/sweep/pkg/policy"
)

const SPIN = 14

// sweep play
func Play() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play [engine]",
		Short: "Play a game through the given engine",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`play starts the given engine and plays a single game
			through it. The engine is started with the host and port
			of the game server as its last two arguments and connects
			to the server on its own; every shot is decided by sweep
			and sent over the engine's standard input.

			The engine defaults to the one named "stdio" in the
			configuration file. --cmd plays an engine which is not in
			the configuration file at all.

			Before every shot the policy may simulate candidate shots
			through the engine, up to --simulations per turn.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			name := "stdio"
			if len(args) > 0 {
				name = args[0]
			}

			engineConfig := engine.EngineConfig{Name: name, Port: engine.DefaultPort}
			if command, _ := cmd.Flags().GetString("cmd"); command != "" {
				engineConfig.Cmd = command
			} else if engineConfig, err = conf.Engine(name); err != nil {
				return err
			}

			if cmd.Flag("addr").Changed {
				addr, _ := cmd.Flags().GetString("addr")
				if engineConfig.Host, engineConfig.Port, err = engine.ParseAddress(addr); err != nil {
					return err
				}
			}

			if cmd.Flag("port").Changed {
				engineConfig.Port, _ = cmd.Flags().GetInt("port")
			}

			session := conf.Session
			if cmd.Flag("policy").Changed {
				session.Policy, _ = cmd.Flags().GetString("policy")
			}

			if cmd.Flag("simulations").Changed {
				session.MaxSimulations, _ = cmd.Flags().GetInt("simulations")
			}

			if cmd.Flag("transcript").Changed {
				session.Transcript, _ = cmd.Flags().GetString("transcript")
			}

			chooser, err := policy.New(session.Policy, policy.Options{Rounds: session.Rounds})
			if err != nil {
				return err
			}

			options := bridge.Options{
				Name:           engineConfig.Name,
				MaxSimulations: session.MaxSimulations,
				Logger:         logrus.StandardLogger(),
			}

			if session.Transcript != "" {
				transcript, err := os.Create(session.Transcript)
				if err != nil {
					return err
				}

				defer transcript.Close()
				options.Transcript = transcript
			}

			return play(engineConfig, chooser, options)
		},
	}

	cmd.Flags().String("cmd", "", "Engine command, instead of a configured engine")
	cmd.Flags().String("addr", "", "Game server address as host:port")
	cmd.Flags().IntP("port", "p", engine.DefaultPort, "Game server port")
	cmd.Flags().String("policy", "search", "Policy which decides the shots")
	cmd.Flags().IntP("simulations", "s", bridge.DefaultMaxSimulations, "Maximum simulations per turn")
	cmd.Flags().String("transcript", "", "File to record the conversation with the engine in")

	return cmd
}

func play(config engine.EngineConfig, chooser bridge.Policy, options bridge.Options) error {
	proc, err := engine.Start(config)
	if err != nil {
		return err
	}

	defer proc.Kill()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	session := bridge.NewSession(proc.Stdout(), proc.Stdin(), chooser, options)

	logrus.Infof(
		"\x1b[33mStarting\x1b[0m %s on %s:%d (session %s)",
		config.Name, config.Host, config.Port, session.ID,
	)

	// Spin until the engine connects to the server and asks for a shot.
	s := spinner.New(spinner.CharSets[SPIN], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " waiting for the engine's first turn"
	s.Start()

	finished, stopped := make(chan struct{}), make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-session.Prompted():
		case <-finished:
		}
		s.Stop()
	}()

	outcome, err := session.Run(ctx)
	close(finished)
	<-stopped

	stats := session.Stats()
	logrus.WithFields(logrus.Fields{
		"turns":       stats.Turns,
		"simulations": stats.Simulations,
		"read":        stats.LinesRead,
		"written":     stats.LinesWritten,
	}).Debug("session finished")

	if err != nil {
		return err
	}

	logrus.Infof("\x1b[32mFinished\x1b[0m %s: %s the game", config.Name, outcome)
	return nil
}
