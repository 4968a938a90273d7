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

package config

import (
	_ "embed"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/sweep/pkg/bridge"
	"laptudirm.com/x/sweep/pkg/engine"
)

const FilePermissions = 0755

//go:embed sweep.yaml
var BaseConfigFile []byte

var (
	// Directory is where sweep keeps its files.
	Directory = filepath.Join(xdg.Home, "sweep")

	// File is the default configuration file.
	File = filepath.Join(Directory, "sweep.yaml")
)

type Config struct {
	Engines map[string]engine.EngineConfig `yaml:"engines"`
	Session Session                        `yaml:"session"`
}

type Session struct {
	Policy         string `yaml:"policy"`
	MaxSimulations int    `yaml:"max-simulations"`
	Rounds         int    `yaml:"rounds"`
	Transcript     string `yaml:"transcript"`
}

// Load reads the configuration at path. The default file is created from
// BaseConfigFile if it doesn't exist yet.
func Load(path string) (*Config, error) {
	if path == File {
		TryMkdir(Directory)
		TryCreate(File, BaseConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}

	return Parse(data)
}

// Parse decodes a configuration. Engines take their names from their
// keys and missing ports default to engine.DefaultPort.
func Parse(data []byte) (*Config, error) {
	config := Config{
		Session: Session{MaxSimulations: bridge.DefaultMaxSimulations},
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "config")
	}

	for name, engineConfig := range config.Engines {
		engineConfig.Name = name
		if engineConfig.Port == 0 {
			engineConfig.Port = engine.DefaultPort
		}
		config.Engines[name] = engineConfig
	}

	return &config, nil
}

// Engine returns the named engine's configuration.
func (config *Config) Engine(name string) (engine.EngineConfig, error) {
	engineConfig, found := config.Engines[name]
	if !found {
		return engine.EngineConfig{}, errors.Errorf("config: unknown engine %s", name)
	}

	return engineConfig, nil
}

// EngineNames lists the configured engines in order.
func (config *Config) EngineNames() []string {
	names := make([]string, 0, len(config.Engines))
	for name := range config.Engines {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func TryMkdir(dir string) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		_ = os.MkdirAll(dir, FilePermissions)
	}
}

func TryCreate(file string, data []byte) {
	if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
		_ = os.WriteFile(file, data, FilePermissions)
	}
}
