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
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"laptudirm.com/x/sweep/pkg/bridge"
)

func TestParseBaseConfig(t *testing.T) {
	config, err := Parse(BaseConfigFile)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	stdio, err := config.Engine("stdio")
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	if stdio.Name != "stdio" || stdio.Host != "localhost" || stdio.Port != 10000 {
		t.Errorf("stdio engine: %+v", stdio)
	}

	if config.Session.Policy != "search" || config.Session.MaxSimulations != 64 {
		t.Errorf("session: %+v", config.Session)
	}
}

func TestParseDefaults(t *testing.T) {
	config, err := Parse([]byte(`
engines:
  b:
    cmd: ./b
    arg: --fast
  a:
    cmd: ./a
    stderr: a.log
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if names := config.EngineNames(); !reflect.DeepEqual(names, []string{"a", "b"}) {
		t.Errorf("engine names: %v", names)
	}

	a, _ := config.Engine("a")
	if a.Port != 10000 || a.Stderr != "a.log" || a.Cmd != "./a" {
		t.Errorf("engine a: %+v", a)
	}

	if config.Session.MaxSimulations != bridge.DefaultMaxSimulations {
		t.Errorf("max simulations: %d", config.Session.MaxSimulations)
	}

	if _, err := config.Engine("c"); err == nil {
		t.Errorf("unknown engine did not fail")
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("engines: [1, 2")); err == nil {
		t.Fatalf("invalid yaml parsed")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	if err := os.WriteFile(path, []byte("session:\n  policy: fixed\n  rounds: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if config.Session.Policy != "fixed" || config.Session.Rounds != 2 {
		t.Errorf("session: %+v", config.Session)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file loaded")
	}
}
