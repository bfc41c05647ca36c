/*
 * Copyright (c) 2019 OysterPack, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fxapp_test

import (
	"github.com/oysterpack/apptemplate/pkg/fxapp"
	"github.com/rs/zerolog"
	"io"
	"testing"
	"time"
)

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	unsetenv("LOG_LEVEL", "START_TIMEOUT", "STOP_TIMEOUT")

	cfg, err := fxapp.LoadConfigFromEnv()
	switch {
	case err != nil:
		t.Errorf("*** failed to load config: %v", err)
	default:
		t.Log(cfg)
		if cfg.LogLevel.ZerologLevel() != zerolog.InfoLevel {
			t.Errorf("*** default log level should be info: %v", cfg.LogLevel)
		}
		if cfg.StartTimeout != 15*time.Second {
			t.Errorf("*** default start timeout did not match: %v", cfg.StartTimeout)
		}
		if cfg.StopTimeout != 15*time.Second {
			t.Errorf("*** default stop timeout did not match: %v", cfg.StopTimeout)
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	setenv(t, "LOG_LEVEL", "trace")
	setenv(t, "START_TIMEOUT", "1m")
	setenv(t, "STOP_TIMEOUT", "30s")

	cfg, err := fxapp.LoadConfigFromEnv()
	switch {
	case err != nil:
		t.Errorf("*** failed to load config: %v", err)
	default:
		t.Log(cfg)
		if cfg.LogLevel.ZerologLevel() != zerolog.TraceLevel {
			t.Errorf("*** log level did not match: %v", cfg.LogLevel)
		}
		if cfg.StartTimeout != time.Minute {
			t.Errorf("*** start timeout did not match: %v", cfg.StartTimeout)
		}
		if cfg.StopTimeout != 30*time.Second {
			t.Errorf("*** stop timeout did not match: %v", cfg.StopTimeout)
		}
	}
}

func TestLoadConfigFromEnv_InvalidLogLevel(t *testing.T) {
	setenv(t, "LOG_LEVEL", "loud")

	_, err := fxapp.LoadConfigFromEnv()
	switch {
	case err == nil:
		t.Error("*** config should have failed to load because the log level is invalid")
	default:
		t.Log(err)
	}
}

func TestLoadConfigFromEnv_EmptyLogLevel(t *testing.T) {
	setenv(t, "LOG_LEVEL", "")

	cfg, err := fxapp.LoadConfigFromEnv()
	switch {
	case err == nil:
		t.Errorf("*** config should have failed to load because the log level is empty: %v", cfg)
	default:
		t.Log(err)
	}
}

func TestLevel_Decode(t *testing.T) {
	var level fxapp.Level
	for _, value := range []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"} {
		if err := level.Decode(value); err != nil {
			t.Errorf("*** %q should be a valid log level: %v", value, err)
			continue
		}
		if level.String() != value {
			t.Errorf("*** decoded level did not match: %v != %v", level, value)
		}
	}

	for _, value := range []string{"", "loud"} {
		if err := level.Decode(value); err == nil {
			t.Errorf("*** %q should not be a valid log level", value)
		}
	}
}

func TestBuilder_Configure(t *testing.T) {
	unsetenv("LOG_LEVEL", "START_TIMEOUT", "STOP_TIMEOUT")
	setenv(t, "LOG_LEVEL", "warn")
	setenv(t, "START_TIMEOUT", "20s")
	setenv(t, "STOP_TIMEOUT", "25s")
	cfg, err := fxapp.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("*** failed to load config: %v", err)
	}

	app, err := fxapp.NewBuilder(newDesc("foo", "0.1.0")).
		Configure(cfg).
		LogWriter(io.Discard).
		Invoke(func() {}).
		Build()
	switch {
	case err != nil:
		t.Errorf("*** app failed to build: %v", err)
	default:
		if app.StartTimeout() != 20*time.Second {
			t.Errorf("*** start timeout did not match: %v", app.StartTimeout())
		}
		if app.StopTimeout() != 25*time.Second {
			t.Errorf("*** stop timeout did not match: %v", app.StopTimeout())
		}
		if app.Logger().GetLevel() != zerolog.WarnLevel {
			t.Errorf("*** log level did not match: %v", app.Logger().GetLevel())
		}
	}
}
