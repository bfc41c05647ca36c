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

package fxapp

import (
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
	"time"
)

// EnvconfigPrefix is used as the environment variable name prefix to load configs from the env.
//   - "APPX12" was chosen to represent 12-factor apps.
//   - for more information, see "github.com/kelseyhightower/envconfig"
const EnvconfigPrefix = "APPX12"

// Config is used to load the app's ambient config settings from env vars:
//
//   - APPX12_LOG_LEVEL - default = info
//   - APPX12_START_TIMEOUT - default = 15s
//   - APPX12_STOP_TIMEOUT - default = 15s
type Config struct {
	LogLevel     Level         `default:"info" split_words:"true"`
	StartTimeout time.Duration `default:"15s" split_words:"true"`
	StopTimeout  time.Duration `default:"15s" split_words:"true"`
}

// LoadConfigFromEnv loads the Config from the system env
func LoadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvconfigPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{LogLevel=%s, StartTimeout=%s, StopTimeout=%s}", c.LogLevel, c.StartTimeout, c.StopTimeout)
}

// Level is a type alias for zerolog.Level in order to be able to implement the `envconfig.Decoder` interface on it
type Level zerolog.Level

// Decode implements `envconfig.Decoder` interface.
//
// An empty value is rejected. zerolog parses it as NoLevel, which would silently suppress every leveled log event.
func (l *Level) Decode(value string) error {
	level, err := zerolog.ParseLevel(value)
	if err != nil {
		return err
	}
	if level == zerolog.NoLevel {
		return fmt.Errorf("log level is required: %q", value)
	}
	*l = Level(level)
	return nil
}

// ZerologLevel returns the zerolog.Level
func (l Level) ZerologLevel() zerolog.Level {
	return zerolog.Level(l)
}

func (l Level) String() string {
	return zerolog.Level(l).String()
}
