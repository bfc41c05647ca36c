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

// Package template contains the template app's components.
package template

import (
	"github.com/oysterpack/apptemplate/pkg/fxapp"
	"github.com/rs/zerolog"
)

// ReadyMessage is the info level message logged once the app is ready
const ReadyMessage = "Application ready"

// LogReady is the app's ready listener. It logs one event per log level, from trace up to error.
//
// Which events are written depends on the logger's level threshold.
func LogReady(logger *zerolog.Logger, _ fxapp.AppReady) {
	logger.Trace().Msg("TEST TRACE")
	logger.Debug().Msg("TEST DEBUG")
	logger.Info().Msg(ReadyMessage)
	logger.Warn().Msg("TEST WARN")
	logger.Error().Msg("TEST ERROR")
}

var _ fxapp.ReadyListener = LogReady
