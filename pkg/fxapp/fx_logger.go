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
	"github.com/rs/zerolog"
	"go.uber.org/fx/fxevent"
)

// fxLogger routes fx's internal events into the app logger, using a component logger named 'fx'.
// Successful events are logged at debug level. Failures are logged at error level.
type fxLogger struct {
	logger *zerolog.Logger
}

var _ fxevent.Logger = fxLogger{}

func newFxLogger(logger *zerolog.Logger) fxLogger {
	return fxLogger{ComponentLogger(logger, "fx")}
}

func (l fxLogger) log(err error) *zerolog.Event {
	if err != nil {
		return l.logger.Error().Err(err)
	}
	return l.logger.Debug()
}

// LogEvent implements fxevent.Logger
func (l fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.Provided:
		l.log(e.Err).
			Str("constructor", e.ConstructorName).
			Strs("types", e.OutputTypeNames).
			Msg("provided")
	case *fxevent.Supplied:
		l.log(e.Err).Str("type", e.TypeName).Msg("supplied")
	case *fxevent.Decorated:
		l.log(e.Err).
			Str("decorator", e.DecoratorName).
			Strs("types", e.OutputTypeNames).
			Msg("decorated")
	case *fxevent.Replaced:
		l.log(e.Err).Strs("types", e.OutputTypeNames).Msg("replaced")
	case *fxevent.Run:
		l.log(e.Err).
			Str("name", e.Name).
			Str("kind", e.Kind).
			Msg("run")
	case *fxevent.Invoking:
		l.logger.Debug().Str("func", e.FunctionName).Msg("invoking")
	case *fxevent.Invoked:
		l.log(e.Err).Str("func", e.FunctionName).Msg("invoked")
	case *fxevent.OnStartExecuting:
		l.logger.Debug().
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Msg("OnStart hook executing")
	case *fxevent.OnStopExecuting:
		l.logger.Debug().
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Msg("OnStop hook executing")
	case *fxevent.OnStartExecuted:
		l.log(e.Err).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStart hook executed")
	case *fxevent.OnStopExecuted:
		l.log(e.Err).
			Str("callee", e.FunctionName).
			Str("caller", e.CallerName).
			Dur("runtime", e.Runtime).
			Msg("OnStop hook executed")
	case *fxevent.Stopping:
		l.logger.Debug().Str("signal", e.Signal.String()).Msg("received signal")
	case *fxevent.Stopped:
		l.log(e.Err).Msg("stopped")
	case *fxevent.RollingBack:
		l.logger.Error().Err(e.StartErr).Msg("start failed, rolling back")
	case *fxevent.RolledBack:
		l.log(e.Err).Msg("rolled back")
	case *fxevent.Started:
		l.log(e.Err).Msg("started")
	case *fxevent.LoggerInitialized:
		l.log(e.Err).Str("constructor", e.ConstructorName).Msg("initialized custom fxevent.Logger")
	}
}
