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
	"github.com/oysterpack/apptemplate/pkg/ulids"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
	"io"
	"log"
	"time"
)

// Standard log event field names
const (
	TimestampField  = "t"
	LevelField      = "l"
	MessageField    = "m"
	ErrorField      = "e"
	EventTypeField  = "n"
	ComponentField  = "c"
	EventIDField    = "z"
	TagsField       = "g"
	AppIDField      = "a"
	ReleaseIDField  = "r"
	VersionField    = "v"
	InstanceIDField = "x"
)

// Applies standard zerolog initialization.
//
// The following global settings are applied for performance reasons:
//   - the standard logger field names are shortened
//   - Timestamp -> t
//   - Level -> l
//   - Message -> m
//   - Error -> e
//   - Unix time format is used - seconds granularity is sufficient for log events
//   - durations are logged as integer milliseconds
//
// An error stack marshaller is configured.
//
// The global level is opened up to trace, so that the level threshold is owned by each logger.
func init() {
	zerolog.TimestampFieldName = TimestampField
	zerolog.LevelFieldName = LevelField
	zerolog.MessageFieldName = MessageField
	zerolog.ErrorFieldName = ErrorField

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// NewLogger creates the app logger. The logger context is augmented with the app descriptor and instance ID,
// and each log event is assigned a unique event ID.
//
//	{"l":"info","a":"01DE2GCMX5ZSVZXE2RTY7DCB88","r":"01DE2GCMX570BXG6468XBXNXQT","v":"0.1.0","x":"01DE2GCMX5Q9S44S8166JX10WV","z":"01DE30RAEQGQBS0THBCVKVHFSW","t":1561304912,"m":"Application ready"}
func NewLogger(w io.Writer, level zerolog.Level, desc Desc, instanceID InstanceID) *zerolog.Logger {
	logger := zerolog.New(w).
		Level(level).
		Hook(zerolog.HookFunc(SetEventID)).
		With().
		Timestamp().
		Str(AppIDField, desc.ID().String()).
		Str(ReleaseIDField, desc.ReleaseID().String()).
		Str(VersionField, desc.Version().String()).
		Str(InstanceIDField, instanceID.String()).
		Logger()
	return &logger
}

// EventLogger returns a new logger with the event type ID field 'n' set to the specified value.
//
// The event type ID should be unique. To ensure uniqueness, use ULIDs.
func EventLogger(logger *zerolog.Logger, id string) *zerolog.Logger {
	l := logger.With().Str(EventTypeField, id).Logger()
	return &l
}

// ComponentLogger returns a new logger with the component field 'c' set to the specified value.
func ComponentLogger(logger *zerolog.Logger, id string) *zerolog.Logger {
	l := logger.With().Str(ComponentField, id).Logger()
	return &l
}

var newEventID = ulids.MonotonicGenerator()

// SetEventID injects an event ID field named 'z'. The log event will assigned a ULID event ID.
//
// Use Case: Enables log event to be referenced.
func SetEventID(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(EventIDField, newEventID().String())
}

// UseAsStandardLoggerOutput uses the specified logger as the go std log output.
// Std log events are logged with no level, using a component logger named 'log'.
func UseAsStandardLoggerOutput(logger *zerolog.Logger) {
	log.SetFlags(0)
	log.SetOutput(ComponentLogger(logger, "log"))
}
