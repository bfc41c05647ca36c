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
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"io"
	"os"
	"time"
)

// Builder is used to construct a new App instance.
type Builder interface {
	Build() (App, error)

	SetStartTimeout(timeout time.Duration) Builder
	SetStopTimeout(timeout time.Duration) Builder

	// Configure applies the ambient config: log level and lifecycle timeouts.
	Configure(cfg *Config) Builder

	// LogWriter is used as the zerolog writer.
	//
	// By default, stderr is used.
	LogWriter(w io.Writer) Builder
	// LogLevel sets the app logger level threshold - default = info
	LogLevel(level zerolog.Level) Builder

	// Args are made available to app components. They are passed through unexamined.
	Args(args ...string) Builder

	Provide(constructors ...interface{}) Builder
	Invoke(funcs ...interface{}) Builder

	// OnReady registers listeners that are invoked once the app is ready.
	OnReady(listeners ...ReadyListener) Builder

	HandleInvokeError(errorHandlers ...func(error)) Builder
	HandleStartError(errorHandlers ...func(error)) Builder
	HandleStopError(errorHandlers ...func(error)) Builder
}

// NewBuilder constructs a new Builder
func NewBuilder(desc Desc) Builder {
	return &builder{
		desc:         desc,
		startTimeout: 15 * time.Second,
		stopTimeout:  15 * time.Second,
		logWriter:    os.Stderr,
		logLevel:     zerolog.InfoLevel,
	}
}

type builder struct {
	desc Desc
	args Args

	startTimeout time.Duration
	stopTimeout  time.Duration

	logWriter io.Writer
	logLevel  zerolog.Level

	constructors        []interface{}
	funcs               []interface{}
	readyListeners      []ReadyListener
	invokeErrorHandlers []func(error)
	startErrorHandlers  []func(error)
	stopErrorHandlers   []func(error)
}

func (b *builder) String() string {
	return fmt.Sprintf("Builder{%v, StartTimeout: %s, StopTimeout: %s, LogLevel: %s, Provide: %s, Invoke: %s, ReadyListeners: %d, Args: %q}",
		b.desc,
		b.startTimeout,
		b.stopTimeout,
		b.logLevel,
		funcTypes(b.constructors),
		funcTypes(b.funcs),
		len(b.readyListeners),
		[]string(b.args),
	)
}

// Build tries to construct and initialize a new App instance.
// All of the app's functions are run as part of the app initialization phase.
func (b *builder) Build() (App, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	instanceID := NewInstanceID()
	logger := NewLogger(b.logWriter, b.logLevel, b.desc, instanceID)
	app := &app{
		desc:           b.desc,
		instanceID:     instanceID,
		args:           b.args,
		constructors:   b.constructors,
		funcs:          b.funcs,
		readyListeners: b.readyListeners,

		startErrorHandlers: b.startErrorHandlers,
		stopErrorHandlers:  b.stopErrorHandlers,

		starting:  make(chan struct{}),
		started:   make(chan struct{}),
		ready:     make(chan struct{}),
		readiness: NewReadinessWaitgroup(1),
		stopping:  make(chan os.Signal, 1),
		stopped:   make(chan os.Signal, 1),

		logger: logger,
	}

	app.App = fx.New(
		fx.WithLogger(func() fxevent.Logger { return newFxLogger(logger) }),
		fx.Provide(
			func() Desc { return app.desc },
			func() InstanceID { return instanceID },
			func() Args { return app.args },
			func() *zerolog.Logger { return logger },
			func() ReadinessWaitGroup { return app.readiness },
		),
		fx.StartTimeout(b.startTimeout),
		fx.StopTimeout(b.stopTimeout),
		fx.Options(b.buildOptions()...),
		fx.Populate(&app.shutdowner),
	)

	if err := app.Err(); err != nil {
		InitFailedEventID.NewLogEvent(logger, zerolog.ErrorLevel)(AppFailed{err}, "app init failed")
		return nil, err
	}
	app.logAppInitialized()

	return app, nil
}

func (b *builder) validate() error {
	var err error
	if b.desc == nil {
		err = multierr.Append(err, errors.New("`Desc` is required"))
	} else {
		err = multierr.Append(err, b.desc.Validate())
	}
	if len(b.constructors) == 0 && len(b.funcs) == 0 && len(b.readyListeners) == 0 {
		err = multierr.Append(err, errors.New("at least 1 functional option is required"))
	}
	if b.logWriter == nil {
		err = multierr.Append(err, errors.New("`LogWriter` is required"))
	}
	return err
}

func (b *builder) buildOptions() []fx.Option {
	compOptions := make([]fx.Option, 0, len(b.constructors)+len(b.funcs)+len(b.invokeErrorHandlers))
	for _, f := range b.constructors {
		compOptions = append(compOptions, fx.Provide(f))
	}
	for _, f := range b.funcs {
		compOptions = append(compOptions, fx.Invoke(f))
	}
	for _, f := range b.invokeErrorHandlers {
		compOptions = append(compOptions, fx.ErrorHook(errorHandler(f)))
	}
	return compOptions
}

func (b *builder) SetStartTimeout(timeout time.Duration) Builder {
	b.startTimeout = timeout
	return b
}

func (b *builder) SetStopTimeout(timeout time.Duration) Builder {
	b.stopTimeout = timeout
	return b
}

func (b *builder) Configure(cfg *Config) Builder {
	b.logLevel = cfg.LogLevel.ZerologLevel()
	b.startTimeout = cfg.StartTimeout
	b.stopTimeout = cfg.StopTimeout
	return b
}

func (b *builder) LogWriter(w io.Writer) Builder {
	b.logWriter = w
	return b
}

func (b *builder) LogLevel(level zerolog.Level) Builder {
	b.logLevel = level
	return b
}

func (b *builder) Args(args ...string) Builder {
	b.args = append(b.args, args...)
	return b
}

func (b *builder) Provide(constructors ...interface{}) Builder {
	b.constructors = append(b.constructors, constructors...)
	return b
}

func (b *builder) Invoke(funcs ...interface{}) Builder {
	b.funcs = append(b.funcs, funcs...)
	return b
}

func (b *builder) OnReady(listeners ...ReadyListener) Builder {
	b.readyListeners = append(b.readyListeners, listeners...)
	return b
}

func (b *builder) HandleInvokeError(errorHandlers ...func(error)) Builder {
	b.invokeErrorHandlers = append(b.invokeErrorHandlers, errorHandlers...)
	return b
}

func (b *builder) HandleStartError(errorHandlers ...func(error)) Builder {
	b.startErrorHandlers = append(b.startErrorHandlers, errorHandlers...)
	return b
}

func (b *builder) HandleStopError(errorHandlers ...func(error)) Builder {
	b.stopErrorHandlers = append(b.stopErrorHandlers, errorHandlers...)
	return b
}
