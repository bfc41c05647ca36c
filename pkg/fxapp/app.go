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
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/oklog/ulid"
	"github.com/oysterpack/apptemplate/pkg/ulids"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"os"
	"reflect"
	"sync/atomic"
	"time"
)

// InstanceID is used to assign an app instance a unique ULID.
// The instance ID can be used to identify the app instance in logs, metrics, events, etc.
type InstanceID ulid.ULID

// NewInstanceID returns a new unique InstanceID
func NewInstanceID() InstanceID {
	return InstanceID(ulids.MustNew())
}

// ULID returns the InstanceID's underlying ULID
func (id InstanceID) ULID() ulid.ULID {
	return ulid.ULID(id)
}

func (id InstanceID) String() string {
	return id.ULID().String()
}

// Args are the process arguments, passed through to the app unexamined.
type Args []string

// ReadyListener is invoked once the app is ready. It is passed the app logger and the readiness event.
type ReadyListener func(logger *zerolog.Logger, event AppReady)

// used to implement the fx.ErrorHandler interface
type errorHandler func(err error)

func (f errorHandler) HandleError(err error) {
	f(err)
}

// App represents a functional application container, leveraging fx (https://godoc.org/go.uber.org/fx) as the underlying
// framework. Functional means, the application behavior is defined via functions.
//
// The key is understanding the application life cycle. The application transitions through the following lifecycle states:
//	1. Initialized
//	2. Starting
//	3. Started
//	4. Ready
//	5. Stopping
//	6. Done
//
// When building an application, functions are registered which specify how to:
//  - initialize the application
//  - register services that are bound to the application life cycle, via `fx.Lifecycle` (https://godoc.org/go.uber.org/fx#Lifecycle)
//  - react to the application becoming ready, via ReadyListener(s)
//
// Function arguments are provided via dependency injection by registering provider constructor functions with the application.
// Provider constructor functions are lazily invoked when needed to inject function dependencies. Ready listeners are
// registered explicitly and are not discovered.
//
// Application Logging
//
// Zerolog (https://godoc.org/github.com/rs/zerolog) is used as the structured JSON logging framework. A `*zerolog.Logger`
// is automatically provided when building the application and available for dependency injection. The application logger
// context is augmented with application metadata and an event ID, e.g.,
//
//		{"a":"01DE2GCMX5ZSVZXE2RTY7DCB88","r":"01DE2GCMX570BXG6468XBXNXQT","v":"0.1.0","x":"01DE2GCMX5Q9S44S8166JX10WV","n":"01DE4X10QCV1M8TKRNXDK6AK7C","z":"01DE30RAEQGQBS0THBCVKVHFSW","t":1561304912,"m":"app started"}
//
//		where a -> app ID
//			  r -> app release ID
//			  v -> app version
//			  x -> app instance ID
//			  n -> event type ID
//			  z -> event ID
//			  t -> timestamp - in Unix time format
//			  m -> message
//
// App lifecycle events are logged with no level, i.e., they are not subject to the log level threshold.
//
// Automatically Provided
//	- Desc
//	- InstanceID
//	- Args
//	- *zerolog.Logger
//	- ReadinessWaitGroup - the app is ready once all components that registered with the ReadinessWaitGroup are done
//	- fx.Lifecycle - for components to use to bind to the app lifecycle
//	- fx.Shutdowner - used to trigger app shutdown
type App interface {
	Options
	LifeCycle

	// Run will start running the application and blocks until the app is shutdown.
	// It waits to receive a SIGINT or SIGTERM signal to shutdown the app.
	//
	// Once the app has started and all components are ready, the ready listeners are invoked exactly once,
	// synchronously, in the order they were registered.
	Run() error

	// Shutdown signals the app to shutdown. This method does not block, i.e., application shutdown occurs async.
	//
	// Shutdown can only be called after the app has been started - otherwise an error is returned.
	Shutdown() error
}

// LifeCycle defines the application lifecycle.
type LifeCycle interface {
	// Starting signals that the app is starting.
	// Closing the channel is the signal.
	Starting() <-chan struct{}
	// Started signals that the app has fully started
	Started() <-chan struct{}
	// Ready signals that the app ready listeners have been run.
	// If the app is stopped before it becomes ready, then the channel is never closed.
	Ready() <-chan struct{}
	// Stopping signals that app is stopping.
	// The channel is closed after the stop signal is sent.
	Stopping() <-chan os.Signal
	// Done signals that the app has shutdown.
	// The channel is closed after the stop signal is sent.
	// If the app fails to startup, then the channel is simply closed, i.e., no stop signal will be sent on the channel.
	Done() <-chan os.Signal
}

// Options represent application options that were used to configure and build app.
type Options interface {
	// Desc returns the app descriptor
	Desc() Desc

	// InstanceID returns the app unique instance ID
	InstanceID() InstanceID

	// Args returns the process args that the app was built with
	Args() Args

	// Logger returns the app logger
	Logger() *zerolog.Logger

	// StartTimeout returns the app start timeout. If the app takes longer than the specified timeout, then the app will
	// fail to run.
	StartTimeout() time.Duration
	// StopTimeout returns the app shutdown timeout. If the app takes longer than the specified timeout, then the app shutdown
	// will be aborted.
	StopTimeout() time.Duration

	// ConstructorTypes returns the registered constructor types
	ConstructorTypes() []reflect.Type
	// FuncTypes returns the registered function types
	FuncTypes() []reflect.Type
	// ReadyListenerCount returns the number of registered ready listeners
	ReadyListenerCount() int
}

type app struct {
	desc       Desc
	instanceID InstanceID
	args       Args

	constructors   []interface{}
	funcs          []interface{}
	readyListeners []ReadyListener

	startErrorHandlers, stopErrorHandlers []func(error)

	*fx.App
	shutdowner               fx.Shutdowner
	running                  atomic.Bool
	starting, started, ready chan struct{}
	readiness                ReadinessWaitGroup
	stopping, stopped        chan os.Signal

	logger *zerolog.Logger
}

func funcTypes(funcs []interface{}) string {
	if len(funcs) == 0 {
		return "[]"
	}
	s := new(bytes.Buffer)
	s.WriteString("[")
	s.WriteString(reflect.TypeOf(funcs[0]).String())
	for i := 1; i < len(funcs); i++ {
		s.WriteString("|")
		s.WriteString(reflect.TypeOf(funcs[i]).String())
	}

	s.WriteString("]")
	return s.String()
}

func (a *app) String() string {
	return fmt.Sprintf("App{%v, StartTimeout: %s, StopTimeout: %s, Provide: %s, Invoke: %s, ReadyListeners: %d, Args: %q}",
		a.desc,
		a.StartTimeout(),
		a.StopTimeout(),
		funcTypes(a.constructors),
		funcTypes(a.funcs),
		len(a.readyListeners),
		[]string(a.args),
	)
}

func (a *app) Desc() Desc {
	return a.desc
}

func (a *app) InstanceID() InstanceID {
	return a.instanceID
}

func (a *app) Args() Args {
	return a.args
}

func (a *app) Logger() *zerolog.Logger {
	return a.logger
}

func types(values []interface{}) []reflect.Type {
	if len(values) == 0 {
		return nil
	}
	valueTypes := make([]reflect.Type, 0, len(values))
	for _, value := range values {
		valueTypes = append(valueTypes, reflect.TypeOf(value))
	}

	return valueTypes
}

func (a *app) ConstructorTypes() []reflect.Type {
	return types(a.constructors)
}

func (a *app) FuncTypes() []reflect.Type {
	return types(a.funcs)
}

func (a *app) ReadyListenerCount() int {
	return len(a.readyListeners)
}

func (a *app) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return errors.New("app cannot be run again after it has already been started")
	}
	a.logAppStarting()

	startCtx, cancel := context.WithTimeout(context.Background(), a.StartTimeout())
	defer cancel()
	defer close(a.stopped)

	stopChan := a.App.Done()

	close(a.starting)
	startingTime := time.Now()
	if e := a.Start(startCtx); e != nil {
		return a.handleStartError(e)
	}
	a.logAppStarted(time.Since(startingTime))
	close(a.started)
	a.readiness.Done() // the app has started

	// wait for the app to be ready to service requests
	select {
	case <-a.readiness.Ready():
		a.notifyReady(time.Since(startingTime))
		return a.shutdown(<-stopChan) // shutdown on stop signal
	case signal := <-stopChan: // wait for the app to be signalled to stop
		return a.shutdown(signal)
	}
}

func (a *app) notifyReady(readinessTime time.Duration) {
	event := AppReady{
		InstanceID: a.instanceID,
		Duration:   readinessTime,
	}
	ReadyEventID.NewLogEvent(a.logger, zerolog.NoLevel)(event, "app ready")
	for _, listener := range a.readyListeners {
		listener(a.logger, event)
	}
	close(a.ready)
}

func (a *app) shutdown(signal os.Signal) error {
	a.stopping <- signal
	close(a.stopping)
	defer func() {
		a.stopped <- signal
	}()

	a.logAppStopping(signal)

	stopCtx, cancel := context.WithTimeout(context.Background(), a.StopTimeout())
	defer cancel()
	stoppingTime := time.Now()
	defer func() { a.logAppStopped(time.Since(stoppingTime)) }()
	if e := a.Stop(stopCtx); e != nil {
		return a.handleStopError(e)
	}
	return nil
}

func (a *app) handleStartError(err error) error {
	StartFailedEventID.NewLogEvent(a.logger, zerolog.ErrorLevel)(AppFailed{err}, "app start failed")
	for _, f := range a.startErrorHandlers {
		f(err)
	}
	return err
}

func (a *app) handleStopError(err error) error {
	StopFailedEventID.NewLogEvent(a.logger, zerolog.ErrorLevel)(AppFailed{err}, "app stop failed")
	for _, f := range a.stopErrorHandlers {
		f(err)
	}
	return err
}

func (a *app) Starting() <-chan struct{} {
	return a.starting
}

func (a *app) Started() <-chan struct{} {
	return a.started
}

func (a *app) Ready() <-chan struct{} {
	return a.ready
}

func (a *app) Stopping() <-chan os.Signal {
	return a.stopping
}

func (a *app) Done() <-chan os.Signal {
	return a.stopped
}

func (a *app) Shutdown() error {
	select {
	case <-a.started:
		return a.shutdowner.Shutdown()
	default:
		return errors.New("app can only be shutdown after it has started")
	}
}

func (a *app) logAppInitialized() {
	buildInfo, _ := ReadBuildInfo()
	InitializedEventID.NewLogEvent(a.logger, zerolog.NoLevel)(AppInitialized{a, buildInfo}, "app initialized")
}

func (a *app) logAppStarting() {
	StartingEventID.NewLogEvent(a.logger, zerolog.NoLevel)(nil, "app starting")
}

func (a *app) logAppStarted(startupTime time.Duration) {
	StartedEventID.NewLogEvent(a.logger, zerolog.NoLevel)(AppStarted{startupTime}, "app started")
}

func (a *app) logAppStopping(signal os.Signal) {
	StoppingEventID.NewLogEvent(a.logger, zerolog.NoLevel)(AppStopping{signal}, "app stopping")
}

func (a *app) logAppStopped(shutdownDuration time.Duration) {
	StoppedEventID.NewLogEvent(a.logger, zerolog.NoLevel)(AppStopped{shutdownDuration}, "app stopped")
}
