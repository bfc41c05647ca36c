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
	"sync"
)

// ReadinessWaitGroup gates the app ready state.
//
// The app holds a single count until it has started. A component that becomes ready asynchronously calls Inc while
// it is being constructed and Done once it can serve. The ready listeners run when the count drops to zero.
// Once the count has reached zero, the group stays ready.
type ReadinessWaitGroup interface {
	Add(delta uint)
	Inc()

	// Count is the number of outstanding registrations
	Count() uint

	// Done releases one registration. Releasing more registrations than were added panics.
	Done()

	// Ready is closed when the count reaches zero
	Ready() <-chan struct{}
}

// NewReadinessWaitgroup returns a ReadinessWaitGroup holding count registrations
func NewReadinessWaitgroup(count uint) ReadinessWaitGroup {
	group := &readinessGroup{
		pending: count,
		ready:   make(chan struct{}),
	}
	if count == 0 {
		close(group.ready)
	}
	return group
}

type readinessGroup struct {
	mu      sync.Mutex
	pending uint
	ready   chan struct{}
}

func (g *readinessGroup) Add(delta uint) {
	g.mu.Lock()
	g.pending += delta
	g.mu.Unlock()
}

func (g *readinessGroup) Inc() {
	g.Add(1)
}

func (g *readinessGroup) Count() uint {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending
}

func (g *readinessGroup) Done() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == 0 {
		panic("readiness wait group: Done called with no pending registrations")
	}
	g.pending--
	if g.pending == 0 {
		select {
		case <-g.ready:
		default:
			close(g.ready)
		}
	}
}

func (g *readinessGroup) Ready() <-chan struct{} {
	return g.ready
}
