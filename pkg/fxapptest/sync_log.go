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

// Package fxapptest provides test support for apps built with fxapp.
package fxapptest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"github.com/oysterpack/apptemplate/pkg/fxapp"
	"github.com/pkg/errors"
	"sync"
)

// SyncLog is used to to provide a concurrency safe read/write log.
//
// Use Case: used as the app log writer when inspecting logs in unit tests that have multiple go routines writing to
// the log concurrently
type SyncLog struct {
	sync.Mutex
	buf *bytes.Buffer
}

// NewSyncLog returns a new empty SyncLog
func NewSyncLog() *SyncLog {
	return &SyncLog{
		buf: new(bytes.Buffer),
	}
}

func (l *SyncLog) Write(data []byte) (int, error) {
	l.Lock()
	defer l.Unlock()
	return l.buf.Write(data)
}

func (l *SyncLog) String() string {
	l.Lock()
	defer l.Unlock()
	return l.buf.String()
}

func (l *SyncLog) Bytes() []byte {
	l.Lock()
	defer l.Unlock()
	return append([]byte(nil), l.buf.Bytes()...)
}

// LogRecord is the standard part of a JSON log event written by an fxapp logger
type LogRecord struct {
	Level      string `json:"l"`
	Message    string `json:"m"`
	EventType  string `json:"n"`
	Component  string `json:"c"`
	EventID    string `json:"z"`
	InstanceID string `json:"x"`
}

// Records decodes the log events that have been written so far, in the order they were written
func (l *SyncLog) Records() ([]LogRecord, error) {
	var records []LogRecord
	scanner := bufio.NewScanner(bytes.NewReader(l.Bytes()))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var record LogRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return records, errors.Wrapf(err, "failed to parse log event: %s", line)
		}
		records = append(records, record)
	}
	return records, scanner.Err()
}

// Events returns the records for the specified event type
func (l *SyncLog) Events(eventType fxapp.EventTypeID) ([]LogRecord, error) {
	records, err := l.Records()
	if err != nil {
		return nil, err
	}
	var events []LogRecord
	for _, record := range records {
		if record.EventType == eventType.String() {
			events = append(events, record)
		}
	}
	return events, nil
}
