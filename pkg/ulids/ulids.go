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

// Package ulids provides ULID generators and helpers.
//
// ULIDs are used for app IDs, release IDs, instance IDs and log event IDs.
package ulids

import (
	"crypto/rand"
	"github.com/oklog/ulid"
	"github.com/pkg/errors"
	"sync"
)

// MonotonicGenerator returns a function that generates ULID(s) that is safe for concurrent use.
// ULIDs generated within the same millisecond are strictly increasing.
//   - panics if a ULID fails to be generated
func MonotonicGenerator() func() ulid.ULID {
	var m sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)

	return func() (uid ulid.ULID) {
		m.Lock()
		uid = ulid.MustNew(ulid.Now(), entropy)
		m.Unlock()
		return
	}
}

// MustNew generates a new crypto/rand based ULID.
// The function will panic if the ULID fails to generate.
func MustNew() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}

// Parse parses a ULID from its canonical string form. The zero ULID is rejected.
func Parse(id string) (ulid.ULID, error) {
	uid, err := ulid.ParseStrict(id)
	if err != nil {
		return ulid.ULID{}, errors.Wrapf(err, "invalid ULID: %q", id)
	}
	if uid == (ulid.ULID{}) {
		return ulid.ULID{}, errors.Errorf("zero ULID is not allowed: %q", id)
	}
	return uid, nil
}

// MustParse is like Parse but panics if the ULID fails to parse.
func MustParse(id string) ulid.ULID {
	uid, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return uid
}
