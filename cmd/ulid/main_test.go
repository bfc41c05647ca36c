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

package main

import (
	"bytes"
	"github.com/oysterpack/apptemplate/pkg/ulids"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	t.Run("mint one", func(t *testing.T) {
		out := new(bytes.Buffer)
		require.NoError(t, run(nil, out))
		_, err := ulids.Parse(strings.TrimSpace(out.String()))
		assert.NoError(t, err)
	})

	t.Run("mint several in order", func(t *testing.T) {
		out := new(bytes.Buffer)
		require.NoError(t, run([]string{"-n", "3"}, out))
		lines := strings.Fields(out.String())
		require.Len(t, lines, 3)
		assert.True(t, lines[0] < lines[1] && lines[1] < lines[2], "ULIDs should be increasing: %v", lines)
	})

	t.Run("decode", func(t *testing.T) {
		id := ulids.MustNew()
		out := new(bytes.Buffer)
		require.NoError(t, run([]string{"-p", id.String(), "-v"}, out))
		assert.True(t, strings.HasPrefix(out.String(), id.String()+" time="))
		assert.Contains(t, out.String(), "entropy=")
	})

	t.Run("decode invalid", func(t *testing.T) {
		assert.Error(t, run([]string{"-p", "INVALID"}, new(bytes.Buffer)))
	})

	t.Run("help", func(t *testing.T) {
		out := new(bytes.Buffer)
		require.NoError(t, run([]string{"-h"}, out))
		assert.Contains(t, out.String(), "usage: ulid")
	})
}
