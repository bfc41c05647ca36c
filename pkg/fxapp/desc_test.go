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

package fxapp_test

import (
	"fmt"
	"github.com/Masterminds/semver"
	"github.com/oklog/ulid"
	"github.com/oysterpack/apptemplate/pkg/fxapp"
	"github.com/oysterpack/apptemplate/pkg/ulids"
	"os"
	"strings"
	"testing"
)

func newDesc(name, version string) fxapp.Desc {
	desc, err := fxapp.NewDescBuilder().
		SetID(ulids.MustNew()).
		SetName(name).
		SetVersion(semver.MustParse(version)).
		SetReleaseID(ulids.MustNew()).
		Build()
	if err != nil {
		panic(err)
	}
	return desc
}

func TestDesc_Build(t *testing.T) {
	id := ulids.MustNew()
	releaseID := ulids.MustNew()
	desc, err := fxapp.NewDescBuilder().
		SetID(id).
		SetName("foo").
		SetVersion(semver.MustParse("0.1.0")).
		SetReleaseID(releaseID).
		Build()

	switch {
	case err != nil:
		t.Errorf("*** desc build error: %v", err)
	default:
		t.Log(desc.String())

		if desc.Name() != "foo" {
			t.Errorf("*** name did not match: %v", desc.Name())
		}
		if desc.ID() != id {
			t.Error("*** ID did not match")
		}
		if desc.ReleaseID() != releaseID {
			t.Error("*** ReleaseID did not match")
		}
		if !desc.Version().Equal(semver.MustParse("0.1.0")) {
			t.Errorf("*** version did not match: %v", desc.Version())
		}
	}
}

func TestDesc_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		builder fxapp.DescBuilder
	}{
		{
			"zero ID",
			fxapp.NewDescBuilder().
				SetID(ulid.ULID{}).
				SetName("foo").
				SetVersion(semver.MustParse("0.1.0")).
				SetReleaseID(ulids.MustNew()),
		},
		{
			"zero ReleaseID",
			fxapp.NewDescBuilder().
				SetID(ulids.MustNew()).
				SetName("foo").
				SetVersion(semver.MustParse("0.1.0")).
				SetReleaseID(ulid.ULID{}),
		},
		{
			"nil Version",
			fxapp.NewDescBuilder().
				SetID(ulids.MustNew()).
				SetName("foo").
				SetReleaseID(ulids.MustNew()),
		},
		{
			"name must start with an alpha char",
			fxapp.NewDescBuilder().
				SetID(ulids.MustNew()).
				SetName("1foo").
				SetVersion(semver.MustParse("0.1.0")).
				SetReleaseID(ulids.MustNew()),
		},
		{
			"name contains an invalid char",
			fxapp.NewDescBuilder().
				SetID(ulids.MustNew()).
				SetName("foo:2323").
				SetVersion(semver.MustParse("0.1.0")).
				SetReleaseID(ulids.MustNew()),
		},
		{
			"name max length = 50",
			fxapp.NewDescBuilder().
				SetID(ulids.MustNew()).
				SetName(strings.Repeat("a", 51)).
				SetVersion(semver.MustParse("0.1.0")).
				SetReleaseID(ulids.MustNew()),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			desc, err := test.builder.Build()
			switch {
			case err == nil:
				t.Errorf("*** desc should have failed to build: %v", desc)
			default:
				t.Log(err)
			}
		})
	}
}

func setenv(t *testing.T, key, value string) {
	t.Setenv(fmt.Sprintf("%s_%s", fxapp.EnvconfigPrefix, strings.ToUpper(key)), value)
}

func unsetenv(keys ...string) {
	for _, key := range keys {
		e := os.Unsetenv(fmt.Sprintf("%s_%s", fxapp.EnvconfigPrefix, strings.ToUpper(key)))
		if e != nil {
			panic(e)
		}
	}
}

func TestLoadDescFromEnv(t *testing.T) {
	keys := []string{"ID", "NAME", "VERSION", "RELEASE_ID"}
	unsetenv(keys...)

	_, e := fxapp.LoadDescFromEnv(nil)
	switch {
	case e == nil:
		t.Error("*** desc should have failed to load")
	default:
		t.Log(e)
	}

	id := ulids.MustNew()
	releaseID := ulids.MustNew()
	setenv(t, "ID", id.String())
	setenv(t, "NAME", "foo")
	setenv(t, "VERSION", "0.1.0")
	setenv(t, "RELEASE_ID", releaseID.String())

	desc, e := fxapp.LoadDescFromEnv(nil)

	switch {
	case e != nil:
		t.Errorf("*** desc failed to load from env: %v", e)
	default:
		t.Log(desc)
		if desc.Name() != "foo" {
			t.Error("*** name did not match")
		}
		if !desc.Version().Equal(semver.MustParse("0.1.0")) {
			t.Error("*** version did not match")
		}
		if desc.ID() != id {
			t.Error("*** ID did not match")
		}
		if desc.ReleaseID() != releaseID {
			t.Error("*** ReleaseID did not match")
		}
	}

	checkLoadDescFromEnvFailed := func(e error) {
		switch {
		case e == nil:
			t.Error("*** desc should have failed to load")
		default:
			t.Log(e)
		}
	}

	setenv(t, "ID", "INVALID")
	_, e = fxapp.LoadDescFromEnv(nil)
	checkLoadDescFromEnvFailed(e)

	setenv(t, "ID", id.String())
	setenv(t, "VERSION", "INVALID")
	_, e = fxapp.LoadDescFromEnv(nil)
	checkLoadDescFromEnvFailed(e)

	setenv(t, "VERSION", "0.1.0")
	setenv(t, "RELEASE_ID", "INVALID")
	_, e = fxapp.LoadDescFromEnv(nil)
	checkLoadDescFromEnvFailed(e)
}

// env vars override the fallback desc, field by field
func TestLoadDescFromEnv_Fallback(t *testing.T) {
	unsetenv("ID", "NAME", "VERSION", "RELEASE_ID")

	fallback := newDesc("template", "0.1.0")
	desc, err := fxapp.LoadDescFromEnv(fallback)
	switch {
	case err != nil:
		t.Fatalf("*** desc failed to load: %v", err)
	default:
		if desc.ID() != fallback.ID() || desc.ReleaseID() != fallback.ReleaseID() {
			t.Errorf("*** IDs should have been taken from the fallback: %v", desc)
		}
		if desc.Name() != "template" {
			t.Errorf("*** name should have been taken from the fallback: %v", desc.Name())
		}
	}

	setenv(t, "NAME", "foo")
	setenv(t, "VERSION", "1.2.3")
	desc, err = fxapp.LoadDescFromEnv(fallback)
	switch {
	case err != nil:
		t.Fatalf("*** desc failed to load: %v", err)
	default:
		t.Log(desc)
		if desc.Name() != "foo" {
			t.Errorf("*** name should have been loaded from the env: %v", desc.Name())
		}
		if !desc.Version().Equal(semver.MustParse("1.2.3")) {
			t.Errorf("*** version should have been loaded from the env: %v", desc.Version())
		}
		if desc.ID() != fallback.ID() {
			t.Error("*** ID should have been taken from the fallback")
		}
		if fallback.Name() != "template" {
			t.Errorf("*** the fallback should not have been modified: %v", fallback)
		}
	}
}
