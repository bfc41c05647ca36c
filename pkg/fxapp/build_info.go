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
	"github.com/rs/zerolog"
	"runtime/debug"
)

// BuildInfo identifies what the running binary was built from: the main module, the Go toolchain, the VCS revision
// and the resolved dependencies. It is attached to the app initialized event under the "build" key.
type BuildInfo struct {
	Path      string
	GoVersion string
	Main      Module
	VCS       VCS
	Deps      []Module
}

// VCS holds the version control stamp, which is only present when the binary was built from a checkout
type VCS struct {
	Revision string
	Time     string
	Modified bool
}

// Module is a module as it was resolved into the build
type Module struct {
	Path     string
	Version  string
	Checksum string
}

// ReadBuildInfo returns the running binary's build info. It fails for binaries built without module support.
func ReadBuildInfo() (*BuildInfo, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, errors.New("binary was built without module support")
	}
	buildInfo := &BuildInfo{
		Path:      info.Path,
		GoVersion: info.GoVersion,
		Main:      NewModule(&info.Main),
		Deps:      make([]Module, len(info.Deps)),
	}
	for i, dep := range info.Deps {
		buildInfo.Deps[i] = NewModule(dep)
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			buildInfo.VCS.Revision = setting.Value
		case "vcs.time":
			buildInfo.VCS.Time = setting.Value
		case "vcs.modified":
			buildInfo.VCS.Modified = setting.Value == "true"
		}
	}
	return buildInfo, nil
}

// NewModule follows a replace directive, if any, so that the module that was actually compiled in is reported
func NewModule(m *debug.Module) Module {
	for m.Replace != nil {
		m = m.Replace
	}
	return Module{Path: m.Path, Version: m.Version, Checksum: m.Sum}
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (b *BuildInfo) MarshalZerologObject(e *zerolog.Event) {
	deps := zerolog.Arr()
	for i := range b.Deps {
		deps.Object(b.Deps[i])
	}
	build := zerolog.Dict().
		Str("path", b.Path).
		Str("go", b.GoVersion).
		Object("main", b.Main).
		Array("deps", deps)
	if b.VCS.Revision != "" {
		build.Dict("vcs", zerolog.Dict().
			Str("revision", b.VCS.Revision).
			Str("time", b.VCS.Time).
			Bool("modified", b.VCS.Modified))
	}
	e.Dict("build", build)
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler interface
func (m Module) MarshalZerologObject(e *zerolog.Event) {
	e.Str("path", m.Path).
		Str("version", m.Version).
		Str("checksum", m.Checksum)
}
