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

// apptemplate is the bootstrap template for new apps. Once the app is ready, it logs an event per log level.
//
// Config is loaded from the env:
//
//   - APPX12_LOG_LEVEL - trace, debug, info, warn, error - default = info
//   - APPX12_START_TIMEOUT, APPX12_STOP_TIMEOUT - default = 15s
//   - APPX12_ID, APPX12_NAME, APPX12_VERSION, APPX12_RELEASE_ID - default to the template's descriptor
//
// Process args are passed through to the app unexamined.
package main

import (
	"github.com/Masterminds/semver"
	"github.com/oysterpack/apptemplate/internal/template"
	"github.com/oysterpack/apptemplate/pkg/fxapp"
	"github.com/oysterpack/apptemplate/pkg/ulids"
	"log"
	"os"
)

// template app identity, which apps copied from this template should replace
const (
	templateID        = "01DEDR4G5SVX0B3H2RKVG8NJ7Q"
	templateName      = "apptemplate"
	templateVersion   = "0.1.0"
	templateReleaseID = "01DEDR4G5T0W0JZ0A6Y0F1Q9ZB"
)

func templateDesc() (fxapp.Desc, error) {
	return fxapp.NewDescBuilder().
		SetID(ulids.MustParse(templateID)).
		SetName(templateName).
		SetVersion(semver.MustParse(templateVersion)).
		SetReleaseID(ulids.MustParse(templateReleaseID)).
		Build()
}

func main() {
	config, err := fxapp.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	fallback, err := templateDesc()
	if err != nil {
		log.Fatalf("invalid template descriptor: %v", err)
	}
	desc, err := fxapp.LoadDescFromEnv(fallback)
	if err != nil {
		log.Fatalf("failed to load app descriptor: %v", err)
	}

	app, err := fxapp.NewBuilder(desc).
		Configure(config).
		Args(os.Args[1:]...).
		Invoke(fxapp.UseAsStandardLoggerOutput).
		OnReady(template.LogReady).
		Build()
	if err != nil {
		// the init failure has been logged by the app
		os.Exit(1)
	}
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
