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

// ulid prints new ULIDs, or decodes an existing one.
//
// The app descriptor IDs (APPX12_ID, APPX12_RELEASE_ID) are ULIDs. Use this tool to mint them:
//
//	ulid           one new ULID
//	ulid -n 2      two ULIDs, in increasing order
//	ulid -p ID -v  validate ID and show when it was minted
package main

import (
	"flag"
	"fmt"
	"github.com/oklog/ulid"
	"github.com/oysterpack/apptemplate/pkg/ulids"
	"io"
	"log"
	"os"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("ulid", flag.ContinueOnError)
	flags.SetOutput(out)
	parse := flags.String("p", "", "decode and validate the given ULID instead of minting one")
	count := flags.Uint("n", 1, "number of ULIDs to mint")
	verbose := flags.Bool("v", false, "also print the ULID timestamp and entropy")
	flags.Usage = func() {
		fmt.Fprintln(out, "usage: ulid [-n count | -p ULID] [-v]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	w := writer{out, *verbose}
	if *parse != "" {
		id, err := ulids.Parse(*parse)
		if err != nil {
			return err
		}
		w.write(id)
		return nil
	}

	next := ulids.MonotonicGenerator()
	for i := uint(0); i < *count; i++ {
		w.write(next())
	}
	return nil
}

type writer struct {
	out     io.Writer
	verbose bool
}

func (w writer) write(id ulid.ULID) {
	if !w.verbose {
		fmt.Fprintln(w.out, id)
		return
	}
	fmt.Fprintf(w.out, "%v time=%s entropy=%x\n", id, ulid.Time(id.Time()).UTC().Format("2006-01-02T15:04:05.000Z07:00"), id.Entropy())
}
