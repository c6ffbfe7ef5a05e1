// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testutil provides utility functions and sample scripts to support
// the application's test suite. It sets up a consistent test environment,
// loads test-specific configuration, and supplies representative script text
// in each of the formats the parser accepts.
package testutil

import (
	"log"
	"os"
	"testing"

	"github.com/jaycherian/go-script-timeline/internal/config"
)

// StateManager acts as a simple in-memory cache for the application
// configuration during test runs, so the TOML files are read once per suite.
type StateManager struct {
	config *config.Config
}

// state holds the singleton instance of StateManager.
var state = &StateManager{}

// HandleErr fails the test when err is not nil. A convenience to reduce
// boilerplate error checking in tests.
//
// Inputs:
//   - err: The error to check.
//   - t: The *testing.T object from the current test.
func HandleErr(err error, t *testing.T) {
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// SetupOS configures the environment variables the configuration loader
// depends on, directing it to the test configuration files under configs/.
//
// Returns:
//   - An error if setting any environment variable fails.
func SetupOS() (err error) {
	err = os.Setenv(config.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	// The loader will look for ".env.test.toml" for overrides.
	err = os.Setenv(config.EnvConfigRuntime, "test")
	return err
}

// GetConfig is a singleton accessor for the test configuration. It loads the
// TOML files once and caches the result for subsequent calls. This is the
// primary way tests should retrieve their configuration.
//
// Returns:
//   - A pointer to the loaded and cached config.Config struct.
func GetConfig() *config.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		cfg := config.NewConfig()
		config.LoadConfig(&cfg)
		state.config = cfg
	}
	return state.config
}

// GetTestScreenplayText returns a markdown-formatted screenplay in the
// cinematic style, the way a code-generation model typically emits one. It
// exercises act/scene markers, location headings, character cues with
// parenthetical extensions, stage directions, and quoted continuation lines.
func GetTestScreenplayText() string {
	return `**ACT I - SCENE 1**

INT. LIVING ROOM - DAY

SARAH
(hesitant)
"I don't know if I can do this."

JOHN (V.O.)
"You've come too far to stop now."

[Sound of thunder rumbling in the distance]

The camera slowly zooms in on Sarah's face. Rain begins to fall outside the window.

**ACT I - SCENE 2**

EXT. CITY STREET - NIGHT

SFX: car horn blaring

SARAH
"Then let's finish it."
`
}

// GetTestNarrationText returns a plain narration passage with no dialogue
// markers, used to verify the narration style bypasses character matching.
func GetTestNarrationText() string {
	return `The old house stood at the end of the lane, its windows dark and silent.

Nobody in the village could remember who had lived there last, though every child knew the stories.

On the night of the storm, a single light appeared in the attic window for the first time in forty years.
`
}

// GetTestStatelessDialogueText returns prose-style dialogue in the quote-dash
// and says-quote formats, where each line carries its own attribution.
func GetTestStatelessDialogueText() string {
	return `SCENE 1

"We shouldn't be here" - Marcus

Elena says: "We have no choice anymore."

MUSIC: tense orchestral strings

"Then we go together" - Marcus
`
}

// GetTestRoster returns the character names matching the sample screenplay.
func GetTestRoster() []string {
	return []string{"Sarah", "John"}
}
