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

// Package screenplay_test contains the test suite for the parser core. This
// file tests the scene segmenter: marker recognition and the scene-position
// state machine.
package screenplay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/core/screenplay"
)

// TestSegmenterDefaultPosition verifies that a script with no markers is a
// single scene at position (1, 0).
func TestSegmenterDefaultPosition(t *testing.T) {
	s := screenplay.NewSceneSegmenter()
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 0}, s.Position())

	kind, pos := s.Observe("Just an ordinary prose line.")
	assert.Equal(t, screenplay.MarkerNone, kind)
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 0}, pos)
}

// TestSegmenterActSceneMarkers verifies ACT/SCENE headings in the markup
// variants LLM output produces, including roman and arabic act numerals.
func TestSegmenterActSceneMarkers(t *testing.T) {
	cases := []string{
		"**ACT I - SCENE 1**",
		"ACT 2 - SCENE 3",
		"# act iv : scene 2",
		"> ACT I — SCENE 1",
		"ACT I. SCENE 4",
	}
	for _, line := range cases {
		s := screenplay.NewSceneSegmenter()
		kind, pos := s.Observe(line)
		assert.Equal(t, screenplay.MarkerActScene, kind, "line: %s", line)
		assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 0}, pos, "line: %s", line)
	}
}

// TestSegmenterSubSceneNumbering verifies the numbering the downstream
// pipeline was built against: the first location heading after an ACT marker
// lands on sub-scene 1, and only a heading that opens an unmarked script
// lands on sub-scene 0.
func TestSegmenterSubSceneNumbering(t *testing.T) {
	s := screenplay.NewSceneSegmenter()

	_, pos := s.Observe("**ACT I - SCENE 1**")
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 0}, pos)

	kind, pos := s.Observe("INT. LIVING ROOM - DAY")
	assert.Equal(t, screenplay.MarkerLocation, kind)
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 1}, pos)

	_, pos = s.Observe("EXT. GARDEN - DAY")
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 2}, pos)

	// The next ACT marker resets the sub-scene.
	_, pos = s.Observe("**ACT I - SCENE 2**")
	assert.Equal(t, model.ScenePosition{SceneNumber: 2, SubScene: 0}, pos)
}

// TestSegmenterUnmarkedScriptFirstHeading verifies that the first heading of
// a script with no ACT markers opens scene 1 at sub-scene 0.
func TestSegmenterUnmarkedScriptFirstHeading(t *testing.T) {
	s := screenplay.NewSceneSegmenter()

	kind, pos := s.Observe("INT. KITCHEN - NIGHT")
	assert.Equal(t, screenplay.MarkerLocation, kind)
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 0}, pos)

	_, pos = s.Observe("ext. street - night")
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 1}, pos)
}

// TestSegmenterLegacySceneMarker verifies the bare "SCENE n" form advances
// the scene counter the same way an ACT marker does.
func TestSegmenterLegacySceneMarker(t *testing.T) {
	s := screenplay.NewSceneSegmenter()

	kind, pos := s.Observe("SCENE 1")
	assert.Equal(t, screenplay.MarkerLegacyScene, kind)
	assert.Equal(t, model.ScenePosition{SceneNumber: 1, SubScene: 0}, pos)

	kind, pos = s.Observe("**Scene 2**")
	assert.Equal(t, screenplay.MarkerLegacyScene, kind)
	assert.Equal(t, model.ScenePosition{SceneNumber: 2, SubScene: 0}, pos)
}

// TestSegmenterMonotonicSceneNumbers verifies that the scene number never
// decreases regardless of the numerals printed inside the markers.
func TestSegmenterMonotonicSceneNumbers(t *testing.T) {
	s := screenplay.NewSceneSegmenter()
	lines := []string{
		"ACT I - SCENE 9",
		"INT. HALL - DAY",
		"SCENE 1", // Printed numeral goes backwards; the counter must not.
		"ACT II - SCENE 2",
	}
	last := model.ScenePosition{}
	for _, line := range lines {
		_, pos := s.Observe(line)
		assert.False(t, pos.Before(last), "position regressed at %q", line)
		last = pos
	}
	assert.Equal(t, 3, last.SceneNumber)
}

// TestSegmenterNonMarkers verifies lines that must not be mistaken for
// structural markers.
func TestSegmenterNonMarkers(t *testing.T) {
	cases := []string{
		"The interior was dark.",       // "int" inside a word.
		"SARAH",                        // Character cue.
		"She walked into the scene 3.", // "scene 3" mid-sentence.
		"",
	}
	for _, line := range cases {
		s := screenplay.NewSceneSegmenter()
		kind, _ := s.Observe(line)
		assert.Equal(t, screenplay.MarkerNone, kind, "line: %q", line)
	}
}

// TestLocationText verifies prefix and markup stripping for the ambience
// extractor.
func TestLocationText(t *testing.T) {
	assert.Equal(t, "LIVING ROOM - DAY", screenplay.LocationText("INT. LIVING ROOM - DAY"))
	assert.Equal(t, "FOREST - NIGHT", screenplay.LocationText("**EXT. FOREST - NIGHT**"))
	assert.Equal(t, "SHIP DECK", screenplay.LocationText("int./ext. SHIP DECK"))
}
