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

// Package model_test contains unit tests for the data models. This file tests
// the Timeline aggregate and the ScenePosition rendering the downstream
// collaborators depend on.
package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// TestScenePositionMarshal verifies the legacy decimal rendering: a bare
// scene number when the sub-scene is zero, "scene.sub" otherwise.
func TestScenePositionMarshal(t *testing.T) {
	out, err := json.Marshal(model.ScenePosition{SceneNumber: 1, SubScene: 0})
	assert.NoError(t, err)
	assert.Equal(t, "1", string(out))

	out, err = json.Marshal(model.ScenePosition{SceneNumber: 1, SubScene: 2})
	assert.NoError(t, err)
	assert.Equal(t, "1.2", string(out))

	out, err = json.Marshal(model.ScenePosition{SceneNumber: 3, SubScene: 1})
	assert.NoError(t, err)
	assert.Equal(t, "3.1", string(out))
}

// TestScenePositionBefore verifies the ordering used by every sort in the
// assembler: scene number first, then sub-scene.
func TestScenePositionBefore(t *testing.T) {
	a := model.ScenePosition{SceneNumber: 1, SubScene: 2}
	b := model.ScenePosition{SceneNumber: 2, SubScene: 0}
	c := model.ScenePosition{SceneNumber: 1, SubScene: 3}

	assert.True(t, a.Before(b))
	assert.True(t, a.Before(c))
	assert.False(t, b.Before(a))
	assert.False(t, a.Before(a))
}

// TestNewTimelineEmptyArrays verifies that an empty Timeline marshals as four
// empty arrays, never as nulls. The downstream collaborators index into the
// arrays unconditionally.
func TestNewTimelineEmptyArrays(t *testing.T) {
	timeline := model.NewTimeline()
	out, err := json.Marshal(timeline)
	assert.NoError(t, err)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(out, &decoded))
	for _, field := range []string{"narrator_segments", "character_dialogues", "sound_effects", "background_music"} {
		value, ok := decoded[field]
		assert.True(t, ok, "missing field %s", field)
		assert.NotNil(t, value, "field %s must be an array, not null", field)
	}
}

// TestTimelineFieldNames pins the exact JSON shape of each entry type. These
// names are the wire contract with the audio and video collaborators.
func TestTimelineFieldNames(t *testing.T) {
	timeline := model.NewTimeline()
	timeline.NarratorSegments = append(timeline.NarratorSegments, model.NarratorSegment{
		Text:       "The house stood silent.",
		Scene:      model.ScenePosition{SceneNumber: 1},
		LineNumber: 3,
	})
	timeline.CharacterDialogues = append(timeline.CharacterDialogues, model.CharacterDialogue{
		Character:  "Sarah",
		Text:       "Hello.",
		Scene:      model.ScenePosition{SceneNumber: 1, SubScene: 1},
		LineNumber: 5,
	})
	timeline.SoundEffects = append(timeline.SoundEffects, model.SoundEffect{
		Description: "rolling thunder",
		Scene:       model.ScenePosition{SceneNumber: 1, SubScene: 1},
		Duration:    5,
		Line:        7,
	})
	timeline.BackgroundMusic = append(timeline.BackgroundMusic, model.MusicCue{
		Scene:       model.ScenePosition{SceneNumber: 1, SubScene: 1},
		Description: "tense strings",
		Type:        "intense",
		Duration:    30,
		Line:        9,
	})

	out, err := json.Marshal(timeline)
	assert.NoError(t, err)
	payload := string(out)

	assert.Contains(t, payload, `"narrator_segments":[{"text":"The house stood silent.","scene":1,"line_number":3}]`)
	assert.Contains(t, payload, `"character":"Sarah"`)
	assert.Contains(t, payload, `"scene":1.1`)
	assert.Contains(t, payload, `"description":"rolling thunder"`)
	assert.Contains(t, payload, `"type":"intense"`)
	// The source line is internal bookkeeping and must never leak into the
	// handoff.
	assert.NotContains(t, payload, `"Line"`)
	assert.NotContains(t, payload, `"line":`)
}

// TestRoster verifies ordered, case-insensitive identity with the first
// supplied spelling kept as canonical.
func TestRoster(t *testing.T) {
	roster := model.NewRoster([]string{"Sarah", "JOHN", "sarah", "  ", "Mrs. Dursley"})

	assert.Equal(t, 3, roster.Len())
	assert.Equal(t, []string{"Sarah", "JOHN", "Mrs. Dursley"}, roster.Names())

	canon, ok := roster.Canonical("SARAH")
	assert.True(t, ok)
	assert.Equal(t, "Sarah", canon)

	canon, ok = roster.Canonical("mrs. dursley")
	assert.True(t, ok)
	assert.Equal(t, "Mrs. Dursley", canon)

	_, ok = roster.Canonical("Voldemort")
	assert.False(t, ok)
}

// TestParseStyle verifies the style mapping, including the fallback for
// unknown values.
func TestParseStyle(t *testing.T) {
	assert.Equal(t, model.StyleCinematicMovie, model.ParseStyle("cinematic_movie"))
	assert.Equal(t, model.StyleCinematic, model.ParseStyle("  Cinematic "))
	assert.Equal(t, model.StyleNarration, model.ParseStyle("NARRATION"))
	assert.Equal(t, model.StyleOther, model.ParseStyle("screenplay-3d"))
	assert.Equal(t, model.StyleOther, model.ParseStyle(""))

	assert.True(t, model.StyleNarration.Narration())
	assert.False(t, model.StyleCinematic.Narration())
}
