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
// file tests the fallback generator: the two-tier per-scene coverage policy.
package screenplay_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/core/screenplay"
)

// TestFallbackMetadataAudioRequirements verifies tier one: audio requirements
// that mention music vocabulary become the music cue verbatim, with the mood
// classified from the same text.
func TestFallbackMetadataAudioRequirements(t *testing.T) {
	result := scan(model.StyleCinematic, []string{"Sarah"}, "SCENE 1\nSARAH: It begins.")
	require.Empty(t, result.Music)

	metadata := []model.SceneMetadata{{
		SceneNumber:       1,
		AudioRequirements: "tense orchestral score under the chase",
	}}
	screenplay.NewFallbackGenerator(metadata, 5, 30).Fill(result)

	require.Len(t, result.Music, 1)
	assert.Equal(t, "tense orchestral score under the chase", result.Music[0].Description)
	assert.Equal(t, "intense", result.Music[0].Type)
	assert.Equal(t, 30.0, result.Music[0].Duration)

	// Sound coverage comes from the same requirements through the sound
	// taxonomy; "chase" has no sound family, so it lands on room tone.
	require.Len(t, result.SoundEffects, 1)
	assert.Equal(t, screenplay.SoundAmbientDefault, result.SoundEffects[0].Description)
}

// TestFallbackVisualDescription verifies tier two: without music vocabulary
// in the audio requirements, the mood comes from the visual description.
func TestFallbackVisualDescription(t *testing.T) {
	result := scan(model.StyleCinematic, []string{"Sarah"}, "SCENE 1\nSARAH: It begins.")

	metadata := []model.SceneMetadata{{
		SceneNumber:       1,
		VisualDescription: "A funeral procession in the rain, mourners in black",
	}}
	screenplay.NewFallbackGenerator(metadata, 5, 30).Fill(result)

	require.Len(t, result.Music, 1)
	assert.Equal(t, "melancholic", result.Music[0].Type)

	require.Len(t, result.SoundEffects, 1)
	assert.Equal(t, "steady rainfall", result.SoundEffects[0].Description)
}

// TestFallbackAmbientDefaults verifies tier three: no metadata at all yields
// the fixed ambient defaults.
func TestFallbackAmbientDefaults(t *testing.T) {
	result := scan(model.StyleCinematic, []string{"Sarah"}, "SCENE 1\nSARAH: It begins.")

	screenplay.NewFallbackGenerator(nil, 5, 30).Fill(result)

	require.Len(t, result.Music, 1)
	assert.Equal(t, "soft ambient background music", result.Music[0].Description)
	assert.Equal(t, screenplay.MoodAmbient, result.Music[0].Type)

	require.Len(t, result.SoundEffects, 1)
	assert.Equal(t, screenplay.SoundAmbientDefault, result.SoundEffects[0].Description)
	assert.Equal(t, 5.0, result.SoundEffects[0].Duration)
}

// TestFallbackCoverageAcrossScenes verifies every observed scene position
// gets both categories, and sub-scenes share their parent scene's metadata.
func TestFallbackCoverageAcrossScenes(t *testing.T) {
	text := strings.Join([]string{
		"ACT I - SCENE 1",
		"INT. OFFICE - DAY",
		"SARAH: Late again.",
		"ACT I - SCENE 2",
		"SARAH: Where were you?",
	}, "\n")
	result := scan(model.StyleCinematic, []string{"Sarah"}, text)

	metadata := []model.SceneMetadata{
		{SceneNumber: 1, AudioRequirements: "slow jazz soundtrack"},
		{SceneNumber: 2, VisualDescription: "a door slams in the hallway"},
	}
	screenplay.NewFallbackGenerator(metadata, 5, 30).Fill(result)

	for _, pos := range result.Positions() {
		assert.True(t, result.HasMusicAt(pos), "missing music at %v", pos)
		assert.True(t, result.HasSoundAt(pos), "missing sound at %v", pos)
	}

	// Scene 2's sound comes from its visual description through the sound
	// taxonomy.
	found := false
	for _, effect := range result.SoundEffects {
		if effect.Scene.SceneNumber == 2 && effect.Description == "door opening and closing" {
			found = true
		}
	}
	assert.True(t, found)
}

// TestFallbackDuplicateMetadataFirstWins verifies later duplicates for the
// same scene number are ignored.
func TestFallbackDuplicateMetadataFirstWins(t *testing.T) {
	result := scan(model.StyleCinematic, []string{"Sarah"}, "SCENE 1\nSARAH: It begins.")

	metadata := []model.SceneMetadata{
		{SceneNumber: 1, AudioRequirements: "soft piano music"},
		{SceneNumber: 1, AudioRequirements: "heavy metal music"},
	}
	screenplay.NewFallbackGenerator(metadata, 5, 30).Fill(result)

	require.Len(t, result.Music, 1)
	assert.Equal(t, "soft piano music", result.Music[0].Description)
}
