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

// Package screenplay implements the screenplay-to-timeline parser core. This
// file defines the FallbackGenerator, the second-tier heuristic layer that
// runs after the linear scan and guarantees per-scene cue coverage: every
// distinct scene position that appears in the output gets at least one music
// cue, and symmetrically at least one sound effect.
//
// The two-tier policy, applied independently per scene position:
//  1. If scene metadata exists and its audio requirements mention music
//     vocabulary, the requirements become the music cue and its mood.
//  2. Otherwise the mood is inferred from the scene's visual description.
//  3. With no metadata at all, a fixed ambient default is emitted.
//
// The same ladder drives missing sound effects through the independent sound
// taxonomy, ending at the "ambient room tone" default. Repairs are silent and
// deterministic; they are coverage guarantees, not errors.
package screenplay

import (
	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// FallbackGenerator synthesizes the cues a scene is missing after the scan.
type FallbackGenerator struct {
	metadata      map[int]model.SceneMetadata
	soundDuration float64
	musicDuration float64
}

// ambientMusicDefault is the description used when a scene needs music and no
// metadata suggests anything better.
const ambientMusicDefault = "soft ambient background music"

// NewFallbackGenerator builds a generator over the caller-supplied scene
// metadata. Metadata is keyed by scene number only; every sub-scene of a
// scene shares its parent's metadata. Later duplicates for the same scene
// number are ignored.
func NewFallbackGenerator(metadata []model.SceneMetadata, soundDuration, musicDuration float64) *FallbackGenerator {
	indexed := make(map[int]model.SceneMetadata, len(metadata))
	for _, meta := range metadata {
		if _, ok := indexed[meta.SceneNumber]; ok {
			continue
		}
		indexed[meta.SceneNumber] = meta
	}
	if soundDuration <= 0 {
		soundDuration = DefaultSoundEffectDuration
	}
	if musicDuration <= 0 {
		musicDuration = DefaultMusicDuration
	}
	return &FallbackGenerator{
		metadata:      indexed,
		soundDuration: soundDuration,
		musicDuration: musicDuration,
	}
}

// Fill appends generated music and sound cues to the scan result so that
// every observed scene position has coverage in both categories. Positions
// the scan never observed get nothing: an empty script stays empty.
func (g *FallbackGenerator) Fill(result *Result) {
	for _, pos := range result.Positions() {
		if !result.HasMusicAt(pos) {
			result.Music = append(result.Music, g.musicFor(pos))
		}
		if !result.HasSoundAt(pos) {
			result.SoundEffects = append(result.SoundEffects, g.soundFor(pos))
		}
	}
}

// musicFor applies the two-tier policy for one scene position.
func (g *FallbackGenerator) musicFor(pos model.ScenePosition) model.MusicCue {
	cue := model.MusicCue{
		Scene:       pos,
		Description: ambientMusicDefault,
		Type:        MoodAmbient,
		Duration:    g.musicDuration,
	}
	meta, ok := g.metadata[pos.SceneNumber]
	if !ok {
		return cue
	}
	if mentionsMusic(meta.AudioRequirements) {
		cue.Description = meta.AudioRequirements
		cue.Type = ClassifyMood(meta.AudioRequirements)
		return cue
	}
	if meta.VisualDescription != "" {
		cue.Type = ClassifyMood(meta.VisualDescription)
	}
	return cue
}

// soundFor applies the same ladder through the sound taxonomy.
func (g *FallbackGenerator) soundFor(pos model.ScenePosition) model.SoundEffect {
	effect := model.SoundEffect{
		Description: SoundAmbientDefault,
		Scene:       pos,
		Duration:    g.soundDuration,
	}
	meta, ok := g.metadata[pos.SceneNumber]
	if !ok {
		return effect
	}
	if meta.AudioRequirements != "" {
		effect.Description = SynthesizeSound(meta.AudioRequirements)
		return effect
	}
	if meta.VisualDescription != "" {
		effect.Description = SynthesizeSound(meta.VisualDescription)
	}
	return effect
}
