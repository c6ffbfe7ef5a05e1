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
// file defines the TimelineAssembler: the top-level step that merges the scan
// and fallback outputs into the final Timeline, enforces stable ordering, and
// repairs (never fails on) the per-scene music-coverage invariant. An empty
// script assembles into a Timeline with four empty sequences.
package screenplay

import (
	"sort"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// Assemble sorts every sequence by (scene number, sub-scene, source line) and
// returns the sealed Timeline. Sorting is stable so entries from the same
// line keep their emission order. As a final safety net it re-checks music
// coverage and inserts an ambient default for any position that somehow
// slipped through the fallback pass.
func Assemble(result *Result, musicDuration float64) *model.Timeline {
	if musicDuration <= 0 {
		musicDuration = DefaultMusicDuration
	}

	// Repair pass: the coverage invariant must hold even if a caller skipped
	// the fallback generator.
	for _, pos := range result.Positions() {
		if !result.HasMusicAt(pos) {
			result.Music = append(result.Music, model.MusicCue{
				Scene:       pos,
				Description: ambientMusicDefault,
				Type:        MoodAmbient,
				Duration:    musicDuration,
			})
		}
	}

	timeline := model.NewTimeline()
	timeline.NarratorSegments = append(timeline.NarratorSegments, result.Narration...)
	timeline.CharacterDialogues = append(timeline.CharacterDialogues, result.Dialogues...)
	timeline.SoundEffects = append(timeline.SoundEffects, result.SoundEffects...)
	timeline.BackgroundMusic = append(timeline.BackgroundMusic, result.Music...)

	sort.SliceStable(timeline.NarratorSegments, func(i, j int) bool {
		a, b := timeline.NarratorSegments[i], timeline.NarratorSegments[j]
		if a.Scene != b.Scene {
			return a.Scene.Before(b.Scene)
		}
		return a.LineNumber < b.LineNumber
	})
	sort.SliceStable(timeline.CharacterDialogues, func(i, j int) bool {
		a, b := timeline.CharacterDialogues[i], timeline.CharacterDialogues[j]
		if a.Scene != b.Scene {
			return a.Scene.Before(b.Scene)
		}
		return a.LineNumber < b.LineNumber
	})
	sort.SliceStable(timeline.SoundEffects, func(i, j int) bool {
		a, b := timeline.SoundEffects[i], timeline.SoundEffects[j]
		if a.Scene != b.Scene {
			return a.Scene.Before(b.Scene)
		}
		return a.Line < b.Line
	})
	sort.SliceStable(timeline.BackgroundMusic, func(i, j int) bool {
		a, b := timeline.BackgroundMusic[i], timeline.BackgroundMusic[j]
		if a.Scene != b.Scene {
			return a.Scene.Before(b.Scene)
		}
		return a.Line < b.Line
	})

	return timeline
}

// SortCameraMovements orders camera movements for the parse envelope the same
// way the Timeline sequences are ordered.
func SortCameraMovements(movements []model.CameraMovement) {
	sort.SliceStable(movements, func(i, j int) bool {
		a, b := movements[i], movements[j]
		if a.Scene != b.Scene {
			return a.Scene.Before(b.Scene)
		}
		return a.Line < b.Line
	})
}
