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

// Package model defines the core data structures for the screenplay parser.
// This file contains the Timeline aggregate and its entry types. The Timeline
// is the literal handoff format consumed by the downstream audio-synthesis and
// video-composition collaborators, so the JSON field names and the four
// top-level arrays must be preserved exactly as they appear here. Any change
// to these tags is a breaking change for the rest of the pipeline.
package model

import (
	"fmt"
	"strconv"
)

// ScenePosition identifies where in the script an entry occurs. SceneNumber is
// assigned by ACT/SCENE markers (or the first INT./EXT. heading when no marker
// exists) and is non-decreasing across a scan. SubScene resets to zero when
// SceneNumber increments and increments on each location heading encountered
// inside the same scene.
type ScenePosition struct {
	SceneNumber int `json:"-"` // The 1-based scene counter. Zero means "no scene observed yet".
	SubScene    int `json:"-"` // The 0-based sub-scene counter within the current scene.
}

// MarshalJSON renders the position as the legacy decimal scene number the
// pipeline expects: "1" for (1,0) and "1.2" for (1,2). Sub-scene numbers of
// ten and above collide with lower ones ("1.10" reads as "1.1" downstream);
// the pipeline has always had this property, so it is preserved rather than
// fixed here.
func (p ScenePosition) MarshalJSON() ([]byte, error) {
	if p.SubScene == 0 {
		return []byte(strconv.Itoa(p.SceneNumber)), nil
	}
	return []byte(fmt.Sprintf("%d.%d", p.SceneNumber, p.SubScene)), nil
}

// Before reports whether p orders strictly before o in scene order.
func (p ScenePosition) Before(o ScenePosition) bool {
	if p.SceneNumber != o.SceneNumber {
		return p.SceneNumber < o.SceneNumber
	}
	return p.SubScene < o.SubScene
}

// Key returns the decimal rendering of the position, used for per-scene
// coverage bookkeeping.
func (p ScenePosition) Key() string {
	if p.SubScene == 0 {
		return strconv.Itoa(p.SceneNumber)
	}
	return fmt.Sprintf("%d.%d", p.SceneNumber, p.SubScene)
}

// NarratorSegment is a span of descriptive prose attributed to the narrator.
// Only the narration style produces these; cinematic scripts leave the array
// empty.
type NarratorSegment struct {
	Text       string        `json:"text"`
	Scene      ScenePosition `json:"scene"`
	LineNumber int           `json:"line_number"` // 1-based line in the normalized script.
}

// CharacterDialogue is a single spoken line attributed to a roster character.
// Character always resolves to exactly one roster entry; candidates that do
// not resolve are dropped, never fabricated.
type CharacterDialogue struct {
	Character  string        `json:"character"`
	Text       string        `json:"text"`
	Scene      ScenePosition `json:"scene"`
	LineNumber int           `json:"line_number"`
}

// SoundEffect is a discrete sound cue. Duration is in seconds and defaults to
// a configured ambient value when the script gives no explicit length.
type SoundEffect struct {
	Description string        `json:"description"`
	Scene       ScenePosition `json:"scene"`
	Duration    float64       `json:"duration"`
	Line        int           `json:"-"` // Source line for stable ordering; zero for generated cues.
}

// MusicCue is a background-music cue. Type is the mood classification drawn
// from the mood taxonomy ("intense", "romantic", "melancholic", "uplifting",
// "mysterious", or the "ambient" default).
type MusicCue struct {
	Scene       ScenePosition `json:"scene"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Duration    float64       `json:"duration"`
	Line        int           `json:"-"`
}

// CameraMovement is a camera direction extracted from action lines. It is not
// part of the Timeline handoff; the video-composition collaborator receives it
// through the parse envelope instead.
type CameraMovement struct {
	Description string        `json:"description"`
	Scene       ScenePosition `json:"scene"`
	Line        int           `json:"-"`
}

// Timeline is the final output aggregate: four ordered sequences, each sorted
// primarily by scene position and then by source line. Every scene position
// that appears anywhere in the entries is guaranteed at least one MusicCue
// (inserted by the fallback pass when the script supplies none).
type Timeline struct {
	NarratorSegments   []NarratorSegment   `json:"narrator_segments"`
	CharacterDialogues []CharacterDialogue `json:"character_dialogues"`
	SoundEffects       []SoundEffect       `json:"sound_effects"`
	BackgroundMusic    []MusicCue          `json:"background_music"`
}

// NewTimeline constructs an empty Timeline with all four sequences initialized
// so an empty parse marshals as four empty arrays rather than nulls.
func NewTimeline() *Timeline {
	return &Timeline{
		NarratorSegments:   make([]NarratorSegment, 0),
		CharacterDialogues: make([]CharacterDialogue, 0),
		SoundEffects:       make([]SoundEffect, 0),
		BackgroundMusic:    make([]MusicCue, 0),
	}
}
