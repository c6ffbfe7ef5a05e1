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
// file defines the CueExtractor, which pulls non-dialogue production cues out
// of lines the dialogue extractor did not consume:
//
//   - Explicit markup: "SFX:"/"SOUND:" prefixes become sound effects and
//     "MUSIC:"/"BACKGROUND MUSIC:" prefixes become music cues, with the rest
//     of the line as the description.
//   - Camera movement: keyword families (zoom, pan, shot sizes, tracking,
//     angles, crane) matched against the whole line; the enclosing sentence
//     fragment is emitted, multiple matches per line are de-duplicated.
//   - Parenthetical and bracketed effects: "(...)" or "[...]" content that
//     carries a sound indicator becomes a sound effect; without one it is
//     pure actor direction and is discarded.
//   - Environment ambiance: location headings that name a known environment
//     emit that environment's fixed ambient sound bundle.
package screenplay

import (
	"regexp"
	"strings"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// cueMarkup maps an upper-case line prefix to the cue category it introduces.
type cueMarkup struct {
	Prefix string
	Music  bool
}

// cueMarkupPrefixes are tried in order; the longer "BACKGROUND MUSIC:" must
// precede "MUSIC:" so the full prefix is stripped.
var cueMarkupPrefixes = []cueMarkup{
	{Prefix: "BACKGROUND MUSIC:", Music: true},
	{Prefix: "MUSIC:", Music: true},
	{Prefix: "SFX:", Music: false},
	{Prefix: "SOUND:", Music: false},
}

// bracketGroupPattern captures "(...)" and "[...]" groups without nesting.
// Unmatched openers simply fail to match, which keeps the parser total on
// adversarial input.
var bracketGroupPattern = regexp.MustCompile(`\(([^()]*)\)|\[([^\[\]]*)]`)

// CueExtractor emits camera, sound and music cues at the scanner's current
// scene position. Durations come from the parse configuration so the audio
// collaborator always receives a concrete length.
type CueExtractor struct {
	soundDuration float64
	musicDuration float64
}

// NewCueExtractor constructs an extractor with the configured default
// durations for sound effects and music cues.
func NewCueExtractor(soundDuration, musicDuration float64) *CueExtractor {
	return &CueExtractor{soundDuration: soundDuration, musicDuration: musicDuration}
}

// ExtractMarkup recognizes explicit SFX/SOUND/MUSIC markup lines. Exactly one
// cue is produced per markup line; the scene's coverage bookkeeping prevents
// the fallback pass from generating a duplicate for the same category.
func (c *CueExtractor) ExtractMarkup(line string, pos model.ScenePosition, lineNo int) (sfx *model.SoundEffect, music *model.MusicCue, ok bool) {
	trimmed := strings.TrimLeft(strings.TrimSpace(line), "*#>- \t")
	upper := strings.ToUpper(trimmed)
	for _, markup := range cueMarkupPrefixes {
		if !strings.HasPrefix(upper, markup.Prefix) {
			continue
		}
		description := strings.TrimSpace(strings.Trim(trimmed[len(markup.Prefix):], "*# "))
		if description == "" {
			description = strings.ToLower(strings.TrimSuffix(markup.Prefix, ":"))
		}
		if markup.Music {
			return nil, &model.MusicCue{
				Scene:       pos,
				Description: description,
				Type:        ClassifyMood(description),
				Duration:    c.musicDuration,
				Line:        lineNo,
			}, true
		}
		return &model.SoundEffect{
			Description: description,
			Scene:       pos,
			Duration:    c.soundDuration,
			Line:        lineNo,
		}, nil, true
	}
	return nil, nil, false
}

// ExtractCameraMovements finds every camera-movement phrase in the line and
// returns the enclosing sentence fragment for each, de-duplicated in order of
// appearance.
func (c *CueExtractor) ExtractCameraMovements(line string, pos model.ScenePosition, lineNo int) []model.CameraMovement {
	lower := strings.ToLower(line)
	if _, found := cameraKeywordIn(lower); !found {
		return nil
	}

	var movements []model.CameraMovement
	seen := make(map[string]struct{})
	for _, fragment := range sentenceFragments(line) {
		if _, found := cameraKeywordIn(strings.ToLower(fragment)); !found {
			continue
		}
		description := strings.TrimSpace(fragment)
		if description == "" {
			continue
		}
		key := strings.ToLower(description)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		movements = append(movements, model.CameraMovement{
			Description: description,
			Scene:       pos,
			Line:        lineNo,
		})
	}
	return movements
}

// ExtractBracketedEffects scans "(...)" and "[...]" groups for sound
// indicators and emits a sound effect per matching group. Groups without a
// sound indicator are actor direction and produce nothing.
func (c *CueExtractor) ExtractBracketedEffects(line string, pos model.ScenePosition, lineNo int) []model.SoundEffect {
	var effects []model.SoundEffect
	for _, match := range bracketGroupPattern.FindAllStringSubmatch(line, -1) {
		content := match[1]
		if content == "" {
			content = match[2]
		}
		content = strings.TrimSpace(content)
		if content == "" || !containsSoundIndicator(content) {
			continue
		}
		effects = append(effects, model.SoundEffect{
			Description: content,
			Scene:       pos,
			Duration:    c.soundDuration,
			Line:        lineNo,
		})
	}
	return effects
}

// ExtractEnvironmentAmbience emits the fixed ambient bundle for a location
// heading that names a known environment. The cue lands on the scene position
// the heading just opened.
func (c *CueExtractor) ExtractEnvironmentAmbience(heading string, pos model.ScenePosition, lineNo int) (*model.SoundEffect, bool) {
	ambience, found := EnvironmentAmbience(heading)
	if !found {
		return nil, false
	}
	return &model.SoundEffect{
		Description: ambience,
		Scene:       pos,
		Duration:    c.soundDuration,
		Line:        lineNo,
	}, true
}

// sentenceFragments splits a line on sentence-ending punctuation, keeping the
// split cost linear. Fragments keep their internal punctuation and spacing.
func sentenceFragments(line string) []string {
	var fragments []string
	start := 0
	for i, r := range line {
		switch r {
		case '.', '!', '?', ';':
			if fragment := strings.TrimSpace(line[start:i]); fragment != "" {
				fragments = append(fragments, fragment)
			}
			start = i + 1
		}
	}
	if fragment := strings.TrimSpace(line[start:]); fragment != "" {
		fragments = append(fragments, fragment)
	}
	return fragments
}

// isCueMarkupKeyword reports whether a normalized candidate is explicit cue
// markup vocabulary rather than a possible character name.
func isCueMarkupKeyword(normalized string) bool {
	switch normalized {
	case "SFX", "SOUND", "MUSIC", "BACKGROUND MUSIC":
		return true
	}
	return false
}
