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
// file defines the SceneSegmenter, which recognizes the structural markers
// that advance the scene counter during the single linear scan.
//
// Marker priority:
//  1. "ACT <roman-or-digit> - SCENE <n>" lines (tolerant of leading markup
//     such as "**" or "#") increment the scene number and reset the sub-scene.
//  2. Lines beginning with "INT." or "EXT." are location headings. The first
//     heading in a script with no ACT marker becomes scene 1; afterwards each
//     heading increments the sub-scene within the current scene. This means
//     the first heading following an ACT marker lands on sub-scene 1, not 0.
//     The downstream pipeline was built against that numbering, so it is kept.
//  3. Bare "SCENE <n>" lines are a legacy marker form, treated like (1).
//
// A script with no markers at all is a single scene: position (1, 0).
package screenplay

import (
	"regexp"
	"strings"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// MarkerKind classifies a line's structural role.
type MarkerKind int

const (
	// MarkerNone means the line is not a structural marker and inherits the
	// current scene position.
	MarkerNone MarkerKind = iota
	// MarkerActScene is an "ACT x - SCENE y" heading.
	MarkerActScene
	// MarkerLegacyScene is a bare "SCENE y" heading kept for backward
	// compatibility with earlier prompt templates.
	MarkerLegacyScene
	// MarkerLocation is an "INT." or "EXT." slugline.
	MarkerLocation
)

// Both patterns anchor at the start of the line and contain no nested
// quantifiers, so matching stays linear in the line length.
var (
	actSceneMarkerPattern = regexp.MustCompile(`(?i)^[*#>\-\s]*ACT\s+(?:[IVXLCDM]+|\d+)\s*[-–—:.]\s*SCENE\s+\d+`)
	legacySceneMarkerPattern = regexp.MustCompile(`(?i)^[*#>\-\s]*SCENE\s+\d+\b`)
)

// SceneSegmenter tracks the scene position across a linear scan of the
// script. The zero value is ready to use: no scene has been observed and the
// position reports (0, 0) until the first marker or, failing that, is defaulted
// to (1, 0) by Position.
type SceneSegmenter struct {
	position   model.ScenePosition
	seenMarker bool
}

// NewSceneSegmenter returns a segmenter at the start-of-script state.
func NewSceneSegmenter() *SceneSegmenter {
	return &SceneSegmenter{}
}

// Observe classifies one line and advances the scene counter when the line is
// a structural marker. It returns the marker classification and the scene
// position in effect after the line. Callers must clear any pending speaker
// state whenever the returned kind is not MarkerNone.
func (s *SceneSegmenter) Observe(line string) (MarkerKind, model.ScenePosition) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return MarkerNone, s.Position()
	}

	if actSceneMarkerPattern.MatchString(trimmed) {
		s.position.SceneNumber++
		s.position.SubScene = 0
		s.seenMarker = true
		return MarkerActScene, s.Position()
	}

	if isLocationHeading(trimmed) {
		if !s.seenMarker {
			// The first heading of an unmarked script opens scene 1.
			s.position = model.ScenePosition{SceneNumber: 1, SubScene: 0}
			s.seenMarker = true
		} else {
			s.position.SubScene++
		}
		return MarkerLocation, s.Position()
	}

	if legacySceneMarkerPattern.MatchString(trimmed) {
		s.position.SceneNumber++
		s.position.SubScene = 0
		s.seenMarker = true
		return MarkerLegacyScene, s.Position()
	}

	return MarkerNone, s.Position()
}

// Position returns the scene position currently in effect. Before any marker
// has been observed the entire script is scene 1, sub-scene 0.
func (s *SceneSegmenter) Position() model.ScenePosition {
	if !s.seenMarker {
		return model.ScenePosition{SceneNumber: 1, SubScene: 0}
	}
	return s.position
}

// isLocationHeading reports whether the line is an INT./EXT. slugline. Leading
// markup characters are tolerated the same way as for ACT markers, and the
// comparison is case-insensitive because LLM output is inconsistent about it.
func isLocationHeading(trimmed string) bool {
	stripped := strings.TrimLeft(trimmed, "*#>- \t")
	upper := strings.ToUpper(stripped)
	return strings.HasPrefix(upper, "INT.") ||
		strings.HasPrefix(upper, "EXT.") ||
		strings.HasPrefix(upper, "INT/EXT.") ||
		strings.HasPrefix(upper, "INT./EXT.")
}

// LocationText returns the heading with its INT./EXT. prefix and leading
// markup removed, for use by the environment-ambience extractor.
func LocationText(line string) string {
	stripped := strings.TrimLeft(strings.TrimSpace(line), "*#>- \t")
	upper := strings.ToUpper(stripped)
	for _, prefix := range []string{"INT./EXT.", "INT/EXT.", "INT.", "EXT."} {
		if strings.HasPrefix(upper, prefix) {
			return strings.TrimSpace(strings.Trim(stripped[len(prefix):], "*# "))
		}
	}
	return strings.TrimSpace(strings.Trim(stripped, "*# "))
}
