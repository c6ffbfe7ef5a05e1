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
// This file contains the input-side types: the character roster, the optional
// per-scene production metadata, and the script style selector. These arrive
// from the upstream script- and plot-generation collaborators and are never
// validated beyond what the parser needs, because the parser must be total
// over arbitrary input.
package model

import "strings"

// Style selects which top-level parsing strategy governs the scan. The
// dialogue-aware styles run the character/dialogue heuristics; the narration
// style suppresses the dialogue-continuation heuristic and classifies long
// descriptive lines as narrator segments instead.
type Style string

const (
	StyleCinematicMovie Style = "cinematic_movie"
	StyleCinematic      Style = "cinematic"
	StyleNarration      Style = "narration"
	StyleOther          Style = "other"
)

// ParseStyle maps a free-form style string from the request to a known Style.
// Unknown values fall back to StyleOther, which behaves like the cinematic
// styles; the parser never rejects a request over an unrecognized style.
func ParseStyle(in string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(in))) {
	case StyleCinematicMovie:
		return StyleCinematicMovie
	case StyleCinematic:
		return StyleCinematic
	case StyleNarration:
		return StyleNarration
	default:
		return StyleOther
	}
}

// Narration reports whether the style uses the prose-narration strategy.
func (s Style) Narration() bool { return s == StyleNarration }

// ScriptRequest is the input contract of one parse call, as received from
// the upstream script- and character-generation collaborators. ScriptText is
// arbitrary unvalidated UTF-8.
type ScriptRequest struct {
	ScriptText    string          `json:"script_text"`
	Characters    []string        `json:"characters"`
	SceneMetadata []SceneMetadata `json:"scene_metadata,omitempty"`
	Style         string          `json:"style,omitempty"`
}

// SceneMetadata is externally supplied production metadata for one scene.
// It is used only by the fallback pass when present and is never required
// for correctness.
type SceneMetadata struct {
	SceneNumber       int    `json:"scene_number"`
	Location          string `json:"location"`
	VisualDescription string `json:"visual_description"`
	AudioRequirements string `json:"audio_requirements"`
}

// Roster is the closed, ordered set of known character names for one parse
// call. Identity is case-insensitive and duplicates are dropped, keeping the
// first spelling supplied by the caller as canonical.
type Roster struct {
	names []string
	index map[string]string // upper-cased name -> canonical spelling
}

// NewRoster builds a Roster from the caller-supplied name list. Empty and
// whitespace-only entries are ignored.
func NewRoster(names []string) *Roster {
	r := &Roster{
		names: make([]string, 0, len(names)),
		index: make(map[string]string, len(names)),
	}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToUpper(name)
		if _, ok := r.index[key]; ok {
			continue
		}
		r.index[key] = name
		r.names = append(r.names, name)
	}
	return r
}

// Names returns the canonical names in their original order.
func (r *Roster) Names() []string { return r.names }

// Len returns the number of distinct characters in the roster.
func (r *Roster) Len() int { return len(r.names) }

// Canonical returns the canonical spelling for a case-insensitive name lookup.
func (r *Roster) Canonical(name string) (string, bool) {
	canon, ok := r.index[strings.ToUpper(strings.TrimSpace(name))]
	return canon, ok
}
