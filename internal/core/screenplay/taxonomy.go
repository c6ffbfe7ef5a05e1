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
// file holds the static keyword taxonomies the heuristic layers match against:
// mood families for music classification, environment families for ambient
// sound derived from scene headings, sound families for fallback effect
// synthesis, and camera-movement vocabulary. They are plain ordered tables so
// each can be tested and extended without touching the control flow that
// consumes it. Order matters: the first family whose keyword appears in the
// text wins.
package screenplay

import "strings"

// moodFamily associates a music mood classification with the vocabulary that
// implies it.
type moodFamily struct {
	Mood     string
	Keywords []string
}

// MoodAmbient is the default music classification when no mood vocabulary
// matches.
const MoodAmbient = "ambient"

// moodTaxonomy maps scene vocabulary to a music mood. Checked in order; the
// intense family is first because action vocabulary tends to co-occur with
// the softer families and should dominate them.
var moodTaxonomy = []moodFamily{
	{Mood: "intense", Keywords: []string{
		"fight", "battle", "chase", "explosion", "attack", "war", "danger",
		"tension", "urgent", "desperate", "violent", "storm the", "combat",
	}},
	{Mood: "romantic", Keywords: []string{
		"love", "kiss", "romantic", "tender", "embrace", "wedding", "intimate",
		"passion",
	}},
	{Mood: "melancholic", Keywords: []string{
		"sad", "grief", "mourning", "funeral", "tears", "loss", "lonely",
		"sorrow", "melancholy", "heartbreak",
	}},
	{Mood: "uplifting", Keywords: []string{
		"victory", "celebration", "triumph", "joy", "happy", "cheer",
		"reunion", "hope", "festival",
	}},
	{Mood: "mysterious", Keywords: []string{
		"mystery", "secret", "shadow", "whisper", "hidden", "strange",
		"eerie", "unknown", "suspicious", "dark corridor",
	}},
}

// ClassifyMood returns the mood family implied by the text, or MoodAmbient
// when nothing matches. Matching is case-insensitive substring containment,
// which keeps the whole pass linear in the input length.
func ClassifyMood(text string) string {
	lower := strings.ToLower(text)
	for _, family := range moodTaxonomy {
		for _, keyword := range family.Keywords {
			if strings.Contains(lower, keyword) {
				return family.Mood
			}
		}
	}
	return MoodAmbient
}

// environmentFamily pairs a location keyword with the fixed ambient sound
// bundle emitted when a scene heading mentions that environment.
type environmentFamily struct {
	Keyword  string
	Ambience string
}

// environmentTaxonomy drives ambient sound synthesis from INT./EXT. headings.
// First match wins, so more specific settings sit above generic ones.
var environmentTaxonomy = []environmentFamily{
	{Keyword: "forest", Ambience: "forest ambience with birdsong and rustling leaves"},
	{Keyword: "woods", Ambience: "forest ambience with birdsong and rustling leaves"},
	{Keyword: "ocean", Ambience: "ocean waves rolling onto the shore"},
	{Keyword: "beach", Ambience: "ocean waves rolling onto the shore"},
	{Keyword: "sea", Ambience: "ocean waves rolling onto the shore"},
	{Keyword: "tavern", Ambience: "tavern chatter with clinking mugs"},
	{Keyword: "castle", Ambience: "stone hall reverberation with distant torches"},
	{Keyword: "battle", Ambience: "battlefield clamor with clashing steel"},
	{Keyword: "rain", Ambience: "steady rainfall on rooftops"},
	{Keyword: "fire", Ambience: "crackling flames"},
	{Keyword: "city", Ambience: "city traffic and distant sirens"},
	{Keyword: "street", Ambience: "city traffic and distant sirens"},
	{Keyword: "market", Ambience: "busy market crowd murmur"},
	{Keyword: "night", Ambience: "night crickets and soft wind"},
	{Keyword: "mountain", Ambience: "high mountain wind"},
	{Keyword: "desert", Ambience: "dry desert wind over sand"},
	{Keyword: "river", Ambience: "river water flowing over rocks"},
	{Keyword: "cave", Ambience: "dripping water echoing in a cave"},
	{Keyword: "office", Ambience: "quiet office hum with keyboards"},
	{Keyword: "hospital", Ambience: "hospital corridor with faint monitors"},
	{Keyword: "school", Ambience: "school hallway chatter"},
	{Keyword: "church", Ambience: "vast church silence with faint echoes"},
}

// EnvironmentAmbience returns the ambient sound bundle for a scene heading,
// if the heading names a known environment.
func EnvironmentAmbience(heading string) (string, bool) {
	lower := strings.ToLower(heading)
	for _, family := range environmentTaxonomy {
		if strings.Contains(lower, family.Keyword) {
			return family.Ambience, true
		}
	}
	return "", false
}

// soundFamily pairs a sound keyword with the effect description synthesized
// by the fallback pass when a scene mentions that sound but carries no
// explicit markup.
type soundFamily struct {
	Keyword     string
	Description string
}

// SoundAmbientDefault is the room-tone effect used when a scene needs sound
// coverage and no sound vocabulary matches its metadata.
const SoundAmbientDefault = "ambient room tone"

// soundTaxonomy is the independent keyword table for fallback sound-effect
// synthesis.
var soundTaxonomy = []soundFamily{
	{Keyword: "explosion", Description: "distant explosion rumble"},
	{Keyword: "thunder", Description: "rolling thunder"},
	{Keyword: "door", Description: "door opening and closing"},
	{Keyword: "footsteps", Description: "footsteps on a hard floor"},
	{Keyword: "wind", Description: "wind gusting through the scene"},
	{Keyword: "rain", Description: "steady rainfall"},
	{Keyword: "fire", Description: "crackling fire"},
	{Keyword: "water", Description: "running water"},
	{Keyword: "crowd", Description: "crowd murmur"},
	{Keyword: "bell", Description: "bell tolling in the distance"},
	{Keyword: "glass", Description: "glass shattering"},
	{Keyword: "car", Description: "car engine passing by"},
	{Keyword: "horse", Description: "horse hooves on packed earth"},
	{Keyword: "birds", Description: "birds chirping"},
	{Keyword: "clock", Description: "clock ticking"},
	{Keyword: "phone", Description: "phone ringing"},
}

// SynthesizeSound returns the effect description implied by the text, or the
// room-tone default when nothing matches.
func SynthesizeSound(text string) string {
	lower := strings.ToLower(text)
	for _, family := range soundTaxonomy {
		if strings.Contains(lower, family.Keyword) {
			return family.Description
		}
	}
	return SoundAmbientDefault
}

// cameraFamily groups camera-movement vocabulary by movement type. The
// family name is not emitted today, but keeping the grouping makes the table
// self-documenting and lets the video collaborator bucket movements later.
type cameraFamily struct {
	Family   string
	Keywords []string
}

// cameraTaxonomy is matched against whole action lines. Multi-word phrases
// precede their single-word roots so the longest description is found first.
var cameraTaxonomy = []cameraFamily{
	{Family: "zoom", Keywords: []string{"zoom in", "zoom out", "zooms in", "zooms out", "zoom"}},
	{Family: "pan", Keywords: []string{"pan across", "pans across", "pan to", "pans to", "pan left", "pan right", "pan"}},
	{Family: "shot", Keywords: []string{
		"close-up", "close up", "wide shot", "medium shot", "long shot",
		"establishing shot", "aerial shot", "pov shot",
	}},
	{Family: "tracking", Keywords: []string{"tracking shot", "camera follows", "camera tracks", "dolly in", "dolly out", "dolly"}},
	{Family: "angle", Keywords: []string{"low angle", "high angle", "bird's eye", "birds eye", "over-the-shoulder", "dutch angle"}},
	{Family: "crane", Keywords: []string{"crane up", "crane down", "crane shot", "tilt up", "tilt down"}},
}

// cameraKeywordIn reports the first camera keyword present in the lower-cased
// line, if any.
func cameraKeywordIn(lower string) (string, bool) {
	for _, family := range cameraTaxonomy {
		for _, keyword := range family.Keywords {
			if strings.Contains(lower, keyword) {
				return keyword, true
			}
		}
	}
	return "", false
}

// soundIndicators are the markers that promote a parenthetical or bracketed
// stage direction to a sound effect.
var soundIndicators = []string{"sound", "noise", "music", "audio", "sfx"}

// containsSoundIndicator reports whether a stage direction carries sound
// vocabulary.
func containsSoundIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range soundIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// musicIndicators are the markers that let metadata audio requirements be
// interpreted as a music cue rather than plain sound design.
var musicIndicators = []string{"music", "score", "theme", "melody", "soundtrack", "orchestral", "song"}

// mentionsMusic reports whether metadata audio requirements describe music.
func mentionsMusic(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range musicIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
