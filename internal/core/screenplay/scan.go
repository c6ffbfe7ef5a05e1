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
// file contains the single linear scan that drives everything: one pass over
// the script lines, with the scene segmenter, the dialogue extractor and the
// cue extractor interleaved as an ordered chain of classifiers. Priority is
// encoded by the order of the chain, not by nested conditionals:
//
//	blank -> scene marker -> explicit cue markup -> stateless dialogue
//	      -> character cue -> stage direction -> dialogue continuation
//	      -> camera/bracket cues -> narration
//
// The first classifier that consumes a line stops the chain for that line, so
// a line consumed as dialogue can never double as a cue or narration. All
// mutable scan state lives in an explicit ScanState value owned by the single
// Scan call; nothing is shared across invocations, which is what lets callers
// run many parses in parallel.
package screenplay

import (
	"strings"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// Config carries the tunable knobs of a scan. The zero value is usable; zero
// fields are replaced with the package defaults below.
type Config struct {
	Style               model.Style // Parsing strategy; narration suppresses the continuation heuristic.
	NarrationMinChars   int         // Minimum line length classified as a narrator segment in narration style.
	SoundEffectDuration float64     // Default duration, in seconds, for extracted and generated sound effects.
	MusicDuration       float64     // Default duration, in seconds, for extracted and generated music cues.
}

// Package defaults, applied when the caller leaves a Config field zero. The
// durations match what the audio collaborator has always assumed for cues of
// unknown length.
const (
	DefaultNarrationMinChars   = 20
	DefaultSoundEffectDuration = 5.0
	DefaultMusicDuration       = 30.0
)

func (c Config) withDefaults() Config {
	if c.Style == "" {
		c.Style = model.StyleOther
	}
	if c.NarrationMinChars <= 0 {
		c.NarrationMinChars = DefaultNarrationMinChars
	}
	if c.SoundEffectDuration <= 0 {
		c.SoundEffectDuration = DefaultSoundEffectDuration
	}
	if c.MusicDuration <= 0 {
		c.MusicDuration = DefaultMusicDuration
	}
	return c
}

// ScanState is the accumulator threaded through the fold over lines. Keeping
// it explicit (rather than as loop-local variables) makes each transition a
// small, auditable step and lets the tests drive single lines through the
// classifier chain.
type ScanState struct {
	// CurrentCharacter is the speaker buffered by a bare character-name line,
	// waiting for the following line to become its dialogue. Cleared on scene
	// transitions and after consumption; stage directions leave it intact.
	CurrentCharacter string
}

// Result collects everything one scan emitted, plus the ordered set of
// distinct scene positions observed, which the fallback pass walks for
// coverage.
type Result struct {
	Dialogues    []model.CharacterDialogue
	Narration    []model.NarratorSegment
	SoundEffects []model.SoundEffect
	Music        []model.MusicCue
	Camera       []model.CameraMovement

	// Unresolved counts dialogue-shaped lines whose speaker did not resolve
	// against the roster. The lines are dropped, never misattributed; the
	// count is surfaced as a diagnostic.
	Unresolved int

	positions    []model.ScenePosition
	positionSeen map[string]struct{}
}

func newResult() *Result {
	return &Result{positionSeen: make(map[string]struct{})}
}

// observe records a scene position the first time an entry lands on it.
func (r *Result) observe(pos model.ScenePosition) {
	key := pos.Key()
	if _, ok := r.positionSeen[key]; ok {
		return
	}
	r.positionSeen[key] = struct{}{}
	r.positions = append(r.positions, pos)
}

// Positions returns the distinct scene positions observed, in scan order
// (which is also scene order, because scene numbers are monotonic).
func (r *Result) Positions() []model.ScenePosition {
	return r.positions
}

// HasMusicAt reports whether the scan emitted a music cue at the position.
func (r *Result) HasMusicAt(pos model.ScenePosition) bool {
	for _, cue := range r.Music {
		if cue.Scene == pos {
			return true
		}
	}
	return false
}

// HasSoundAt reports whether the scan emitted a sound effect at the position.
func (r *Result) HasSoundAt(pos model.ScenePosition) bool {
	for _, effect := range r.SoundEffects {
		if effect.Scene == pos {
			return true
		}
	}
	return false
}

// Scan runs the linear pass over the script. It is total: any UTF-8 string,
// including empty and adversarial input, produces a Result without error. The
// scan is deterministic, so identical inputs always produce identical results.
func Scan(cfg Config, roster *model.Roster, scriptText string) *Result {
	cfg = cfg.withDefaults()

	segmenter := NewSceneSegmenter()
	matcher := NewCharacterNameMatcher(roster)
	dialogue := NewDialogueExtractor(matcher)
	cues := NewCueExtractor(cfg.SoundEffectDuration, cfg.MusicDuration)
	narration := cfg.Style.Narration()

	result := newResult()
	state := ScanState{}

	lines := strings.Split(scriptText, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(raw)

		// Blank lines reset the honorific prefix buffer only; the dialogue
		// continuation buffer and the scene position are untouched.
		if trimmed == "" {
			matcher.ClearPending()
			continue
		}

		// Structural markers advance the scene counter and clear all pending
		// speaker context.
		marker, pos := segmenter.Observe(trimmed)
		if marker != MarkerNone {
			state.CurrentCharacter = ""
			matcher.ClearPending()
			if marker == MarkerLocation {
				if ambience, ok := cues.ExtractEnvironmentAmbience(LocationText(trimmed), pos, lineNo); ok {
					result.SoundEffects = append(result.SoundEffects, *ambience)
					result.observe(pos)
				}
			}
			continue
		}

		// Explicit SFX/SOUND/MUSIC markup outranks the colon dialogue pattern;
		// otherwise "SFX: thunder" would be mistaken for an unresolvable
		// speaker and lost.
		if sfx, music, ok := cues.ExtractMarkup(trimmed, pos, lineNo); ok {
			if sfx != nil {
				result.SoundEffects = append(result.SoundEffects, *sfx)
			}
			if music != nil {
				result.Music = append(result.Music, *music)
			}
			result.observe(pos)
			continue
		}

		// Stateless dialogue patterns 1-4 take priority over the stateful
		// continuation rule.
		if attr, ok, unresolved := dialogue.Extract(trimmed); ok {
			result.Dialogues = append(result.Dialogues, model.CharacterDialogue{
				Character:  attr.Character,
				Text:       attr.Text,
				Scene:      pos,
				LineNumber: lineNo,
			})
			result.observe(pos)
			state.CurrentCharacter = ""
			continue
		} else if unresolved {
			result.Unresolved++
			continue
		}

		// A bare character-name line buffers the speaker for the next line.
		// The narration style has no dialogue blocks, so it skips this and
		// the continuation rule entirely.
		if !narration && IsCharacterCandidate(trimmed) {
			canon, matched, buffered := matcher.MatchLine(trimmed)
			if matched {
				state.CurrentCharacter = canon
				continue
			}
			if buffered {
				continue
			}
			// An all-caps line that is not a known character falls through to
			// the cue classifiers; it is usually a transition or action beat.
		}

		// Parenthetical-only stage directions go to the cue extractor and do
		// not break an in-progress dialogue continuation.
		if IsPureStageDirection(trimmed) {
			effects := cues.ExtractBracketedEffects(trimmed, pos, lineNo)
			for _, effect := range effects {
				result.SoundEffects = append(result.SoundEffects, effect)
				result.observe(pos)
			}
			continue
		}

		// Stateful continuation: the buffered speaker claims this line.
		// Structural keywords ("CUT TO:", "FADE OUT.") are never dialogue.
		if !narration && state.CurrentCharacter != "" && !isStructuralKeywordLine(trimmed) {
			result.Dialogues = append(result.Dialogues, model.CharacterDialogue{
				Character:  state.CurrentCharacter,
				Text:       StripQuotes(trimmed),
				Scene:      pos,
				LineNumber: lineNo,
			})
			result.observe(pos)
			state.CurrentCharacter = ""
			continue
		}

		// Remaining lines are action or prose: mine them for camera movements
		// and embedded bracketed effects.
		for _, movement := range cues.ExtractCameraMovements(trimmed, pos, lineNo) {
			result.Camera = append(result.Camera, movement)
			result.observe(pos)
		}
		for _, effect := range cues.ExtractBracketedEffects(trimmed, pos, lineNo) {
			result.SoundEffects = append(result.SoundEffects, effect)
			result.observe(pos)
		}

		// In narration style, long descriptive lines become narrator segments.
		if narration && len([]rune(trimmed)) >= cfg.NarrationMinChars {
			result.Narration = append(result.Narration, model.NarratorSegment{
				Text:       trimmed,
				Scene:      pos,
				LineNumber: lineNo,
			})
			result.observe(pos)
		}
	}

	return result
}
