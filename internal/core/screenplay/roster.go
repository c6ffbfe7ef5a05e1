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
// file defines the CharacterNameMatcher: given an all-caps candidate line and
// the caller-supplied roster, decide whether the candidate denotes a known
// character and which canonical roster entry it resolves to.
//
// Matching policy, first match wins:
//  1. Exact case-insensitive equality with a roster entry.
//  2. Substring containment in either direction ("MRS. DURSLEY" vs.
//     "MRS. PETUNIA DURSLEY").
//  3. Word-subset match: every candidate token appears among the tokens of a
//     roster entry, title punctuation stripped.
//  4. Surname match: the final candidate token equals the final token of a
//     roster entry.
//
// A fixed deny-list of structural vocabulary (transitions, times of day,
// generic plural nouns, honorific-only tokens) is checked before any roster
// comparison and short-circuits to "not a character" regardless of overlap.
// Honorific-only lines ("MR.") are buffered and combined with the following
// candidate before re-running the match; the buffer clears on blank lines and
// scene transitions.
package screenplay

import (
	"strings"
	"unicode"
)

// denyList holds tokens and phrases that can never denote a character even
// when they overlap with roster entries. Keys are upper-case with title
// punctuation stripped.
var denyList = map[string]struct{}{
	// Scene transitions.
	"CUT TO": {}, "CUT": {}, "FADE IN": {}, "FADE OUT": {}, "FADE TO BLACK": {},
	"DISSOLVE TO": {}, "SMASH CUT": {}, "MATCH CUT": {}, "JUMP CUT": {},
	"INTERCUT": {}, "TITLE CARD": {}, "SUPER": {}, "THE END": {}, "END": {},
	// Structural keywords.
	"INT": {}, "EXT": {}, "SCENE": {}, "ACT": {}, "CONTINUED": {},
	"CONTINUOUS": {}, "LATER": {}, "MOMENTS LATER": {}, "FLASHBACK": {},
	"PRESENT DAY": {}, "MONTAGE": {},
	// Times of day seen in sluglines.
	"DAY": {}, "NIGHT": {}, "MORNING": {}, "AFTERNOON": {}, "EVENING": {},
	"DAWN": {}, "DUSK": {}, "SUNSET": {}, "SUNRISE": {}, "MIDNIGHT": {},
	// Generic plural nouns that read like group speakers.
	"CROWD": {}, "PEOPLE": {}, "EVERYONE": {}, "ALL": {}, "GUARDS": {},
	"SOLDIERS": {}, "VILLAGERS": {}, "STUDENTS": {}, "VOICES": {},
}

// honorifics are titles that may precede a name. A line consisting solely of
// honorifics is buffered rather than matched, because the name it belongs to
// usually arrives on the next line of LLM output.
var honorifics = map[string]struct{}{
	"MR": {}, "MRS": {}, "MS": {}, "MISS": {}, "DR": {}, "PROF": {},
	"PROFESSOR": {}, "SIR": {}, "LADY": {}, "LORD": {}, "CAPTAIN": {},
	"SERGEANT": {}, "GENERAL": {}, "FATHER": {}, "SISTER": {}, "AUNT": {},
	"UNCLE": {},
}

// rosterLookup is the minimal surface the matcher needs from the roster.
// Satisfied by *model.Roster.
type rosterLookup interface {
	Names() []string
	Canonical(name string) (string, bool)
}

// CharacterNameMatcher resolves candidate lines against a roster while
// tracking the pending honorific-prefix buffer across lines.
type CharacterNameMatcher struct {
	roster  rosterLookup
	pending string
}

// NewCharacterNameMatcher constructs a matcher over the given roster.
func NewCharacterNameMatcher(roster rosterLookup) *CharacterNameMatcher {
	return &CharacterNameMatcher{roster: roster}
}

// ClearPending drops any buffered honorific prefix. Called on blank lines and
// on scene transitions.
func (m *CharacterNameMatcher) ClearPending() {
	m.pending = ""
}

// MatchLine resolves a candidate line, applying the honorific-prefix buffer.
// The candidate must already be pre-filtered by the caller (upper-case,
// colon-free, not a structural keyword line). The boolean reports whether the
// line resolved to a character; a false return with buffered set means the
// line was an honorific-only prefix now waiting for its name.
func (m *CharacterNameMatcher) MatchLine(candidate string) (canonical string, matched bool, buffered bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", false, false
	}

	if m.pending != "" {
		combined := m.pending + " " + candidate
		m.pending = ""
		if canon, ok := m.Match(combined); ok {
			return canon, true, false
		}
		// The combined form failed; fall through and try the line alone.
	}

	if isHonorificOnly(candidate) {
		m.pending = candidate
		return "", false, true
	}

	canon, ok := m.Match(candidate)
	return canon, ok, false
}

// Match applies the four-tier matching policy to a single candidate without
// touching the prefix buffer.
func (m *CharacterNameMatcher) Match(candidate string) (string, bool) {
	normalized := normalizeCandidate(candidate)
	if normalized == "" {
		return "", false
	}
	if _, denied := denyList[normalized]; denied {
		return "", false
	}
	// An honorific with no name attached never resolves on its own, even when
	// it is a substring of a roster entry.
	if isHonorificOnly(normalized) {
		return "", false
	}

	// Tier 1: exact case-insensitive equality.
	if canon, ok := m.roster.Canonical(normalized); ok {
		return canon, true
	}

	candidateTokens := nameTokens(normalized)
	if len(candidateTokens) == 0 {
		return "", false
	}

	// Tier 2: substring containment in either direction.
	for _, name := range m.roster.Names() {
		upper := strings.ToUpper(name)
		if strings.Contains(upper, normalized) || strings.Contains(normalized, upper) {
			return name, true
		}
	}

	// Tier 3: every candidate token appears among a roster entry's tokens.
	for _, name := range m.roster.Names() {
		rosterTokens := tokenSet(nameTokens(strings.ToUpper(name)))
		allPresent := true
		for _, token := range candidateTokens {
			if _, ok := rosterTokens[token]; !ok {
				allPresent = false
				break
			}
		}
		if allPresent {
			return name, true
		}
	}

	// Tier 4: surname match on the final token.
	surname := candidateTokens[len(candidateTokens)-1]
	for _, name := range m.roster.Names() {
		rosterTokens := nameTokens(strings.ToUpper(name))
		if len(rosterTokens) > 0 && rosterTokens[len(rosterTokens)-1] == surname {
			return name, true
		}
	}

	return "", false
}

// IsCharacterCandidate reports whether a line passes the pre-filter for name
// matching: it contains letters, is entirely upper-case, carries no colon,
// and is short enough to plausibly be a name rather than a shouted action
// line. Parenthetical extensions like "(V.O.)" are tolerated.
func IsCharacterCandidate(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	if strings.ContainsRune(trimmed, ':') {
		return false
	}
	trimmed = stripNameExtensions(trimmed)
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// stripNameExtensions removes trailing screenplay extensions such as
// "(V.O.)", "(O.S.)" and "(CONT'D)" from a candidate name line.
func stripNameExtensions(candidate string) string {
	for {
		candidate = strings.TrimSpace(candidate)
		open := strings.LastIndex(candidate, "(")
		if open < 0 || !strings.HasSuffix(candidate, ")") {
			return candidate
		}
		candidate = candidate[:open]
	}
}

// normalizeCandidate upper-cases the candidate and strips markup, extensions
// and surrounding punctuation so the deny-list and tier-1 lookups see a clean
// form.
func normalizeCandidate(candidate string) string {
	candidate = stripNameExtensions(strings.TrimSpace(candidate))
	candidate = strings.Trim(candidate, "*#>-_ \t")
	return strings.ToUpper(strings.TrimSpace(candidate))
}

// nameTokens splits a normalized name into tokens with title punctuation
// stripped. "MRS. DURSLEY" becomes ["MRS", "DURSLEY"].
func nameTokens(name string) []string {
	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		field = strings.Trim(field, "'")
		if field != "" {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// tokenSet builds a membership set from a token slice.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// isStructuralKeywordLine reports whether a line is deny-listed structural
// vocabulary (transitions and the like), optionally followed by ":" or ".".
func isStructuralKeywordLine(line string) bool {
	normalized := normalizeCandidate(strings.TrimRight(strings.TrimSpace(line), ":."))
	_, denied := denyList[normalized]
	return denied
}

// isHonorificOnly reports whether every token of the candidate is a title.
func isHonorificOnly(candidate string) bool {
	tokens := nameTokens(normalizeCandidate(candidate))
	if len(tokens) == 0 {
		return false
	}
	for _, token := range tokens {
		if _, ok := honorifics[token]; !ok {
			return false
		}
	}
	return true
}
