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

// Package commands provides the concrete Chain of Responsibility command
// implementations that make up the parse pipeline. This file defines the
// first step of the chain: normalizing the raw LLM script text before any
// classification runs.
//
// Logic Flow:
//  1. Receive the *model.ScriptRequest as the chain input.
//  2. Strip a UTF-8 BOM and normalize CRLF/CR line endings to LF so line
//     numbers are stable across generation backends.
//  3. Remove a single markdown code fence wrapping the whole script, which
//     LLM backends emit routinely even when told not to.
//  4. Enforce the configured size cap: oversize scripts are truncated at the
//     last whole line inside the cap and a diagnostic is recorded. The parser
//     itself is linear-time, so the cap exists to bound total work per call,
//     not to protect the matcher.
//  5. Store the normalized request both as the chain output and under the
//     script-request parameter, where later steps (fallback generation) can
//     reach the roster and scene metadata.
package commands

import (
	"fmt"
	"strings"

	"github.com/jaycherian/go-script-timeline/internal/core/cor"
	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// ScriptNormalizer is the command that prepares raw script text for the scan.
type ScriptNormalizer struct {
	cor.BaseCommand
	maxScriptChars int // Cap on script length in runes; zero disables the cap.
}

// NewScriptNormalizer is the constructor for the ScriptNormalizer command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - maxScriptChars: The rune cap applied to the script text; zero or
//     negative disables truncation.
//
// Outputs:
//   - *ScriptNormalizer: A pointer to the newly instantiated command.
func NewScriptNormalizer(name string, maxScriptChars int) *ScriptNormalizer {
	return &ScriptNormalizer{
		BaseCommand:    *cor.NewBaseCommand(name),
		maxScriptChars: maxScriptChars,
	}
}

// Execute normalizes the script text in place on the request.
func (s *ScriptNormalizer) Execute(context cor.Context) {
	request, ok := context.Get(s.GetInputParam()).(*model.ScriptRequest)
	if !ok {
		s.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(s.GetName(), fmt.Errorf("expected *model.ScriptRequest input"))
		return
	}

	text := request.ScriptText
	text = strings.TrimPrefix(text, "\uFEFF")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = stripCodeFence(text)

	if s.maxScriptChars > 0 {
		runes := []rune(text)
		if len(runes) > s.maxScriptChars {
			truncated := string(runes[:s.maxScriptChars])
			// Cut at the last whole line so the scan never sees a half line.
			if idx := strings.LastIndexByte(truncated, '\n'); idx > 0 {
				truncated = truncated[:idx]
			}
			context.AddWarning(fmt.Sprintf(
				"script truncated from %d to %d characters", len(runes), len([]rune(truncated))))
			text = truncated
		}
	}

	request.ScriptText = text

	s.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetScriptRequestParameterName(), request)
	context.Add(s.GetOutputParam(), request)
	context.Add(cor.CtxOut, request)
}

// stripCodeFence removes one markdown fence ("```" or "```text" style)
// wrapping the entire script. Fences inside the script body are left alone.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return text
	}
	firstBreak := strings.IndexByte(trimmed, '\n')
	if firstBreak < 0 {
		return text
	}
	rest := trimmed[firstBreak+1:]
	closing := strings.LastIndex(rest, "```")
	if closing < 0 {
		return text
	}
	return rest[:closing]
}
