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

// Package workflow defines the high-level orchestrations that combine
// individual commands into coherent pipelines. This file implements the
// script-to-timeline workflow: the full transformation from raw LLM script
// text to the sealed Timeline handoff.
package workflow

import (
	"github.com/jaycherian/go-script-timeline/internal/config"
	"github.com/jaycherian/go-script-timeline/internal/core/commands"
	"github.com/jaycherian/go-script-timeline/internal/core/cor"
)

// TimelineOutputParamName is the context key under which the workflow's final
// Timeline is stored, so callers can fetch it after Execute returns.
const TimelineOutputParamName = "__timeline_output__"

// ScriptTimelineWorkflow orchestrates the entire parse of one script. It is
// structured as a Chain of Responsibility (cor.Chain) executing a fixed
// sequence of commands; each parse call gets its own cor.Context, so one
// workflow instance serves concurrent parses.
type ScriptTimelineWorkflow struct {
	cor.BaseCommand
	cfg   *config.Config
	chain cor.Chain // The underlying chain of commands to be executed.
}

// NewScriptTimelineWorkflow constructs the workflow from the application
// configuration.
//
// Inputs:
//   - cfg: The application configuration supplying the parser tuning knobs.
//
// Outputs:
//   - *ScriptTimelineWorkflow: The workflow, with its chain fully wired.
func NewScriptTimelineWorkflow(cfg *config.Config) *ScriptTimelineWorkflow {
	out := &ScriptTimelineWorkflow{
		BaseCommand: *cor.NewBaseCommand("script-timeline-workflow"),
		cfg:         cfg,
	}
	out.initializeChain()
	return out
}

// Execute runs the whole workflow by invoking the underlying chain. The
// context must carry a *model.ScriptRequest under cor.CtxIn.
func (w *ScriptTimelineWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

// initializeChain builds the command sequence. The output of each command is
// piped into the next by the chain, creating the processing pipeline.
func (w *ScriptTimelineWorkflow) initializeChain() {
	parser := w.cfg.Parser
	out := cor.NewBaseChain(w.GetName())

	// Step 1: Normalize the raw LLM text (BOM, line endings, markdown fence)
	// and enforce the configured size cap before any classification runs.
	out.AddCommand(commands.NewScriptNormalizer("normalize-script", parser.MaxScriptChars))

	// Step 2: The single linear scan. Scene segmentation, dialogue
	// attribution and cue extraction run interleaved over each line; the
	// priority between them is fixed by the classifier chain inside the scan.
	out.AddCommand(commands.NewSceneScanner("scan-scenes",
		parser.NarrationMinChars, parser.SoundEffectDuration, parser.MusicDuration))

	// Step 3: Per-scene coverage. Every scene position the scan observed gets
	// at least one music cue and one sound effect, synthesized from scene
	// metadata when available and from ambient defaults otherwise.
	out.AddCommand(commands.NewFallbackGenerator("generate-fallback-cues",
		parser.SoundEffectDuration, parser.MusicDuration))

	// Step 4: Sort everything by scene position and source line and seal the
	// Timeline. The result lands under TimelineOutputParamName.
	out.AddCommand(commands.NewTimelineAssembly("assemble-timeline",
		TimelineOutputParamName, parser.MusicDuration))

	w.chain = out
}
