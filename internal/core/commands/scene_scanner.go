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
// scan step: the single linear pass that runs the scene segmenter and the
// dialogue and cue classifiers over the normalized script.
//
// Logic Flow:
//  1. Receive the normalized *model.ScriptRequest from the previous command.
//  2. Build the roster from the request's character list and run
//     screenplay.Scan with this command's configured defaults and the style
//     the request selected.
//  3. Record an UnresolvedAttribution diagnostic when dialogue-shaped lines
//     could not be attributed; the lines themselves are already dropped by
//     the scan, never misattributed.
//  4. Pipe the *screenplay.Result to the fallback step.
package commands

import (
	"fmt"

	"github.com/jaycherian/go-script-timeline/internal/core/cor"
	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/core/screenplay"
)

// SceneScanner is the command that executes the linear scan.
type SceneScanner struct {
	cor.BaseCommand
	narrationMinChars   int
	soundEffectDuration float64
	musicDuration       float64
}

// NewSceneScanner is the constructor for the SceneScanner command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - narrationMinChars: Minimum line length treated as narration in the
//     narration style; zero selects the screenplay package default.
//   - soundEffectDuration: Default sound-effect duration in seconds.
//   - musicDuration: Default music-cue duration in seconds.
//
// Outputs:
//   - *SceneScanner: A pointer to the newly instantiated command.
func NewSceneScanner(name string, narrationMinChars int, soundEffectDuration, musicDuration float64) *SceneScanner {
	return &SceneScanner{
		BaseCommand:         *cor.NewBaseCommand(name),
		narrationMinChars:   narrationMinChars,
		soundEffectDuration: soundEffectDuration,
		musicDuration:       musicDuration,
	}
}

// Execute runs the scan and pipes its result to the next command.
func (s *SceneScanner) Execute(context cor.Context) {
	request, ok := context.Get(s.GetInputParam()).(*model.ScriptRequest)
	if !ok {
		s.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(s.GetName(), fmt.Errorf("expected *model.ScriptRequest input"))
		return
	}

	roster := model.NewRoster(request.Characters)
	result := screenplay.Scan(screenplay.Config{
		Style:               model.ParseStyle(request.Style),
		NarrationMinChars:   s.narrationMinChars,
		SoundEffectDuration: s.soundEffectDuration,
		MusicDuration:       s.musicDuration,
	}, roster, request.ScriptText)

	if result.Unresolved > 0 {
		context.AddWarning(fmt.Sprintf(
			"%d dialogue line(s) dropped: speaker not in roster", result.Unresolved))
	}

	s.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(s.GetOutputParam(), result)
	context.Add(cor.CtxOut, result)
}
