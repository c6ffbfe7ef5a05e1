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
// coverage step: after the scan, every observed scene position must carry at
// least one music cue and one sound effect. The fallback generator fills the
// gaps from scene metadata when the caller supplied any, and from fixed
// ambient defaults otherwise. Repairs are silent; they are part of the output
// contract, not error conditions.
package commands

import (
	"fmt"

	"github.com/jaycherian/go-script-timeline/internal/core/cor"
	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/core/screenplay"
)

// FallbackGenerator is the command wrapping the per-scene coverage pass.
type FallbackGenerator struct {
	cor.BaseCommand
	soundEffectDuration float64
	musicDuration       float64
}

// NewFallbackGenerator is the constructor for the FallbackGenerator command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - soundEffectDuration: Duration in seconds for generated sound effects.
//   - musicDuration: Duration in seconds for generated music cues.
//
// Outputs:
//   - *FallbackGenerator: A pointer to the newly instantiated command.
func NewFallbackGenerator(name string, soundEffectDuration, musicDuration float64) *FallbackGenerator {
	return &FallbackGenerator{
		BaseCommand:         *cor.NewBaseCommand(name),
		soundEffectDuration: soundEffectDuration,
		musicDuration:       musicDuration,
	}
}

// IsExecutable additionally requires the script request parameter, which
// carries the scene metadata the generator reads.
func (f *FallbackGenerator) IsExecutable(context cor.Context) bool {
	return context != nil &&
		context.Get(f.GetInputParam()) != nil &&
		context.Get(GetScriptRequestParameterName()) != nil
}

// Execute fills coverage gaps on the scan result in place.
func (f *FallbackGenerator) Execute(context cor.Context) {
	result, ok := context.Get(f.GetInputParam()).(*screenplay.Result)
	if !ok {
		f.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(f.GetName(), fmt.Errorf("expected *screenplay.Result input"))
		return
	}
	request, ok := context.Get(GetScriptRequestParameterName()).(*model.ScriptRequest)
	if !ok {
		f.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(f.GetName(), fmt.Errorf("script request missing from context"))
		return
	}

	generator := screenplay.NewFallbackGenerator(
		request.SceneMetadata, f.soundEffectDuration, f.musicDuration)
	generator.Fill(result)

	f.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(f.GetOutputParam(), result)
	context.Add(cor.CtxOut, result)
}
