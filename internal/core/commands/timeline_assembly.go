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
// final step: assembling the sorted, sealed Timeline from the scan result.
// The camera movements do not travel in the Timeline handoff, so the
// assembler parks them under their own context parameter for the service
// layer to place in the parse envelope.
package commands

import (
	"fmt"

	"github.com/jaycherian/go-script-timeline/internal/core/cor"
	"github.com/jaycherian/go-script-timeline/internal/core/screenplay"
)

// TimelineAssembly is the command that produces the final Timeline.
type TimelineAssembly struct {
	cor.BaseCommand
	musicDuration float64
}

// NewTimelineAssembly is the constructor for the TimelineAssembly command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - outputParamName: The context key where the Timeline will be stored.
//   - musicDuration: Duration in seconds for any coverage-repair music cue.
//
// Outputs:
//   - *TimelineAssembly: A pointer to the newly instantiated command.
func NewTimelineAssembly(name string, outputParamName string, musicDuration float64) *TimelineAssembly {
	out := &TimelineAssembly{
		BaseCommand:   *cor.NewBaseCommand(name),
		musicDuration: musicDuration,
	}
	out.OutputParamName = outputParamName
	return out
}

// Execute assembles and stores the Timeline.
func (t *TimelineAssembly) Execute(context cor.Context) {
	result, ok := context.Get(t.GetInputParam()).(*screenplay.Result)
	if !ok {
		t.GetErrorCounter().Add(context.GetContext(), 1)
		context.AddError(t.GetName(), fmt.Errorf("expected *screenplay.Result input"))
		return
	}

	timeline := screenplay.Assemble(result, t.musicDuration)
	screenplay.SortCameraMovements(result.Camera)

	t.GetSuccessCounter().Add(context.GetContext(), 1)
	context.Add(GetCameraMovementsParameterName(), result.Camera)
	context.Add(t.GetOutputParam(), timeline)
	context.Add(cor.CtxOut, timeline)
}
