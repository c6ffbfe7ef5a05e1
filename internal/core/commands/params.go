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
// shared context parameter names commands use to exchange data outside the
// chain's default CtxIn/CtxOut piping.
package commands

// Context parameter keys. Accessors rather than raw constants so callers in
// other packages (workflow, services) never hardcode the strings.
const (
	scriptRequestParamName   = "__script_request__"
	cameraMovementsParamName = "__camera_movements__"
)

// GetScriptRequestParameterName returns the context key under which the
// normalized script request is stored for the whole chain.
func GetScriptRequestParameterName() string { return scriptRequestParamName }

// GetCameraMovementsParameterName returns the context key under which the
// assembler stores the sorted camera movements for the parse envelope.
func GetCameraMovementsParameterName() string { return cameraMovementsParamName }
