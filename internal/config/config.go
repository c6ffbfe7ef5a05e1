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

// Package config defines the data structures for application configuration,
// loaded from TOML files. It centralizes every configurable parameter of the
// parser service: the HTTP surface, the parse-rate quota, and the parser
// tuning knobs (size cap, narration threshold, default cue durations).
//
// Structs:
//   - Server: HTTP listener and request-quota settings.
//   - Parser: Tuning for the screenplay scan and fallback passes.
//   - Config: The top-level aggregate, with an [application] block for
//     general settings.
package config

// Server holds the HTTP listener and quota settings.
type Server struct {
	Port              int `toml:"port"`                // TCP port the gin server listens on.
	RequestsPerSecond int `toml:"requests_per_second"` // Parse-call quota enforced by the rate-limited service decorator.
}

// Parser holds the tuning knobs of the screenplay parser core.
type Parser struct {
	MaxScriptChars      int     `toml:"max_script_chars"`      // Rune cap on incoming scripts; oversize input is truncated with a diagnostic.
	NarrationMinChars   int     `toml:"narration_min_chars"`   // Minimum line length classified as narration in the narration style.
	SoundEffectDuration float64 `toml:"sound_effect_duration"` // Default duration, in seconds, for sound effects of unknown length.
	MusicDuration       float64 `toml:"music_duration"`        // Default duration, in seconds, for music cues of unknown length.
}

// Config represents the overall configuration for the application, loaded
// from TOML files. It acts as the root container for all other configuration
// structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name           string `toml:"name"`             // The name of the application, used in telemetry resource attributes.
		ThreadPoolSize int    `toml:"thread_pool_size"` // The worker-pool size for batch parsing.
	} `toml:"application"`
	Server Server `toml:"server"` // HTTP surface configuration.
	Parser Parser `toml:"parser"` // Parser tuning configuration.
}

// NewConfig creates a Config populated with the defaults the service falls
// back to when the TOML files omit a value.
func NewConfig() *Config {
	c := &Config{}
	c.Application.Name = "script-timeline-parser"
	c.Application.ThreadPoolSize = 4
	c.Server.Port = 8080
	c.Server.RequestsPerSecond = 10
	c.Parser.MaxScriptChars = 200_000
	c.Parser.NarrationMinChars = 20
	c.Parser.SoundEffectDuration = 5
	c.Parser.MusicDuration = 30
	return c
}
