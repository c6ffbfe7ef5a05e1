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

// Package config defines the application configuration. This file implements
// the hierarchical loader: a base configuration file is read first, and an
// environment-specific file (".env.local.toml", ".env.test.toml", ...) then
// overwrites its values. The directory prefix and the runtime name both come
// from environment variables, so deployments and the test suite can point at
// their own files without code changes.
package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Configuration loading constants: file naming convention and the
// environment variables that select the directory and runtime.
const (
	ConfigFileBaseName  = ".env"                    // Base name for configuration files (".env.toml").
	ConfigFileExtension = ".toml"                   // Extension for configuration files.
	ConfigSeparator     = "."                       // Separator in override names (".env.local.toml").
	EnvConfigFilePrefix = "SCRIPT_TIMELINE_CONFIG"  // Environment variable naming the config directory.
	EnvConfigRuntime    = "SCRIPT_TIMELINE_RUNTIME" // Environment variable naming the runtime ("local", "test", "prod").
)

// fileExists checks if a file or directory exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig populates baseConfig from the base TOML file and then merges the
// environment-specific override file on top of it. Missing files are skipped
// silently so a bare deployment runs entirely on NewConfig defaults; a file
// that exists but fails to decode is fatal, because running with half-applied
// configuration is worse than not starting.
func LoadConfig(baseConfig interface{}) {
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "test"
	}

	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode environment configuration file %s with error: %s", envConfigFileName, err)
		}
	}
}
