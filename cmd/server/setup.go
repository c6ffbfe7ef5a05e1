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

// Package main contains the setup and initialization logic for the server's
// state. This file creates a centralized state manager holding the shared
// dependencies: the configuration and the rate-limited parser service.
//
// Functions:
//   - SetupOS: Configures the environment variables pointing the loader at
//     the correct configuration files.
//   - GetConfig: A singleton accessor that loads the application
//     configuration from TOML files exactly once.
//   - InitState: Creates the parser service and wraps it with the quota
//     decorator per the configured request rate.
package main

import (
	"log"
	"os"

	"github.com/jaycherian/go-script-timeline/internal/config"
	"github.com/jaycherian/go-script-timeline/internal/core/services"
)

// StateManager holds the shared dependencies for the server, acting as a
// centralized container so handlers do not reach for globals individually.
type StateManager struct {
	config  *config.Config
	parser  *services.QuotaAwareParser
	service *services.ParserService
}

// state is the single instance of StateManager for the process.
var state = &StateManager{}

// SetupOS sets the environment variables the configuration loader uses to
// find the TOML files. The runtime defaults to "local"; the loader looks for
// a ".env.local.toml" file to override base settings.
//
// Outputs:
//   - error: An error if setting any of the environment variables fails.
func SetupOS() (err error) {
	err = os.Setenv(config.EnvConfigFilePrefix, "configs")
	if err != nil {
		return err
	}
	err = os.Setenv(config.EnvConfigRuntime, "local")
	return err
}

// GetConfig provides a singleton instance of the application configuration,
// loading it from the file system only once.
//
// Outputs:
//   - *config.Config: A pointer to the loaded application configuration.
func GetConfig() *config.Config {
	if state.config == nil {
		err := SetupOS()
		if err != nil {
			log.Fatalf("failed to setup os environment: %v\n", err)
		}
		cfg := config.NewConfig()
		config.LoadConfig(&cfg)
		state.config = cfg
	}
	return state.config
}

// InitState initializes the server state: the parser service built from the
// configuration, decorated with the token-bucket rate limiter so inbound
// traffic cannot outrun the configured requests-per-second budget.
func InitState() {
	cfg := GetConfig()
	state.service = services.NewParserService(cfg)
	state.parser = services.NewQuotaAwareParser(state.service, cfg.Server.RequestsPerSecond)
}
