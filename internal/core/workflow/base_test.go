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

// This file contains shared setup for the workflow test suite: telemetry is
// initialized once in TestMain so every test in the package runs with the
// same logging and tracing the server uses.
package workflow_test

import (
	"context"
	"os"
	"testing"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"

	"github.com/jaycherian/go-script-timeline/internal/telemetry"
	"github.com/jaycherian/go-script-timeline/internal/testutil"
)

const tName = "github.com/jaycherian/go-script-timeline/tests/workflow"

var (
	tracer = otel.Tracer(tName)
	logger = otelslog.NewLogger(tName)
)

// TestMain sets up shared state before any test in this package runs:
// configuration, structured logging, and the OpenTelemetry SDK.
func TestMain(m *testing.M) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load the test configuration; with no TOML files present the suite runs
	// entirely on defaults, which is what these tests assume.
	cfg := testutil.GetConfig()

	telemetry.SetupLogging()

	shutdown, err := telemetry.SetupOpenTelemetry(ctx, cfg)
	if err != nil {
		panic(err)
	}

	spanCtx, span := tracer.Start(ctx, "workflow-test-suite")
	logger.InfoContext(spanCtx, "workflow test suite starting")

	code := m.Run()

	span.End()
	if err := shutdown(ctx); err != nil {
		logger.ErrorContext(ctx, "telemetry shutdown failed", "error", err)
	}
	os.Exit(code)
}
