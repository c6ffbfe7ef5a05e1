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

// Package services_test contains the test suite for the services package.
// This file tests the ParserService: single parses, deterministic request
// IDs, batch parsing, and the lifetime counters.
package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaycherian/go-script-timeline/internal/config"
	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/core/services"
)

func sampleRequest() *model.ScriptRequest {
	return &model.ScriptRequest{
		ScriptText: "**ACT I - SCENE 1**\nSARAH: We start here.\nVOLDEMORT: And I am dropped.",
		Characters: []string{"Sarah"},
		Style:      "cinematic",
	}
}

// TestParserServiceParse verifies a full parse through the service: the
// Timeline handoff, the unresolved-attribution warning, and the counters.
func TestParserServiceParse(t *testing.T) {
	service := services.NewParserService(config.NewConfig())

	result, err := service.Parse(context.Background(), sampleRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Timeline)

	require.Len(t, result.Timeline.CharacterDialogues, 1)
	assert.Equal(t, "Sarah", result.Timeline.CharacterDialogues[0].Character)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "speaker not in roster")

	stats := service.Stats()
	assert.Equal(t, uint64(1), stats.Parses)
	assert.Equal(t, uint64(1), stats.Warnings)
}

// TestParserServiceDeterministicID verifies identical requests always map to
// the same request ID and different requests to different IDs.
func TestParserServiceDeterministicID(t *testing.T) {
	service := services.NewParserService(config.NewConfig())

	first, err := service.Parse(context.Background(), sampleRequest())
	require.NoError(t, err)
	second, err := service.Parse(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Timeline, second.Timeline)

	other := sampleRequest()
	other.ScriptText += "\nSARAH: One more line."
	third, err := service.Parse(context.Background(), other)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, third.ID)
}

// TestParserServiceDoesNotMutateRequest verifies the caller's request value
// survives the normalizer untouched.
func TestParserServiceDoesNotMutateRequest(t *testing.T) {
	service := services.NewParserService(config.NewConfig())

	request := &model.ScriptRequest{
		ScriptText: "```\nSARAH: hello\n```",
		Characters: []string{"Sarah"},
	}
	_, err := service.Parse(context.Background(), request)
	require.NoError(t, err)
	assert.Equal(t, "```\nSARAH: hello\n```", request.ScriptText)
}

// TestParserServiceParseBatch verifies concurrent batch parsing returns
// results in input order.
func TestParserServiceParseBatch(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Application.ThreadPoolSize = 3
	service := services.NewParserService(cfg)

	requests := make([]*model.ScriptRequest, 8)
	for i := range requests {
		requests[i] = &model.ScriptRequest{
			ScriptText: fmt.Sprintf("SCENE 1\nSARAH: Line number %d.", i),
			Characters: []string{"Sarah"},
		}
	}

	results, err := service.ParseBatch(context.Background(), requests)
	require.NoError(t, err)
	require.Len(t, results, len(requests))

	for i, result := range results {
		require.NotNil(t, result, "missing result %d", i)
		require.Len(t, result.Timeline.CharacterDialogues, 1)
		assert.Equal(t, fmt.Sprintf("Line number %d.", i), result.Timeline.CharacterDialogues[0].Text)
	}

	assert.Equal(t, uint64(len(requests)), service.Stats().Parses)
}

// TestParserServiceParseBatchEmpty verifies the degenerate batch.
func TestParserServiceParseBatchEmpty(t *testing.T) {
	service := services.NewParserService(config.NewConfig())
	results, err := service.ParseBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// TestParserServiceNilRequest verifies a nil request parses as empty input
// rather than panicking.
func TestParserServiceNilRequest(t *testing.T) {
	service := services.NewParserService(config.NewConfig())
	result, err := service.Parse(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, result.Timeline.CharacterDialogues)
}
