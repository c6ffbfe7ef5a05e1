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
// This file tests the rate-limited parser decorator.
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/zeebo/assert"

	"github.com/jaycherian/go-script-timeline/internal/config"
	"github.com/jaycherian/go-script-timeline/internal/core/services"
)

// TestQuotaAwareParserDelegates verifies the decorator passes calls through
// to the wrapped service when quota is available.
func TestQuotaAwareParserDelegates(t *testing.T) {
	service := services.NewParserService(config.NewConfig())
	limited := services.NewQuotaAwareParser(service, 100)

	result, err := limited.Parse(context.Background(), sampleRequest())
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 1, len(result.Timeline.CharacterDialogues))
}

// TestQuotaAwareParserHonorsContext verifies a call beyond the available
// quota fails with the caller's context error instead of waiting forever.
func TestQuotaAwareParserHonorsContext(t *testing.T) {
	service := services.NewParserService(config.NewConfig())
	limited := services.NewQuotaAwareParser(service, 1)

	// Drain the single burst token.
	_, err := limited.Parse(context.Background(), sampleRequest())
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = limited.Parse(ctx, sampleRequest())
	assert.Error(t, err)
}

// TestQuotaAwareParserMinimumRate verifies the constructor clamps
// nonsensical rates to one request per second.
func TestQuotaAwareParserMinimumRate(t *testing.T) {
	service := services.NewParserService(config.NewConfig())
	limited := services.NewQuotaAwareParser(service, 0)
	assert.NotNil(t, limited.RateLimit)
	assert.Equal(t, 1, limited.RateLimit.Burst())
}
