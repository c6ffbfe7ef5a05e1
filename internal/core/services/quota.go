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

// Package services exposes the parser to callers. This file implements a
// rate-limited decorator around the parser service. The parser has no
// internal cancellation concept (the scan is not a blocking operation), so
// callers bound throughput here, before work starts, rather than trying to
// interrupt a parse mid-scan.
package services

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/jaycherian/go-script-timeline/internal/core/model"
)

// Parser is the parse surface shared by the plain service and its decorators.
type Parser interface {
	Parse(ctx context.Context, request *model.ScriptRequest) (*ParseResult, error)
}

// QuotaAwareParser wraps a Parser with a token-bucket rate limiter. Calls
// beyond the configured rate wait for a token or fail when the caller's
// context expires first.
type QuotaAwareParser struct {
	wrapped   Parser
	RateLimit *rate.Limiter
}

// NewQuotaAwareParser decorates the given parser with a limiter allowing
// requestsPerSecond sustained calls and the same burst.
func NewQuotaAwareParser(wrapped Parser, requestsPerSecond int) *QuotaAwareParser {
	if requestsPerSecond < 1 {
		requestsPerSecond = 1
	}
	return &QuotaAwareParser{
		wrapped:   wrapped,
		RateLimit: rate.NewLimiter(rate.Every(time.Second/time.Duration(requestsPerSecond)), requestsPerSecond),
	}
}

// Parse waits for quota and then delegates to the wrapped parser.
func (q *QuotaAwareParser) Parse(ctx context.Context, request *model.ScriptRequest) (*ParseResult, error) {
	if err := q.RateLimit.Wait(ctx); err != nil {
		return nil, err
	}
	return q.wrapped.Parse(ctx, request)
}
