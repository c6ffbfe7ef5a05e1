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

// Package services exposes the parser to callers. The ParserService owns the
// workflow and runs one chain execution per parse call, each with its own
// fresh cor.Context, so any number of parses may run concurrently. The parse
// itself is total: a returned error indicates a wiring defect inside the
// pipeline, never a property of the script text.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jaycherian/go-script-timeline/internal/config"
	"github.com/jaycherian/go-script-timeline/internal/core/commands"
	"github.com/jaycherian/go-script-timeline/internal/core/cor"
	"github.com/jaycherian/go-script-timeline/internal/core/model"
	"github.com/jaycherian/go-script-timeline/internal/core/workflow"
)

// ParseResult is the envelope returned to callers: the Timeline handoff plus
// the material that travels next to it rather than inside it.
type ParseResult struct {
	// ID is a deterministic UUIDv5 of the whole request, so identical inputs
	// always produce the same id and byte-identical timelines.
	ID string `json:"id"`
	// Timeline is the exact handoff structure for the audio and video
	// collaborators.
	Timeline *model.Timeline `json:"timeline"`
	// CameraMovements go to the video-composition collaborator; they are not
	// part of the Timeline contract.
	CameraMovements []model.CameraMovement `json:"camera_movements"`
	// Warnings holds non-fatal diagnostics such as unresolved attributions
	// and oversize truncation notices.
	Warnings []string `json:"warnings"`
}

// Stats are the service's lifetime counters, served by the stats endpoint.
type Stats struct {
	Parses   uint64 `json:"parses"`   // Completed parse calls.
	Warnings uint64 `json:"warnings"` // Total diagnostics across all parses.
}

// ParserService runs the script-to-timeline workflow.
type ParserService struct {
	Workflow *workflow.ScriptTimelineWorkflow
	Workers  int // Worker-pool size for ParseBatch; values below one mean a single worker.

	parses   atomic.Uint64
	warnings atomic.Uint64
}

// NewParserService wires a service from the application configuration.
func NewParserService(cfg *config.Config) *ParserService {
	return &ParserService{
		Workflow: workflow.NewScriptTimelineWorkflow(cfg),
		Workers:  cfg.Application.ThreadPoolSize,
	}
}

// Parse transforms one script request into its Timeline. The request is
// copied before the pipeline runs, so the caller's value is never mutated.
func (s *ParserService) Parse(ctx context.Context, request *model.ScriptRequest) (*ParseResult, error) {
	if request == nil {
		request = &model.ScriptRequest{}
	}
	id := requestID(request)

	working := *request
	chainCtx := cor.NewBaseContext()
	chainCtx.SetContext(ctx)
	chainCtx.Add(cor.CtxIn, &working)

	s.Workflow.Execute(chainCtx)

	if chainCtx.HasErrors() {
		// Pipeline errors are internal defects, not script properties; the
		// first one is as good as any for the caller.
		for name, err := range chainCtx.GetErrors() {
			return nil, fmt.Errorf("parse pipeline failed at %s: %w", name, err)
		}
	}

	timeline, ok := chainCtx.Get(workflow.TimelineOutputParamName).(*model.Timeline)
	if !ok {
		return nil, fmt.Errorf("parse pipeline produced no timeline")
	}
	movements, _ := chainCtx.Get(commands.GetCameraMovementsParameterName()).([]model.CameraMovement)
	if movements == nil {
		movements = make([]model.CameraMovement, 0)
	}

	warnings := chainCtx.GetWarnings()
	s.parses.Add(1)
	s.warnings.Add(uint64(len(warnings)))

	return &ParseResult{
		ID:              id,
		Timeline:        timeline,
		CameraMovements: movements,
		Warnings:        warnings,
	}, nil
}

// ParseBatch parses independent scripts concurrently with a bounded worker
// pool and returns results in input order. Each job owns its own scan state;
// only the scan within a single script is sequential.
func (s *ParserService) ParseBatch(ctx context.Context, requests []*model.ScriptRequest) ([]*ParseResult, error) {
	results := make([]*ParseResult, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	type job struct {
		index   int
		request *model.ScriptRequest
	}
	jobs := make(chan job)
	errs := make(chan error, len(requests))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				result, err := s.Parse(ctx, j.request)
				if err != nil {
					errs <- fmt.Errorf("request %d: %w", j.index, err)
					continue
				}
				results[j.index] = result
			}
		}()
	}

	for i, request := range requests {
		jobs <- job{index: i, request: request}
	}
	close(jobs)
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return results, err
	}
	return results, nil
}

// Stats returns a snapshot of the lifetime counters.
func (s *ParserService) Stats() Stats {
	return Stats{
		Parses:   s.parses.Load(),
		Warnings: s.warnings.Load(),
	}
}

// requestID derives the deterministic UUIDv5 for a request from its JSON
// form. Marshaling a request cannot fail (all fields are plain data), so the
// error path only guards against future field additions.
func requestID(request *model.ScriptRequest) string {
	payload, err := json.Marshal(request)
	if err != nil {
		payload = []byte(request.ScriptText)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, payload).String()
}
