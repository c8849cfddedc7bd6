// Copyright (c) 2025-2026 Evan McKay
// SPDX-License-Identifier: GPL-3.0-or-later

// Package assist provides LLM-backed writing help for the admin editor:
// outlines, prose improvement, SEO suggestions, and code explanations. Each
// operation is a single stateless completion.
package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNotConfigured is returned when no API key was provided at startup.
var ErrNotConfigured = errors.New("assist: no API key configured")

const defaultModel = "gpt-4o-mini"

// Operation names accepted by Run.
const (
	OpOutline         = "outline"
	OpImprove         = "improve"
	OpSEO             = "seo"
	OpMetaDescription = "meta-description"
	OpExplainCode     = "explain-code"
	OpRelatedTopics   = "related-topics"
)

var prompts = map[string]string{
	OpOutline:         "You are a writing assistant for a personal engineering blog. Produce a clear markdown outline for a post on the given topic: a working title, section headings, and one-line notes per section.",
	OpImprove:         "You are an editor for a personal engineering blog. Rewrite the given draft to be clearer and tighter while keeping the author's voice and all technical content. Return only the revised text.",
	OpSEO:             "You are an SEO assistant. For the given post draft, suggest a focus keyword, five related keywords, and a suggested URL slug. Return them as a short markdown list.",
	OpMetaDescription: "Write a meta description for the given blog post draft: one or two sentences, at most 160 characters, no quotes.",
	OpExplainCode:     "Explain the given code snippet for a blog reader: what it does, the key techniques used, and any pitfalls. Use short paragraphs.",
	OpRelatedTopics:   "Given this blog post draft, suggest five follow-up post topics the author could write next, each with a one-line rationale. Return a markdown list.",
}

// Service runs assist operations against the OpenAI API.
type Service struct {
	client  openai.Client
	model   string
	enabled bool
}

// New builds the service. An empty apiKey yields a disabled service whose
// Run returns ErrNotConfigured. extraOpts is used by tests to point the
// client at a mock server.
func New(apiKey, model string, extraOpts ...option.RequestOption) *Service {
	if apiKey == "" {
		return &Service{}
	}
	if model == "" {
		model = defaultModel
	}
	opts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, extraOpts...)
	return &Service{
		client:  openai.NewClient(opts...),
		model:   model,
		enabled: true,
	}
}

// Enabled reports whether an API key was configured.
func (s *Service) Enabled() bool { return s.enabled }

// IsValidOp reports whether op names a supported operation.
func IsValidOp(op string) bool {
	_, ok := prompts[op]
	return ok
}

// Run executes the named operation on the given input text.
func (s *Service) Run(ctx context.Context, op, input string) (string, error) {
	if !s.enabled {
		return "", ErrNotConfigured
	}
	system, ok := prompts[op]
	if !ok {
		return "", fmt.Errorf("assist: unknown operation %q", op)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.New("assist: empty input")
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(input),
		},
	})
	if err != nil {
		return "", fmt.Errorf("assist %s: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("assist %s: no choices returned", op)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
