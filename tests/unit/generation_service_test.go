package unit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bidproposal-backend/internal/service/generation"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

type fakeChatClient struct {
	responses []string
	err       error
	requests  []openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}

	content := ""
	if len(f.responses) > 0 {
		content = f.responses[0]
		f.responses = f.responses[1:]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}, nil
}

func TestGenerationService_SummarizeAndPlan(t *testing.T) {
	ctx := context.Background()

	t.Run("Parses Plan", func(t *testing.T) {
		client := &fakeChatClient{responses: []string{
			`{"summary": "A harbor expansion.", "sections": ["Introduction", "Scope of Work"]}`,
		}}
		svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

		plan, err := svc.SummarizeAndPlan(ctx, "Harbor Expansion", "details")

		assert.NoError(t, err)
		assert.Equal(t, "A harbor expansion.", plan.Summary)
		assert.Equal(t, []string{"Introduction", "Scope of Work"}, plan.Sections)
	})

	t.Run("Strips Markdown Fences", func(t *testing.T) {
		client := &fakeChatClient{responses: []string{
			"```json\n{\"summary\": \"s\", \"sections\": [\"A\"]}\n```",
		}}
		svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

		plan, err := svc.SummarizeAndPlan(ctx, "P", "d")

		assert.NoError(t, err)
		assert.Equal(t, []string{"A"}, plan.Sections)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		client := &fakeChatClient{responses: []string{"Sure! Here is your plan: first..."}}
		svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

		_, err := svc.SummarizeAndPlan(ctx, "P", "d")

		assert.ErrorIs(t, err, generation.ErrInvalidFormat)
	})

	t.Run("Missing Sections", func(t *testing.T) {
		client := &fakeChatClient{responses: []string{`{"summary": "s", "sections": []}`}}
		svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

		_, err := svc.SummarizeAndPlan(ctx, "P", "d")

		assert.ErrorIs(t, err, generation.ErrInvalidFormat)
	})

	t.Run("Provider Failure", func(t *testing.T) {
		client := &fakeChatClient{err: errors.New("rate limited")}
		svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

		_, err := svc.SummarizeAndPlan(ctx, "P", "d")

		assert.Error(t, err)
	})
}

func TestGenerationService_GenerateSection(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns Body", func(t *testing.T) {
		client := &fakeChatClient{responses: []string{"section body"}}
		svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

		body, err := svc.GenerateSection(ctx, "P", "summary", "details", "Introduction")

		assert.NoError(t, err)
		assert.Equal(t, "section body", body)
	})

	t.Run("Empty Response", func(t *testing.T) {
		client := &fakeChatClient{responses: []string{"   "}}
		svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

		_, err := svc.GenerateSection(ctx, "P", "summary", "details", "Introduction")

		assert.ErrorIs(t, err, generation.ErrEmptyResponse)
	})
}

func TestGenerationService_GenerateFromDocument(t *testing.T) {
	ctx := context.Background()

	client := &fakeChatClient{responses: []string{"a full technical proposal"}}
	svc := generation.NewServiceWithClient(client, "gpt-3.5-turbo", time.Minute)

	out, err := svc.GenerateFromDocument(ctx, "rfq text")

	assert.NoError(t, err)
	assert.Equal(t, "a full technical proposal", out)

	// The RFQ path carries a system prompt in addition to the user message.
	assert.Len(t, client.requests, 1)
	assert.Len(t, client.requests[0].Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, client.requests[0].Messages[0].Role)
}
