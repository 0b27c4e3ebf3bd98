package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"bidproposal-backend/internal/config"
)

var (
	// ErrInvalidFormat means the provider answered but not in the shape the
	// prompt demanded. Treated as an untrusted-input failure, never a crash.
	ErrInvalidFormat = errors.New("generation response has invalid format")
	ErrTimeout       = errors.New("generation request timed out")
	ErrEmptyResponse = errors.New("generation response is empty")
)

// ProjectPlan is the parsed planning response: a summary plus the ordered
// section titles the document should contain.
type ProjectPlan struct {
	Summary  string   `json:"summary"`
	Sections []string `json:"sections"`
}

type Service interface {
	SummarizeAndPlan(ctx context.Context, projectName, projectDetails string) (*ProjectPlan, error)
	GenerateSection(ctx context.Context, projectName, summary, projectDetails, sectionName string) (string, error)
	ReviseSection(ctx context.Context, sectionName, currentContent, instructions string) (string, error)
	GenerateFromDocument(ctx context.Context, rfqText string) (string, error)
	ReviewProposal(ctx context.Context, proposalText string) (string, error)
	Model() string
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type service struct {
	client  chatClient
	model   string
	timeout time.Duration
}

func NewService(cfg *config.Config) Service {
	return &service{
		client:  openai.NewClient(cfg.OpenAIAPIKey),
		model:   cfg.OpenAIModel,
		timeout: cfg.GenerationTimeout,
	}
}

// NewServiceWithClient injects the chat client, for tests.
func NewServiceWithClient(client chatClient, model string, timeout time.Duration) Service {
	return &service{client: client, model: model, timeout: timeout}
}

func (s *service) Model() string {
	return s.model
}

func (s *service) SummarizeAndPlan(ctx context.Context, projectName, projectDetails string) (*ProjectPlan, error) {
	prompt := fmt.Sprintf(planPromptTemplate, projectName, projectDetails)

	raw, err := s.complete(ctx, "", prompt)
	if err != nil {
		return nil, err
	}

	var plan ProjectPlan
	if err := json.Unmarshal([]byte(extractJSON(raw)), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if plan.Summary == "" || len(plan.Sections) == 0 {
		return nil, fmt.Errorf("%w: missing summary or sections", ErrInvalidFormat)
	}
	for _, section := range plan.Sections {
		if strings.TrimSpace(section) == "" {
			return nil, fmt.Errorf("%w: empty section title", ErrInvalidFormat)
		}
	}

	return &plan, nil
}

func (s *service) GenerateSection(ctx context.Context, projectName, summary, projectDetails, sectionName string) (string, error) {
	prompt := fmt.Sprintf(sectionPromptTemplate, sectionName, projectName, summary, projectDetails)
	return s.complete(ctx, "", prompt)
}

func (s *service) ReviseSection(ctx context.Context, sectionName, currentContent, instructions string) (string, error) {
	prompt := fmt.Sprintf(revisePromptTemplate, sectionName, instructions, currentContent)
	return s.complete(ctx, "", prompt)
}

func (s *service) GenerateFromDocument(ctx context.Context, rfqText string) (string, error) {
	user := fmt.Sprintf("Here is the RFQ content:\n\n%s\n\nPlease generate a technical proposal based on this RFQ.", rfqText)
	return s.complete(ctx, technicalProposalPrompt, user)
}

func (s *service) ReviewProposal(ctx context.Context, proposalText string) (string, error) {
	user := fmt.Sprintf("Here is the technical proposal:\n\n%s\n\nPlease review it.", proposalText)
	return s.complete(ctx, reviewProposalPrompt, user)
}

func (s *service) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return resp.Choices[0].Message.Content, nil
}

// extractJSON strips markdown fences some models wrap around JSON output.
func extractJSON(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	}
	return strings.TrimSpace(trimmed)
}
