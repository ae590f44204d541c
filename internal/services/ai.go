package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/taskwise/taskwise-api/internal/constants"
	"github.com/taskwise/taskwise-api/internal/models"
)

type AIService struct {
	client *openai.Client
}

type GeneratedTask struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    models.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateTasksFromText breaks free-form text down into concrete tasks using
// OpenAI GPT. Results are capped and sanitized before being returned.
func (s *AIService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a task breakdown assistant. Extract concrete, actionable tasks from the text below.

Current time: %s

Text:
%s

Return a JSON array of the extracted tasks in this exact shape:
[
  {
    "title": "short task title",
    "description": "detailed task description",
    "priority": "low, medium or high",
    "due_date": "deadline in ISO 8601 (e.g. 2025-10-28T23:59:59Z), or null when no deadline is mentioned"
  }
]

Rules:
- Return an empty array [] when the text contains no tasks
- Convert relative deadlines ("tomorrow", "next week") into concrete timestamps
- due_date must be an ISO 8601 string or null
- Return only the JSON, no surrounding prose`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(tasks) > constants.MaxAIGeneratedTasks {
		tasks = tasks[:constants.MaxAIGeneratedTasks]
	}

	valid := make([]GeneratedTask, 0, len(tasks))
	for _, t := range tasks {
		if strings.TrimSpace(t.Title) == "" {
			continue
		}
		if !t.Priority.Valid() {
			t.Priority = models.TaskPriorityMedium
		}
		valid = append(valid, t)
	}

	return valid, nil
}
