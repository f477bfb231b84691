package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// MarketFitEvaluation is the structured verdict the model returns for a
// project.
type MarketFitEvaluation struct {
	Score       int      `json:"score"`
	Verdict     string   `json:"verdict"`
	Suggestions []string `json:"suggestions"`
}

const evaluationPrompt = `You are a startup analyst. Evaluate the market fit of the following project.
Respond with a JSON object only, no prose, in this exact shape:
{"score": <0-100>, "verdict": "<one sentence>", "suggestions": ["<up to three concrete suggestions>"]}

Project title: %s
Tool used: %s
Description: %s`

// EvaluateMarketFit asks the configured LLM for a market-fit assessment of a
// project. OPENAI_API_KEY must be set; the model defaults to gpt-4o-mini and
// can be overridden with EVALUATION_MODEL.
func EvaluateMarketFit(ctx context.Context, title, tool, description string) (*MarketFitEvaluation, error) {
	model := os.Getenv("EVALUATION_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	llm, err := openai.New(openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("initializing evaluation model: %w", err)
	}

	if tool == "" {
		tool = "unspecified"
	}
	prompt := fmt.Sprintf(evaluationPrompt, title, tool, description)

	log.Info().Str("model", model).Str("title", title).Msg("Requesting market-fit evaluation")

	completion, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt,
		llms.WithTemperature(0.2),
		llms.WithMaxTokens(400),
	)
	if err != nil {
		return nil, fmt.Errorf("evaluation request failed: %w", err)
	}

	evaluation, err := parseEvaluation(completion)
	if err != nil {
		log.Error().Err(err).Str("completion", completion).Msg("Failed to parse evaluation response")
		return nil, err
	}
	return evaluation, nil
}

// parseEvaluation extracts the JSON object from a completion, tolerating
// markdown code fences around it.
func parseEvaluation(completion string) (*MarketFitEvaluation, error) {
	trimmed := strings.TrimSpace(completion)
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			trimmed = trimmed[start : end+1]
		}
	}

	var evaluation MarketFitEvaluation
	if err := json.Unmarshal([]byte(trimmed), &evaluation); err != nil {
		return nil, fmt.Errorf("malformed evaluation response: %w", err)
	}
	if evaluation.Score < 0 {
		evaluation.Score = 0
	}
	if evaluation.Score > 100 {
		evaluation.Score = 100
	}
	return &evaluation, nil
}
