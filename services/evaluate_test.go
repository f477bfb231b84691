package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvaluation_PlainJSON(t *testing.T) {
	evaluation, err := parseEvaluation(`{"score": 72, "verdict": "Promising niche.", "suggestions": ["Add pricing", "Ship a demo"]}`)
	require.NoError(t, err)

	assert.Equal(t, 72, evaluation.Score)
	assert.Equal(t, "Promising niche.", evaluation.Verdict)
	assert.Len(t, evaluation.Suggestions, 2)
}

func TestParseEvaluation_CodeFenced(t *testing.T) {
	completion := "```json\n{\"score\": 40, \"verdict\": \"Crowded market.\", \"suggestions\": []}\n```"

	evaluation, err := parseEvaluation(completion)
	require.NoError(t, err)
	assert.Equal(t, 40, evaluation.Score)
	assert.Equal(t, "Crowded market.", evaluation.Verdict)
}

func TestParseEvaluation_SurroundingProse(t *testing.T) {
	completion := "Sure! Here is the assessment:\n{\"score\": 55, \"verdict\": \"ok\", \"suggestions\": []}\nLet me know if you need more."

	evaluation, err := parseEvaluation(completion)
	require.NoError(t, err)
	assert.Equal(t, 55, evaluation.Score)
}

func TestParseEvaluation_ClampsScore(t *testing.T) {
	high, err := parseEvaluation(`{"score": 250, "verdict": "v", "suggestions": []}`)
	require.NoError(t, err)
	assert.Equal(t, 100, high.Score)

	low, err := parseEvaluation(`{"score": -5, "verdict": "v", "suggestions": []}`)
	require.NoError(t, err)
	assert.Equal(t, 0, low.Score)
}

func TestParseEvaluation_Malformed(t *testing.T) {
	_, err := parseEvaluation("the model refused to answer")
	assert.Error(t, err)
}
