package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"intelimed/internal/ai"
	"intelimed/internal/model"
	"intelimed/internal/observability"
)

const (
	defaultExplanation  = "Assessment completed successfully"
	fallbackExplanation = "Unable to complete detailed analysis. Please consult with a healthcare provider."
)

var (
	defaultRecommendations  = []string{"Maintain a healthy lifestyle", "Regular check-ups with your doctor"}
	fallbackRecommendations = []string{"Consult with a healthcare professional", "Maintain regular health check-ups"}

	errRiskLevelOutOfRange = errors.New("risk level out of range")
)

var riskSchema = ai.JSONSchema{
	Name: "health_risk_assessment",
	Schema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"riskLevel": map[string]interface{}{
				"type": "string",
				"enum": []string{"low", "medium", "high"},
			},
			"recommendations": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"explanation": map[string]interface{}{"type": "string"},
		},
		"required":             []string{"riskLevel", "recommendations", "explanation"},
		"additionalProperties": false,
	},
}

// Analysis is the outcome of one risk analysis. Status tells a real
// conclusion apart from the fallback.
type Analysis struct {
	RiskLevel       model.RiskLevel      `json:"riskLevel"`
	Recommendations []string             `json:"recommendations"`
	Explanation     string               `json:"explanation"`
	Status          model.AnalysisStatus `json:"status"`
}

func FallbackAnalysis() Analysis {
	return Analysis{
		RiskLevel:       model.RiskLow,
		Recommendations: append([]string(nil), fallbackRecommendations...),
		Explanation:     fallbackExplanation,
		Status:          model.AnalysisIndeterminate,
	}
}

type RiskAnalyzer struct {
	client  LLMClient
	cfg     ai.ChatConfig
	timeout time.Duration
}

func NewRiskAnalyzer(client LLMClient, cfg ai.ChatConfig, timeout time.Duration) *RiskAnalyzer {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RiskAnalyzer{client: client, cfg: cfg, timeout: timeout}
}

// Analyze never returns an error; failures yield FallbackAnalysis.
func (a *RiskAnalyzer) Analyze(ctx context.Context, responses map[string]interface{}) Analysis {
	logger := observability.LoggerFromContext(ctx)

	prompt, err := buildRiskPrompt(responses)
	if err != nil {
		logger.Warn("risk prompt build failed", "error", err)
		return FallbackAnalysis()
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.client.CompleteJSON(callCtx, a.cfg, []ai.ChatMessage{{Role: "user", Content: prompt}}, riskSchema)
	if err != nil {
		logger.Warn("risk analysis call failed", "model", a.cfg.Model, "error", err)
		return FallbackAnalysis()
	}

	analysis, err := DecodeAnalysis(raw)
	if err != nil {
		logger.Warn("risk analysis decode failed", "model", a.cfg.Model, "error", err)
		return FallbackAnalysis()
	}
	return analysis
}

func buildRiskPrompt(responses map[string]interface{}) (string, error) {
	if responses == nil {
		responses = map[string]interface{}{}
	}
	encoded, err := json.MarshalIndent(responses, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal responses failed: %w", err)
	}
	return fmt.Sprintf(`Analyze the following health assessment responses and provide a risk assessment:

%s

Please provide:
1. Risk level (low, medium, high)
2. 3-5 specific recommendations
3. Brief explanation of the assessment

Respond in JSON format:
{
  "riskLevel": "low|medium|high",
  "recommendations": ["recommendation1", "recommendation2", ...],
  "explanation": "explanation text"
}`, encoded), nil
}

// DecodeAnalysis validates the model's JSON answer. Absent fields are
// defaulted and reported through Status; anything malformed is an error.
func DecodeAnalysis(raw string) (Analysis, error) {
	var payload struct {
		RiskLevel       *string  `json:"riskLevel"`
		Recommendations []string `json:"recommendations"`
		Explanation     *string  `json:"explanation"`
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(stripCodeFence(raw))))
	if err := dec.Decode(&payload); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis failed: %w", err)
	}
	if dec.More() {
		return Analysis{}, fmt.Errorf("decode analysis failed: trailing data")
	}

	result := Analysis{Status: model.AnalysisCompleted}

	if payload.RiskLevel == nil {
		result.RiskLevel = model.RiskLow
		result.Status = model.AnalysisDefaulted
	} else {
		level := model.RiskLevel(strings.ToLower(strings.TrimSpace(*payload.RiskLevel)))
		if !level.Valid() {
			return Analysis{}, fmt.Errorf("%w: %q", errRiskLevelOutOfRange, *payload.RiskLevel)
		}
		result.RiskLevel = level
	}

	for _, item := range payload.Recommendations {
		if item = strings.TrimSpace(item); item != "" {
			result.Recommendations = append(result.Recommendations, item)
		}
	}
	if len(result.Recommendations) == 0 {
		result.Recommendations = append([]string(nil), defaultRecommendations...)
		result.Status = model.AnalysisDefaulted
	}

	if payload.Explanation == nil || strings.TrimSpace(*payload.Explanation) == "" {
		result.Explanation = defaultExplanation
		result.Status = model.AnalysisDefaulted
	} else {
		result.Explanation = *payload.Explanation
	}

	return result, nil
}

func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
