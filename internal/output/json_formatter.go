package output

import (
	"encoding/json"

	"github.com/lifegap/coverage-calculator/internal/domain"
)

// JSONFormatter serializes the evaluation result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.EvaluationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
