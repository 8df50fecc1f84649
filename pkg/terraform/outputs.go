package terraform

import (
	"context"
	"encoding/json"
	"fmt"
)

// Outputs queries `terraform output -json` and flattens the result to a
// plain key/value map. Never cached: outputs can change between a status
// probe and the apply that follows it.
func (s *Stack) Outputs(ctx context.Context) (map[string]any, error) {
	res, err := s.tf.Run(ctx, Request{Dir: s.cfg.RootPath, Args: []string{"output", "-json"}})
	if err != nil {
		return nil, err
	}

	var raw map[string]struct {
		Value any `json:"value"`
	}
	if err := json.Unmarshal([]byte(res.Stdout), &raw); err != nil {
		return nil, fmt.Errorf("parsing terraform output: %w", err)
	}

	outputs := make(map[string]any, len(raw))
	for key, entry := range raw {
		outputs[key] = entry.Value
	}
	return outputs, nil
}
