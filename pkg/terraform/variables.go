package terraform

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// VarFileName is the variables file written inside the stack root. It is
// overwritten on every invocation, never appended to.
const VarFileName = "terralift.tfvars.json"

// PrepareVariables serializes the variable map to a tfvars.json file inside
// rootPath and returns the CLI args referencing it. An empty map writes
// nothing and returns no args.
func PrepareVariables(rootPath string, variables map[string]any) ([]string, error) {
	if len(variables) == 0 {
		return nil, nil
	}

	data, err := json.MarshalIndent(variables, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling variables: %w", err)
	}

	path := filepath.Join(rootPath, VarFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing variables file %s: %w", path, err)
	}

	return []string{"-var-file", path}, nil
}
