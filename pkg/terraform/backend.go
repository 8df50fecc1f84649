package terraform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	stateDirName  = ".terraform"
	stateFileName = "terraform.tfstate"
)

// backendState is the slice of terraform's local state metadata we care
// about: the backend configuration recorded by the last init.
type backendState struct {
	Backend struct {
		Config map[string]any `json:"config"`
	} `json:"backend"`
}

// HasBackendConfigChanged reports whether the desired backend configuration
// differs from what the last init recorded in the stack's local state file.
//
// An absent state file means no prior init, which is an expected steady state
// and never drift. The comparison is desired-key-driven: keys present only in
// the recorded state do not count as drift, so irrelevant legacy backend keys
// cannot force a spurious reinit.
func HasBackendConfigChanged(rootPath string, desired map[string]string) (bool, error) {
	path := filepath.Join(rootPath, stateDirName, stateFileName)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading backend state %s: %w", path, err)
	}

	var state backendState
	if err := json.Unmarshal(raw, &state); err != nil {
		return false, fmt.Errorf("parsing backend state %s: %w", path, err)
	}

	for key, want := range desired {
		recorded, ok := state.Backend.Config[key]
		if !ok {
			// Missing from the recorded state only counts when the desired
			// value differs from absent.
			if want != "" {
				return true, nil
			}
			continue
		}
		if recorded == nil {
			if want != "" {
				return true, nil
			}
			continue
		}
		if fmt.Sprintf("%v", recorded) != want {
			return true, nil
		}
	}
	return false, nil
}
