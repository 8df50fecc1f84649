package terraform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/cenkalti/backoff/v5"
	getter "github.com/hashicorp/go-getter"
	goversion "github.com/hashicorp/go-version"
	"go.uber.org/zap"

	srvErrors "github.com/terralift/terralift/pkg/errors"
)

const (
	binaryName       = "terraform"
	releaseURLFormat = "https://releases.hashicorp.com/terraform/%s/terraform_%s_%s_%s.zip"
	downloadMaxTries = 3
)

// ResolveBinary returns the path of the terraform executable to use.
//
// An empty version means the caller explicitly opted out of managed binaries,
// so the executable comes from PATH and its absence is a RuntimeError. A set
// version maps to a locally managed binary under dataDir, downloaded from the
// HashiCorp release mirror on first use.
func ResolveBinary(ctx context.Context, dataDir, version string) (string, error) {
	log := zap.S().Named("terraform_version")

	if version == "" {
		path, err := exec.LookPath(binaryName)
		if err != nil {
			return "", srvErrors.NewRuntimeError("terraform not found on PATH and no version configured")
		}
		log.Debugw("using terraform from PATH", "path", path)
		return path, nil
	}

	parsed, err := goversion.NewVersion(version)
	if err != nil {
		return "", srvErrors.NewConfigurationError("unsupported terraform version %q: %s", version, err)
	}

	binDir := filepath.Join(dataDir, binaryName, parsed.String())
	binPath := filepath.Join(binDir, binaryName)
	if _, err := os.Stat(binPath); err == nil {
		return binPath, nil
	}

	if err := downloadRelease(ctx, parsed.String(), binDir, log); err != nil {
		return "", srvErrors.NewConfigurationError("fetching terraform %s: %s", parsed, err)
	}
	if err := os.Chmod(binPath, 0o755); err != nil {
		return "", fmt.Errorf("marking %s executable: %w", binPath, err)
	}
	return binPath, nil
}

// downloadRelease fetches and unpacks the release archive for the requested
// version, retrying transient failures a bounded number of times.
func downloadRelease(ctx context.Context, version, dst string, log *zap.SugaredLogger) error {
	src := fmt.Sprintf(releaseURLFormat, version, version, runtime.GOOS, runtime.GOARCH)
	log.Infow("downloading terraform release", "version", version, "url", src)

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		client := &getter.Client{
			Ctx:  ctx,
			Src:  src,
			Dst:  dst,
			Mode: getter.ClientModeDir,
		}
		if err := client.Get(); err != nil {
			log.Warnw("terraform download attempt failed", "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(downloadMaxTries))
	return err
}
