package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMissingAssets 表示文档根目录缺少必须的静态文件。
var ErrMissingAssets = errors.New("missing required assets")

// VerifyAssets checks that every required top-level file exists under root
// before the listener opens, and reports all missing names at once.
func VerifyAssets(root string, required []string) error {
	var missing []string
	for _, name := range required {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w in %s: %s (run from the app directory or set --root)",
			ErrMissingAssets, root, strings.Join(missing, ", "))
	}
	return nil
}
