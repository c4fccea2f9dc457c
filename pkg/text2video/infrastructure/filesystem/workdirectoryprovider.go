package filesystem

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"kgeyst.com/text2video/pkg/common"
)

// ConfigKeyWorkDirectory the parent directory of scratch directories (the OS temp directory by default)
const ConfigKeyWorkDirectory = "workDirectory"

type WorkDirectoryProvider struct {
	baseDirectoryPath string
}

func NewWorkDirectoryProvider(config *common.Config) *WorkDirectoryProvider {
	return &WorkDirectoryProvider{
		baseDirectoryPath: config.GetStringOrDefault(ConfigKeyWorkDirectory, os.TempDir()),
	}
}

// CreateWorkDirectory creates a uniquely named directory, so that leftovers of a crashed run never mix with
// the frames of the current one.
func (w *WorkDirectoryProvider) CreateWorkDirectory() (string, error) {
	path := filepath.Join(w.baseDirectoryPath, "text2video-"+uuid.NewString())
	err := os.MkdirAll(path, 0755)
	if err != nil {
		return "", err
	}
	return path, nil
}
