package filesystem

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"kgeyst.com/text2video/pkg/common"
)

const (
	// ConfigKeyClearModelCache whether the downloaded model cache is removed before and after every run (on by default).
	// Turn it off to avoid downloading the weights again on every run.
	ConfigKeyClearModelCache = "clearModelCache"
	// ConfigKeyModelCacheDirectory where the Hugging Face hub keeps downloaded models (~/.cache/huggingface by default)
	ConfigKeyModelCacheDirectory = "modelCacheDirectory"
)

type CacheCleaner struct {
	clearModelCache     bool
	modelCacheDirectory string
	logger              common.Logger
}

func NewCacheCleaner(config *common.Config, logger common.Logger) *CacheCleaner {
	return &CacheCleaner{
		clearModelCache:     config.GetBoolOrDefault(ConfigKeyClearModelCache, true),
		modelCacheDirectory: config.GetStringOrDefault(ConfigKeyModelCacheDirectory, defaultModelCacheDirectory()),
		logger:              logger,
	}
}

func (c *CacheCleaner) ClearCaches() {
	runtime.GC()
	debug.FreeOSMemory()
	if !c.clearModelCache || c.modelCacheDirectory == "" {
		return
	}
	if _, err := os.Stat(c.modelCacheDirectory); err != nil {
		return
	}
	if err := os.RemoveAll(c.modelCacheDirectory); err != nil {
		c.logger.Log("failed to remove the model cache: " + err.Error())
	}
}

func defaultModelCacheDirectory() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "huggingface")
}
