package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

var C Config
var L *zap.Logger

// init loads env.toml from the repository root and sets up the logger.
// The config file is resolved relative to this source file so tests in any
// package see the same configuration.
func init() {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		panic("cannot get current file")
	}

	configDir := filepath.Dir(currentFile)
	envFilePath := filepath.Join(configDir, "../env.toml")
	if _, err := toml.DecodeFile(envFilePath, &C); err != nil {
		panic(fmt.Sprintf("failed to load %s: %v", envFilePath, err))
	}

	var err error
	if C.App.Env == "production" {
		L, err = zap.NewProduction()
	} else {
		L, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		L = zap.NewNop()
	}
}
