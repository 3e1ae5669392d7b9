package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DefaultInputDir is searched when no input is given on the command line.
var DefaultInputDir = filepath.Join("input", "svg")

// InitResourceLimits raises the open-file limit so parallel workers do not
// run out of descriptors.
func InitResourceLimits(log *zap.Logger) {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Warn("cannot read open file limit", zap.Error(err))
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Warn("cannot raise open file limit", zap.Error(err))
	} else {
		log.Debug("open file limit raised", zap.Uint64("limit", uint64(rLimit.Cur)))
	}
}

// FindLatest returns the most recently modified file in dir whose name ends
// with one of extensions (case-insensitive).
func FindLatest(dir string, extensions ...string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		matched := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				matched = true
				break
			}
		}
		if matched {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no %s files found in %s", strings.Join(extensions, "/"), dir)
	}

	return latestFile, nil
}

// FindLatestSVG returns the newest .svg file in dir.
func FindLatestSVG(dir string) (string, error) {
	return FindLatest(dir, ".svg")
}
