package log

import "testing"

// The convenience helpers must be usable before Init runs: library code
// logs through them and cannot assume the binary configured logging.
// This test deliberately never calls Init.
func TestHelpersBeforeInit(t *testing.T) {
	if log != nil {
		t.Fatal("test requires an uninitialized logger")
	}

	Debug("debug")
	Debugf("debugf %d", 1)
	Info("info")
	Infof("infof %d", 2)
	Infow("infow", "key", "value")
	Warn("warn")
	Warnf("warnf %d", 3)
	Error("error")
	Errorf("errorf %d", 4)
	Sync()

	if GetSugaredLogger() == nil {
		t.Fatal("GetSugaredLogger returned nil after fallback")
	}
}
