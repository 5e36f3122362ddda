package debug

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableWritesCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	if err := Enable(path); err != nil {
		t.Fatal(err)
	}
	defer Disable()

	if !Enabled() {
		t.Fatal("expected enabled")
	}
	Log("playback", "started %s", "B R P")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "category=playback") || !strings.Contains(out, "started B R P") {
		t.Errorf("log missing entry:\n%s", out)
	}
}

func TestLogEvery(t *testing.T) {
	for i := 0; i < 7; i++ {
		LogEvery(3, "test", "every %d", i)
	}
	if got := Counter("test", "every %d"); got != 7 {
		t.Errorf("counter = %d, want 7", got)
	}
}
