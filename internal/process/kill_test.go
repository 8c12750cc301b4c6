package process

// Notes:
// - Only non-existent and invalid PIDs are exercised. Killing a real process
//   group is covered by the browser integration tests.

import (
	"errors"
	"testing"
)

func TestKillTree_InvalidPID(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, -4242} {
		if err := KillTree(pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillTree(%d) error = %v, want ErrInvalidPID", pid, err)
		}
	}
}

func TestKillTree_MissingProcess(t *testing.T) {
	t.Parallel()

	if err := KillTree(999999999); err != nil {
		t.Errorf("KillTree(missing) error = %v, want nil", err)
	}
}
