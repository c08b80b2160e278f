package buildlog

import "testing"

func TestWarnfDoesNotPanic(t *testing.T) {
	Warnf("clamping %d positive log-probabilities to 0", 3)
}
