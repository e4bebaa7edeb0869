package godastic

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Idle keep-alive connections from the shared http transport are
		// torn down lazily, after the test that owned them finished.
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
