package rtos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lounge-chair/G8RTOS/rtos"
)

// TestAddThreadRunsTheInstalledFunction doesn't inspect the register frame
// directly (it is package-private), but it does confirm that the frame
// setInitialStack built is enough for the host scheduler to actually reach
// and run the thread body, the thing the frame exists to make possible.
func TestAddThreadRunsTheInstalledFunction(t *testing.T) {
	k, _ := newKernel(t)
	ran := make(chan struct{})

	require.Equal(t, rtos.NoError, k.AddThread(func() {
		close(ran)
	}, 1, "runner"))

	go k.Launch()
	<-ran
	k.Shutdown()
}
