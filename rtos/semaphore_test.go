package rtos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lounge-chair/G8RTOS/rtos"
)

// TestSemaphoreHandoff: a consumer blocks acquiring a
// semaphore initialized to 0 until a producer releases it, and the
// producer's release never itself blocks.
func TestSemaphoreHandoff(t *testing.T) {
	k, _ := newKernel(t)
	var sem rtos.Semaphore
	rtos.InitSemaphore(&sem, 0)

	got := make(chan int, 1)
	consumerReady := make(chan struct{})

	require.Equal(t, rtos.NoError, k.AddThread(func() {
		close(consumerReady)
		k.AcquireSemaphore(&sem)
		got <- 42
	}, 1, "consumer"))

	require.Equal(t, rtos.NoError, k.AddThread(func() {
		<-consumerReady
		k.Yield()
		k.ReleaseSemaphore(&sem)
		// returning hands the CPU to the freshly unblocked consumer
	}, 2, "producer"))

	go k.Launch()
	v := <-got
	require.Equal(t, 42, v)
	k.Shutdown()
}

// TestSemaphoreBalancedAcquireReleaseNeverBlocks: as long as
// acquires never outnumber the initial count plus releases seen so far, a
// lone thread's acquires all succeed without ever yielding to anything
// (there is nothing else runnable to yield to), so this completes promptly
// instead of hanging.
func TestSemaphoreBalancedAcquireReleaseNeverBlocks(t *testing.T) {
	k, _ := newKernel(t)
	var sem rtos.Semaphore
	rtos.InitSemaphore(&sem, 3)
	reached := make(chan struct{})

	require.Equal(t, rtos.NoError, k.AddThread(func() {
		k.AcquireSemaphore(&sem)
		k.AcquireSemaphore(&sem)
		k.ReleaseSemaphore(&sem)
		k.ReleaseSemaphore(&sem)
		k.AcquireSemaphore(&sem)
		close(reached)
		k.KillSelf()
	}, 1, "sole"))

	go k.Launch()
	<-reached
	k.Shutdown()
}
