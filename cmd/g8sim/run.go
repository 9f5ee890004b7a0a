package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lounge-chair/G8RTOS/arch/hosted"
	"github.com/lounge-chair/G8RTOS/rtos"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "build a kernel from a manifest and drive it for a fixed number of ticks",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger(v.GetString("log-level"))
			m, err := loadManifest(v, v.GetString("config"))
			if err != nil {
				return err
			}
			return runManifest(log, m)
		},
	}
}

func runManifest(log zerolog.Logger, m manifest) error {
	board := hosted.New(log)
	k := rtos.NewKernel(board)
	if err := k.Init(); err != nil {
		return err
	}

	for _, ps := range m.Periodic {
		name := ps.Name
		period := ps.Period
		count := 0
		if errCode := k.AddPeriodicThread(func() {
			count++
			log.Info().Str("handler", name).Int("fires", count).Msg("periodic handler ran")
		}, period); errCode != 0 {
			return fmt.Errorf("periodic handler %q: manifest exceeds %d periodic handlers", name, rtos.MaxPeriodicThreads)
		}
	}

	for _, es := range m.Events {
		name := es.Name
		if errCode := k.AddAPeriodicEvent(func() {
			log.Info().Str("event", name).Msg("aperiodic event fired")
		}, es.Priority, es.IRQ); errCode != rtos.NoError {
			return fmt.Errorf("registering event %q: %w", es.Name, errCode)
		}
	}

	for _, ts := range m.Threads {
		spec := ts
		if err := addThreadFromSpec(k, log, spec); err != nil {
			return err
		}
	}

	go func() {
		if err := k.Launch(); err != nil {
			log.Error().Err(err).Msg("kernel halted")
		}
	}()

	for i := 0; i < m.Ticks; i++ {
		k.Tick()
		time.Sleep(time.Millisecond)
	}
	k.Shutdown()
	return nil
}

// addThreadFromSpec spawns one of g8sim's fixed set of demo thread bodies.
// "yielder" logs once per iteration and calls Yield, the simplest possible
// cooperative thread; any other Kind is a manifest error.
func addThreadFromSpec(k *rtos.Kernel, log zerolog.Logger, spec threadSpec) error {
	switch spec.Kind {
	case "yielder", "":
		name := spec.Name
		count := spec.Count
		if count <= 0 {
			count = 1
		}
		errCode := k.AddThread(func() {
			for i := 0; i < count; i++ {
				log.Debug().Str("thread", name).Int("iteration", i).Msg("running")
				k.Yield()
			}
		}, spec.Priority, name)
		if errCode != rtos.NoError {
			return fmt.Errorf("adding thread %q: %w", spec.Name, errCode)
		}
		return nil
	default:
		return fmt.Errorf("thread %q: unknown kind %q", spec.Name, spec.Kind)
	}
}
