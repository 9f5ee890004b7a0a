package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// threadSpec describes one application thread the demo harness spawns. Kind
// selects one of a small fixed set of built-in bodies (g8sim has no way to
// load arbitrary application code from a manifest file); count
// parameterizes it.
type threadSpec struct {
	Name     string `mapstructure:"name"`
	Priority uint8  `mapstructure:"priority"`
	Kind     string `mapstructure:"kind"`
	Count    int    `mapstructure:"count"`
}

// periodicSpec describes one periodic handler.
type periodicSpec struct {
	Name   string `mapstructure:"name"`
	Period uint32 `mapstructure:"period_ticks"`
}

// eventSpec describes one aperiodic hardware event registration.
type eventSpec struct {
	Name     string `mapstructure:"name"`
	IRQ      int    `mapstructure:"irq"`
	Priority uint8  `mapstructure:"priority"`
}

// manifest is the top-level shape of a g8sim config file.
type manifest struct {
	Ticks    int            `mapstructure:"ticks"`
	Threads  []threadSpec   `mapstructure:"threads"`
	Periodic []periodicSpec `mapstructure:"periodic"`
	Events   []eventSpec    `mapstructure:"events"`
}

func defaultManifest() manifest {
	return manifest{
		Ticks: 50,
		Threads: []threadSpec{
			{Name: "worker-a", Priority: 1, Kind: "yielder", Count: 5},
			{Name: "worker-b", Priority: 1, Kind: "yielder", Count: 5},
		},
		Periodic: []periodicSpec{
			{Name: "heartbeat", Period: 10},
		},
	}
}

func loadManifest(v *viper.Viper, path string) (manifest, error) {
	m := defaultManifest()
	if path == "" {
		return m, nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return manifest{}, errors.Wrapf(err, "reading manifest %q", path)
	}
	// Lists the file gives replace the defaults instead of being decoded
	// over them element by element.
	if v.IsSet("threads") {
		m.Threads = nil
	}
	if v.IsSet("periodic") {
		m.Periodic = nil
	}
	if v.IsSet("events") {
		m.Events = nil
	}
	if err := v.Unmarshal(&m); err != nil {
		return manifest{}, errors.Wrap(err, "decoding manifest")
	}
	if m.Ticks <= 0 {
		return manifest{}, errors.Errorf("manifest ticks must be positive, got %d", m.Ticks)
	}
	return m, nil
}
