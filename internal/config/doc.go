// Package config holds the settings of the fetch and render commands.
//
// Config configures a catalogue fetch and AnimationConfig a render run.
// Both start from defaults, are overridden by the optional YAML file
// (.exotimeline in the current or home directory) and then by command-line
// flags, and are checked with Validate before use.
package config
