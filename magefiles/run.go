//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs the demo.
func (Run) Demo() error {
	mg.Deps(Build.Demo)
	fmt.Println("Run demo...")
	_, err := executeCmd(binary(), withStream())
	return err
}

// Runs the demo and records the session to replay.json.
func (Run) Record() error {
	mg.Deps(Build.Demo)
	_, err := executeCmd(binary(), withArgs("-record", "replay.json"), withStream())
	return err
}

// Plays back replay.json.
func (Run) Replay() error {
	mg.Deps(Build.Demo)
	_, err := executeCmd(binary(), withArgs("-replay", "replay.json"), withStream())
	return err
}
