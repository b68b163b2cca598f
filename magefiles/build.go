//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Builds the demo binary into bin/.
func (Build) Demo() error {
	mg.Deps(Check.Vet)
	return sh.RunV("go", "build", "-o", binary(), "./cmd/demo")
}

// Removes build outputs.
func (Build) Clean() error {
	return sh.Rm("bin")
}
