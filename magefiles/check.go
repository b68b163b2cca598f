//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Check mg.Namespace

// Runs go vet on every package.
func (Check) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Runs the unit tests.
func (Check) Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Runs go mod tidy.
func (Check) Tidy() error {
	return sh.Run("go", "mod", "tidy")
}

// Runs vet and tests.
func (Check) All() {
	mg.SerialDeps(Check.Vet, Check.Test)
}
