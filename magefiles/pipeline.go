//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Explore prints the exploration report for data/metadata.csv.
func Explore() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "explore")
}

// Visualize writes the chart images into images/.
func Visualize() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "visualize")
}

// Dashboard serves the interactive dashboard on :8501.
func Dashboard() error {
	mg.Deps(Build)
	return sh.RunV(binPath(), "dashboard")
}

// Save stores the cleaned metadata as a new run in data/cord19.db.
func Save() error {
	mg.Deps(Build, Init)
	return sh.RunV(binPath(), "store", "save")
}
