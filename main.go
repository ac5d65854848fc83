// Package main provides the orion CLI application.
// orion converts biological datasets into KGX node and edge tables.
package main

import "github.com/beasleyjonm/ORION/cmd"

func main() {
	cmd.Execute()
}
