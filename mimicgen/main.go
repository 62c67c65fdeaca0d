// mimic/mimicgen is a tool to generate typed mock facades for Go interfaces.
// To use it, install it with `go install github.com/toejough/mimic/mimicgen@latest`
// and in your test files, add a `//go:generate mimicgen <file> <interface>` comment to generate a
// facade for the specified interface. By default, the generated struct will be named
// <interface>Mock. Add a `--name <mockname>` flag to specify a custom name, and `--out <file>`
// to control the output path. The generated facade is placed in a `_test.go` file in the same
// package as the source file.
package main

import (
	"fmt"
	"os"

	"github.com/toejough/mimic/mimicgen/run"
)

// main is the entry point of the mimicgen tool.
func main() {
	if os.Args == nil {
		return
	}

	err := run.Run(os.Args, &realFileSystem{}, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements run.FileSystem using the os package.
type realFileSystem struct{}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}
