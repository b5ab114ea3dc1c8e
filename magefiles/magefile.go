//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/joho/godotenv"
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "bin/calcverse"

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Build tidies deps, then compiles to ./bin/calcverse.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building calcverse binary...")
	return sh.Run("go", "build", "-o", binary, "./cmd/calcverse")
}

// Serve builds then starts the HTTP server.
func Serve() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server...")
	return sh.RunV("./"+binary, "serve")
}

// Scenarios builds then runs the example scenario file.
func Scenarios() error {
	mg.Deps(Build)
	return sh.RunV("./"+binary, "run", "--config", "scenarios.yaml.example")
}

// Test runs all unit tests with the race detector.
func Test() error {
	fmt.Println(">> Running tests...")
	return sh.RunV("go", "test", "-race", "./...")
}

// Lint runs golangci-lint if available.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println(">> golangci-lint not found; skipping.")
		return nil
	}
	return sh.Run("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println(">> Cleaning...")
	return os.RemoveAll("bin")
}

func init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Println(">> error loading .env file:", err)
	}
}
