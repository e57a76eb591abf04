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

// Swagger regenerates docs/ from the handler annotations.
func Swagger() error {
	if _, err := exec.LookPath("swag"); err != nil {
		fmt.Println(">> swag not found; install with:")
		fmt.Println("   go install github.com/swaggo/swag/cmd/swag@latest")
		return err
	}
	fmt.Println(">> swag init")
	return sh.Run("swag", "init", "-g", "cmd/api/main.go", "-o", "docs", "--outputTypes", "go")
}

// Build compiles the API server and the contact CLI into ./bin.
func Build() error {
	mg.Deps(Tidy)
	fmt.Println(">> Building binaries...")
	if err := sh.Run("go", "build", "-o", "bin/contact-api", "./cmd/api"); err != nil {
		return err
	}
	return sh.Run("go", "build", "-o", "bin/contact", "./cmd/contact")
}

// Run builds then starts the API server.
func Run() error {
	mg.Deps(Build)
	fmt.Println(">> Starting server...")
	return sh.RunV("./bin/contact-api")
}

// Dev starts the API with the console mail driver so nothing is actually sent.
func Dev() error {
	fmt.Println(">> Dev mode: go run ./cmd/api (MAIL_DRIVER=console)")
	return sh.RunWithV(map[string]string{
		"MAIL_DRIVER": "console",
		"LOG_FORMAT":  "console",
		"LOG_LEVEL":   "debug",
	}, "go", "run", "./cmd/api")
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println(">> go mod tidy...")
	return sh.Run("go", "mod", "tidy")
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
