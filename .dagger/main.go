// ssecodec CI/CD
//
// Package main provides reproducible builds and tests locally and in GitHub actions.
package main

import (
	"context"

	"dagger/ssecodec/internal/dagger"
)

// Ssecodec is the main module for the ssecodec CI/CD pipeline
type Ssecodec struct {
	// Project source directory
	//
	// +private
	Source *dagger.Directory
}

// New creates a new ssecodec CI/CD module instance
func New(
	// Project source directory.
	//
	// +defaultPath="/"
	// +ignore=[".git", ".direnv", ".devenv", "build", "tmp"]
	source *dagger.Directory,
) *Ssecodec {
	return &Ssecodec{
		Source: source,
	}
}

// goContainer returns a Go container with module and build caches and the
// project source mounted. The codec is pure Go, so CGO stays off.
func (s *Ssecodec) goContainer() *dagger.Container {
	return dag.Container().
		From("golang:1.25-alpine").
		WithEnvVariable("CGO_ENABLED", "0").
		WithEnvVariable("PATH", "/go/bin:$PATH", dagger.ContainerWithEnvVariableOpts{Expand: true}).
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build")).
		WithWorkdir("/src").
		WithDirectory("/src", s.Source)
}

// Test runs the ssecodec unit tests via "go test"
func (s *Ssecodec) Test(ctx context.Context) (string, error) {
	return s.goContainer().
		WithExec([]string{"go", "test", "-race", "./..."}).
		Stdout(ctx)
}
