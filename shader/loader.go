// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"fmt"
	"os"
	"path/filepath"

	"cogentcore.org/torch/pathlet"
)

// ShaderCompileError wraps a failure from a Compiler, naming the source
// that failed.
type ShaderCompileError struct {
	Source pathlet.Pathlet
	Err    error
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("compiling shader %s: %v", e.Source.String(), e.Err)
}

func (e *ShaderCompileError) Unwrap() error { return e.Err }

// ShaderNotFoundError is returned when a Path can't be resolved on any
// include path or in the shader database.
type ShaderNotFoundError struct {
	Source pathlet.Pathlet
}

func (e *ShaderNotFoundError) Error() string {
	return fmt.Sprintf("shader source %s not found on any include path", e.Source.String())
}

// CompileOptions carries the preprocessor variables and target spec a
// Compiler should apply. It's a plain struct rather than a builder or
// functional-options chain, matching the pack's general preference for
// small config structs built directly by the caller.
type CompileOptions struct {
	Variables map[string]string
}

// Compiler turns GLSL source text into a SPIR-V binary. Actual shader
// compilation (invoking glslang/shaderc) is an external collaborator the
// same way device bring-up is: callers inject a concrete Compiler rather
// than this package shelling out to a toolchain itself.
type Compiler interface {
	Compile(source string, opts CompileOptions) ([]byte, error)
}

// Loader resolves a shader Path to compiled SPIR-V, searching includePaths
// in order and falling back to the shader database, then recompiling only
// when the cached binary is stale.
type Loader struct {
	includePaths []string
	outDir       string
	database     *Database
	compiler     Compiler
	opts         CompileOptions
}

// NewLoader returns a Loader that searches includePaths (in order) for
// shader sources, writes compiled binaries under outDir, and consults db
// (which may be nil) when a source isn't found directly.
func NewLoader(includePaths []string, outDir string, db *Database, compiler Compiler, opts CompileOptions) *Loader {
	return &Loader{
		includePaths: includePaths,
		outDir:       outDir,
		database:     db,
		compiler:     compiler,
		opts:         opts,
	}
}

// Load resolves p to a compiled SPIR-V binary, recompiling it if the
// cached binary is missing, older than the source, or was compiled with
// different preprocessor variables.
func (l *Loader) Load(p Path) ([]byte, error) {
	srcPath, err := l.findShaderSource(p.SourcePath())
	if err != nil {
		return nil, err
	}

	binPath := filepath.Join(l.outDir, p.BinaryPath().FilesystemPath(""))
	varsPath := binPath + ".vars"

	if !l.binaryDirty(srcPath, binPath, varsPath) {
		logger().Debug("shader cache hit", "source", srcPath, "binary", binPath)
		return os.ReadFile(binPath)
	}
	logger().Info("shader cache miss, recompiling", "source", srcPath, "binary", binPath)
	return l.compile(srcPath, binPath, varsPath)
}

// findShaderSource searches includePaths in order, then the shader
// database, for source's underlying file.
func (l *Loader) findShaderSource(source pathlet.Pathlet) (string, error) {
	for _, dir := range l.includePaths {
		candidate := source.FilesystemPath(dir)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if l.database != nil {
		if info, ok := l.database.Get(source.String()); ok {
			candidate := info.Source.FilesystemPath("")
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", &ShaderNotFoundError{Source: source}
}

// binaryDirty reports whether binPath needs to be (re)compiled from
// srcPath: missing, older than the source, or compiled with a different
// set of preprocessor variables than this Loader is currently configured
// with. The mtime check alone ignores transitive #include dependencies (as
// specified); Variables is folded in separately so a variable change always
// forces recompilation regardless of file mtimes.
func (l *Loader) binaryDirty(srcPath, binPath, varsPath string) bool {
	binTime := mtime(binPath)
	if binTime.IsZero() {
		return true
	}
	if mtime(srcPath).After(binTime) {
		return true
	}

	wantKey := freshnessKey(l.opts.Variables)
	gotKey, err := os.ReadFile(varsPath)
	if err != nil {
		return true
	}
	return string(gotKey) != wantKey
}

func (l *Loader) compile(srcPath, binPath, varsPath string) ([]byte, error) {
	source, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, fmt.Errorf("reading shader source %s: %w", srcPath, err)
	}

	pl, plErr := pathlet.New(srcPath)
	code, err := l.compiler.Compile(string(source), l.opts)
	if err != nil {
		logger().Warn("shader compile failed", "source", srcPath, "error", err)
		if plErr == nil {
			return nil, &ShaderCompileError{Source: pl, Err: err}
		}
		return nil, &ShaderCompileError{Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(binPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating shader output directory: %w", err)
	}
	if err := os.WriteFile(binPath, code, 0o644); err != nil {
		return nil, fmt.Errorf("writing shader binary %s: %w", binPath, err)
	}
	if err := os.WriteFile(varsPath, []byte(freshnessKey(l.opts.Variables)), 0o644); err != nil {
		return nil, fmt.Errorf("writing shader freshness marker %s: %w", varsPath, err)
	}
	return code, nil
}
