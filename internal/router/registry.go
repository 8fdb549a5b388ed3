// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package router

import (
	"context"
	"io"
	"sort"
	"strings"
)

// Loader turns the bytes of one input file into records.
type Loader interface {
	GetName() string
	GetSupportedExtensions() []string
	Load(ctx context.Context, filePath string, r io.Reader) (*Source, error)
}

// LoaderRegistry maps lowercase file extensions to loaders
type LoaderRegistry struct {
	loaders map[string]Loader
}

// NewLoaderRegistry creates a new loader registry
func NewLoaderRegistry() *LoaderRegistry {
	return &LoaderRegistry{
		loaders: make(map[string]Loader),
	}
}

// Register adds a loader for every extension it supports, replacing any
// loader previously registered for the same extension
func (r *LoaderRegistry) Register(loader Loader) {
	for _, ext := range loader.GetSupportedExtensions() {
		r.loaders[strings.ToLower(ext)] = loader
	}
}

// Lookup returns the loader for ext, or nil
func (r *LoaderRegistry) Lookup(ext string) Loader {
	return r.loaders[strings.ToLower(ext)]
}

// GetRegisteredExtensions returns all registered extensions in sorted order
func (r *LoaderRegistry) GetRegisteredExtensions() []string {
	exts := make([]string, 0, len(r.loaders))
	for ext := range r.loaders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
