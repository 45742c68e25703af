// Copyright 2025 AIOxide. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gguf reads GGUF model files.
//
// # Overview
//
// A GGUF file starts with a fixed header, a table of typed key/value
// metadata and a table of tensor descriptors. This package decodes all
// three in a single forward pass and never touches the tensor data that
// follows:
//   - Header: magic, version (only v3), tensor and metadata counts
//   - Metadata: ordered key/value pairs with typed accessors
//   - Tensors: name, shape, quantization type and data offset
//
// # Basic Usage
//
//	f, err := gguf.Open("model.gguf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := f.ModelConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%s: %d layers, ~%d params\n",
//	    cfg.Architecture, cfg.BlockCount, cfg.EstimatedParamCount())
//
// # Metadata Coercion
//
// RequireUint32 accepts u32 values and truncates u64 values. RequireUint64
// accepts u64 values and widens u32 values. Strings and f32 values must
// match exactly. The Get variants return false on a missing key and on a
// type mismatch alike.
//
// # Errors
//
// Every failure is a *Error. Use errors.Is with the kind sentinels
// (ErrIO, ErrFormat, ErrKeyNotFound, ErrTypeMismatch, ErrIncompleteConfig)
// or the format reasons (ErrInvalidMagic, ErrUnsupportedVersion, ...), and
// errors.As to read the detail fields.
package gguf
