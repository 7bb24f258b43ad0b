// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// The package consolidates the 3-step CUE parsing pattern used for every
// declarative file gauntlet reads:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with schema
//  3. Validate and decode to Go struct
//
// # Usage
//
//	//go:embed matrixfile_schema.cue
//	var schema string
//
//	result, err := cueutil.Decode[Matrix](
//	    schema,
//	    fileBytes,
//	    "#Matrix",
//	    cueutil.WithFilename("matrix.cue"),
//	)
//	if err != nil {
//	    return nil, err  // Error includes the CUE path for debugging
//	}
//	return result.Value, nil
package cueutil
