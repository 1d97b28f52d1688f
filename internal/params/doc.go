// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package params reads the parameter file: a newline delimited list of values
// (link targets, serve ports) kept next to the installed shorty binary.
//
// The file is positional. Which line a verb reads is declared by the verb
// itself; this package only loads the lines and reports configuration errors.
// Every call to Source.Lines reads the file again, nothing is cached.
//
// Locations using go-getter syntax (for example git::https://host/repo//shorty.params)
// are downloaded with github.com/hashicorp/go-getter/v2 before being read.
package params
