// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package commandregistry holds the verbs shorty understands and turns an
// invocation into a command spec.
//
// Verbs are declared as data: a Rule names the token, the template used to
// build the command, the positional argument it accepts and, for verbs that
// read the parameter file, a Selector mapping the discriminator argument to a
// parameter file line. Resolve validates the invocation against the rule before
// anything is read from disk, so usage errors never depend on the parameter file.
//
// User supplied values only ever reach a command as discrete argv elements.
// Register rejects shell templates that would need them.
package commandregistry
