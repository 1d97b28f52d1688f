// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatch

import (
	"io"

	"github.com/matt-FFFFFF/shorty/internal/commandregistry"
)

var _ commandregistry.Session = (*Dispatcher)(nil)

// Out implements commandregistry.Session.
func (d *Dispatcher) Out() io.Writer { return d.out }

// ErrOut implements commandregistry.Session.
func (d *Dispatcher) ErrOut() io.Writer { return d.errOut }

// Registry implements commandregistry.Session.
func (d *Dispatcher) Registry() *commandregistry.Registry { return d.reg }

// ManifestPath implements commandregistry.Session.
func (d *Dispatcher) ManifestPath() string { return d.manifest }

// Executor implements commandregistry.Session.
func (d *Dispatcher) Executor() commandregistry.Executor { return d.exec }

// Params implements commandregistry.Session.
func (d *Dispatcher) Params() commandregistry.ParamSource { return d.params }
