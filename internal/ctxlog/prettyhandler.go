// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/shorty/internal/color"
)

var (
	// ErrMarshalAttribute is returned when an error occurs while marshaling an attribute.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log messages.
const TimeFormat = "[15:04:05.000]"

// PrettyHandler renders records as a single human readable line:
// timestamp, level, message and the attributes as indented JSON.
type PrettyHandler struct {
	h                slog.Handler
	r                func([]string, slog.Attr) slog.Attr
	b                *bytes.Buffer
	m                *sync.Mutex
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

// Option configures a PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables colour output.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables colour output when the color package has it enabled.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// WithOutputEmptyAttrs writes "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}

// NewPrettyHandler creates a PrettyHandler. A nil writer defaults to os.Stderr.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	handler := &PrettyHandler{
		b: buf,
		h: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		r:      handlerOptions.ReplaceAttr,
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}

	for _, opt := range options {
		opt(handler)
	}

	return handler
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	c.h = h.h.WithAttrs(attrs)

	return c
}

// WithGroup implements slog.Handler.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	c := h.clone()
	c.h = h.h.WithGroup(name)

	return c
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		h:                h.h,
		r:                h.r,
		b:                h.b,
		m:                h.m,
		writer:           h.writer,
		colour:           h.colour,
		outputEmptyAttrs: h.outputEmptyAttrs,
	}
}

// Handle implements slog.Handler.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	out := strings.Builder{}

	if ts, ok := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat))); ok {
		out.WriteString(h.paint(ts, color.FgWhite))
		out.WriteString(" ")
	}

	if lvl, ok := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); ok {
		out.WriteString(h.paint(lvl+":", levelColour(r.Level)))
		out.WriteString(" ")
	}

	if msg, ok := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); ok {
		out.WriteString(h.paint(msg, color.FgHiWhite))
		out.WriteString(" ")
	}

	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	if h.outputEmptyAttrs || len(attrs) > 0 {
		f := colorjson.NewFormatter()
		f.Indent = 2
		f.DisabledColor = !h.colour

		b, err := f.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		out.Write(b)
	}

	out.WriteString("\n")

	if _, err := io.WriteString(h.writer, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin applies ReplaceAttr to one of the built-in keys.
// It returns false when the replacement removed the attribute.
func (h *PrettyHandler) builtin(key string, v slog.Value) (string, bool) {
	a := slog.Attr{Key: key, Value: v}
	if h.r != nil {
		a = h.r([]string{}, a)
	}

	if a.Equal(slog.Attr{}) {
		return "", false
	}

	return a.Value.String(), true
}

func (h *PrettyHandler) paint(s string, c color.Code) string {
	if !h.colour {
		return s
	}

	return color.Colorize(s, c)
}

func levelColour(l slog.Level) color.Code {
	switch {
	case l <= slog.LevelDebug:
		return color.FgWhite
	case l <= slog.LevelInfo:
		return color.FgCyan
	case l < slog.LevelWarn:
		return color.FgBlue
	case l < slog.LevelError:
		return color.FgYellow
	case l <= slog.LevelError+1:
		return color.FgRed
	default:
		return color.FgHiMagenta
	}
}

// computeAttrs renders the record through the inner JSON handler and decodes the result.
func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.m.Lock()
	defer func() {
		h.b.Reset()
		h.m.Unlock()
	}()

	if err := h.h.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.b.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}

	return attrs, nil
}

// suppressDefaults removes the built-in keys from the inner JSON handler's output,
// they are rendered separately by Handle.
func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey ||
			a.Key == slog.LevelKey ||
			a.Key == slog.MessageKey {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}
