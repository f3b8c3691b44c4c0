/*
 * errors.go, part of goErrat.
 *
 * Copyright 2026 The goErrat authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package errat

import "fmt"

// Error is the interface implemented by all errors in this library. The
// Decorate method allows callers to add information while passing an error
// up, without changing its type or wrapping it in something else. Each call
// returns the current decoration slice; an empty string only queries it.
type Error interface {
	Error() string
	Decorate(string) []string
}

// ParseError reports malformed or empty structural input. It is
// unrecoverable for the structure at hand; batch callers are expected to
// report it and move on.
type ParseError struct {
	message string
	deco    []string
}

func NewParseError(format string, a ...interface{}) *ParseError {
	return &ParseError{message: fmt.Sprintf(format, a...)}
}

func (e *ParseError) Error() string { return e.message }

func (e *ParseError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

// ScoringError reports an internal inconsistency between the contact counts
// and the calibration data. It should not occur with well-formed input.
type ScoringError struct {
	message string
	deco    []string
}

func NewScoringError(format string, a ...interface{}) *ScoringError {
	return &ScoringError{message: fmt.Sprintf(format, a...)}
}

func (e *ScoringError) Error() string { return e.message }

func (e *ScoringError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

// RenderError reports an inconsistency between an error profile and the
// structure it claims to describe, or a failure to write an artifact.
type RenderError struct {
	message string
	deco    []string
}

func NewRenderError(format string, a ...interface{}) *RenderError {
	return &RenderError{message: fmt.Sprintf(format, a...)}
}

func (e *RenderError) Error() string { return e.message }

func (e *RenderError) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}
