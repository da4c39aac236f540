// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package podinspect

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/graphpod/pod/lib/pod"
)

// Theme defines the color palette for the POD tree browser. Colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// Fields cover universal chrome (text, selection, borders) and one
// color per wire tag, since the tree browser's primary job is making
// the tagged structure of a POD legible at a glance.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// TagColors is indexed by pod.Tag. Containers (Struct, Object,
	// Array, Choice, Sequence) get cool colors; scalars get warm
	// colors, mirroring the wire format's own tagged/raw distinction.
	TagColors [pod.TagSequence + 1]lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	SearchHighlightBackground lipgloss.Color
	SearchCurrentBackground   lipgloss.Color

	ErrorForeground lipgloss.Color
}

// TagColor returns the color for a wire tag, or NormalText for a tag
// outside the known range (shouldn't happen for a tag decoded by
// [pod.Parser], but a corrupt or forward-versioned tree could produce
// one).
func (theme Theme) TagColor(tag pod.Tag) lipgloss.Color {
	if int(tag) < 0 || int(tag) >= len(theme.TagColors) {
		return theme.NormalText
	}
	return theme.TagColors[tag]
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	TagColors: [pod.TagSequence + 1]lipgloss.Color{
		pod.TagNone:      lipgloss.Color("240"), // dim gray
		pod.TagBool:      lipgloss.Color("141"), // light purple
		pod.TagID:        lipgloss.Color("75"),  // blue
		pod.TagInt:       lipgloss.Color("114"), // green
		pod.TagLong:      lipgloss.Color("114"), // green
		pod.TagFloat:     lipgloss.Color("220"), // amber
		pod.TagDouble:    lipgloss.Color("220"), // amber
		pod.TagString:    lipgloss.Color("222"), // pale yellow
		pod.TagBytes:     lipgloss.Color("208"), // orange
		pod.TagPointer:   lipgloss.Color("196"), // red
		pod.TagFd:        lipgloss.Color("196"), // red
		pod.TagRectangle: lipgloss.Color("117"), // light blue
		pod.TagFraction:  lipgloss.Color("117"), // light blue
		pod.TagArray:     lipgloss.Color("81"),  // cyan
		pod.TagStruct:    lipgloss.Color("81"),  // cyan
		pod.TagObject:    lipgloss.Color("39"),  // deep blue
		pod.TagProperty:  lipgloss.Color("245"), // gray
		pod.TagChoice:    lipgloss.Color("135"), // violet
		pod.TagSequence:  lipgloss.Color("135"), // violet
	},

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	SearchHighlightBackground: lipgloss.Color("58"),
	SearchCurrentBackground:   lipgloss.Color("100"),

	ErrorForeground: lipgloss.Color("196"),
}
