// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/renode-run/lib/envsub"
	"github.com/bureau-foundation/renode-run/lib/textblock"
)

// Syntax markers used to classify platform descriptions.
const (
	// BuiltinPrefix starts a reference to a platform file bundled with
	// Renode, e.g. "@platforms/cpus/stm32f4.repl".
	BuiltinPrefix = "@"

	// ImportPrefix marks a local file whose content is copied into the
	// output directory, e.g. "<boards/custom.repl".
	ImportPrefix = "<"

	// PathSigil prefixes file paths in generated directives.
	PathSigil = "@"

	// PlatformExtension is the suffix of platform description files.
	PlatformExtension = "repl"

	// NamespaceKeyword starts inline descriptions that declare their own
	// namespace ("using sysbus"). Those are emitted without indentation.
	NamespaceKeyword = "using"
)

// Kind classifies a platform description.
type Kind int

const (
	// KindBuiltin is a platform file bundled with Renode. Content is the
	// reference as written.
	KindBuiltin Kind = iota

	// KindLocalFile is an existing local file referenced by path.
	// Content is the substituted path.
	KindLocalFile

	// KindImportedFile is a local file whose substituted content is
	// written to the output directory under FileName.
	KindImportedFile

	// KindInline is a platform description given as text.
	KindInline
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "renode-platform"
	case KindLocalFile:
		return "local-platform"
	case KindImportedFile:
		return "imported-platform"
	case KindInline:
		return "platform"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ErrEmptyDescription is returned for a platform description that is
// empty after de-indentation.
var ErrEmptyDescription = errors.New("platform description is empty")

// FileNotFoundError reports a local platform description file that does
// not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("local platform description file %q could not be found", e.Path)
}

// ReadError reports a failure reading an imported platform description.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading platform description file %q: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// FileNameError reports an imported platform description path with no
// usable file name. Paths are only imported when they end in
// PlatformExtension, which always leaves a base name, so classification
// does not currently produce it.
type FileNameError struct {
	Path string
}

func (e *FileNameError) Error() string {
	return fmt.Sprintf("cannot determine the file name of platform description %q", e.Path)
}

// PlatformDescription is one classified platform description.
type PlatformDescription struct {
	content  string
	kind     Kind
	fileName string
}

// NewPlatformDescription classifies desc after de-indenting it. The rules
// are applied in order:
//
//  1. empty → ErrEmptyDescription
//  2. starts with BuiltinPrefix and ends with PlatformExtension → KindBuiltin,
//     left unsubstituted for Renode to resolve
//  3. a single line ending with PlatformExtension → KindLocalFile, or
//     KindImportedFile when it starts with ImportPrefix; the path is
//     substituted and must exist
//  4. anything else → KindInline
func NewPlatformDescription(desc string) (PlatformDescription, error) {
	desc = textblock.Dedent(desc)

	if desc == "" {
		return PlatformDescription{}, ErrEmptyDescription
	}

	isPlatformFile := strings.HasSuffix(desc, PlatformExtension)
	singleLine := !strings.Contains(desc, "\n")

	switch {
	case strings.HasPrefix(desc, BuiltinPrefix) && isPlatformFile:
		return PlatformDescription{content: desc, kind: KindBuiltin}, nil

	case singleLine && isPlatformFile && strings.HasPrefix(desc, ImportPrefix):
		return newImportedFile(strings.TrimPrefix(desc, ImportPrefix))

	case singleLine && isPlatformFile:
		path, err := resolveLocalPath(desc)
		if err != nil {
			return PlatformDescription{}, err
		}
		return PlatformDescription{content: path, kind: KindLocalFile}, nil

	default:
		return newInline(desc)
	}
}

func newImportedFile(desc string) (PlatformDescription, error) {
	path, err := resolveLocalPath(desc)
	if err != nil {
		return PlatformDescription{}, err
	}

	fileName := filepath.Base(path)
	if fileName == "." || fileName == ".." || fileName == string(filepath.Separator) {
		return PlatformDescription{}, &FileNameError{Path: path}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return PlatformDescription{}, &ReadError{Path: path, Err: err}
	}

	content, err := envsub.Substitute(string(data))
	if err != nil {
		return PlatformDescription{}, err
	}

	return PlatformDescription{content: content, kind: KindImportedFile, fileName: fileName}, nil
}

// newInline substitutes desc. Text is indented to sit inside the
// triple-quoted block of LoadPlatformDescriptionFromString unless it
// opens with a namespace declaration.
//
// TODO: the namespace check only recognizes a leading "using"; inline
// text that starts with a comment or blank line followed by "using" is
// still indented.
func newInline(desc string) (PlatformDescription, error) {
	content, err := envsub.Substitute(desc)
	if err != nil {
		return PlatformDescription{}, err
	}
	if !strings.HasPrefix(content, NamespaceKeyword) {
		content = textblock.Indent(content, blockIndent)
	}
	return PlatformDescription{content: content, kind: KindInline}, nil
}

func resolveLocalPath(desc string) (string, error) {
	path, err := envsub.Substitute(desc)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", &FileNotFoundError{Path: path}
	}
	return path, nil
}

// Content returns the classified content: the reference for
// KindBuiltin, the path for KindLocalFile, the substituted file content
// for KindImportedFile, and the (possibly indented) text for KindInline.
func (p PlatformDescription) Content() string { return p.content }

// Kind returns the classification.
func (p PlatformDescription) Kind() Kind { return p.kind }

// FileName returns the base name an imported file is staged under, or ""
// for other kinds.
func (p PlatformDescription) FileName() string { return p.fileName }

// Render returns the text used in the generated load directive.
// Imported files are referenced by their staged name, never by content.
func (p PlatformDescription) Render() string {
	switch p.kind {
	case KindLocalFile:
		return PathSigil + p.content
	case KindImportedFile:
		return PathSigil + p.fileName
	default:
		return p.content
	}
}
