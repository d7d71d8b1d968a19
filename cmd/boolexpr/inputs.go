package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/sexp"
)

// input is one expression to process. Either tree or err is set.
type input struct {
	source string // Label used in positions: file name or "arg N"
	index  int    // 1-based position of the expression within its source
	tree   sexp.Value
	err    error
}

// label names the expression in command output.
func (in input) label() string {
	return fmt.Sprintf("%s#%d", in.source, in.index)
}

// collectInputs reads expressions from command arguments and from file.
// A file named "-" is read from the command's standard input.
func collectInputs(cmd *cobra.Command, args []string, file string) ([]input, error) {
	var inputs []input

	for i, arg := range args {
		inputs = append(inputs, readText(arg, fmt.Sprintf("arg %d", i+1))...)
	}

	if file != "" {
		fromFile, err := readInputFile(cmd, file)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, fromFile...)
	}

	return inputs, nil
}

// readInputFile reads every expression in path. YAML files hold one tree
// written as nested sequences; other files hold s-expression text.
func readInputFile(cmd *cobra.Command, path string) ([]input, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		var in io.Reader = os.Stdin
		if cmd != nil {
			in = cmd.InOrStdin()
		}
		data, err = io.ReadAll(in)
		path = "<stdin>"
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, &bxErrors.Error{
			Type:    bxErrors.ErrorTypeIO,
			Message: fmt.Sprintf("failed to read %s: %v", path, err),
			Cause:   err,
		}
	}

	if isYAML(path) {
		tree, err := sexp.ReadYAML(data, path)
		if err != nil {
			return []input{{source: path, index: 1, err: bxErrors.FromReadError(err)}}, nil
		}
		return []input{{source: path, index: 1, tree: tree}}, nil
	}
	return readText(string(data), path), nil
}

func readText(src, source string) []input {
	trees, err := sexp.ReadAllSource(src, source)
	if err != nil {
		return []input{{source: source, index: 1, err: bxErrors.FromReadError(err)}}
	}
	if len(trees) == 0 {
		return []input{{source: source, index: 1, err: bxErrors.FromReadError(
			&sexp.ReadError{Position: sexp.Position{Source: source, Line: 1, Column: 1}, Message: "empty input"},
		)}}
	}

	inputs := make([]input, 0, len(trees))
	for i, tree := range trees {
		inputs = append(inputs, input{source: source, index: i + 1, tree: tree})
	}
	return inputs
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// expressionFiles lists files under dir whose extension is in exts,
// skipping hidden entries. The result is sorted.
func expressionFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		for _, want := range exts {
			if strings.EqualFold(ext, want) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expression files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
