package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// printer writes human readable output, coloured when w is a terminal.
type printer struct {
	w    io.Writer
	ok   func(a ...interface{}) string
	path func(a ...interface{}) string
}

func newPrinter(w io.Writer) *printer {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	if !isTerminal(w) {
		green.DisableColor()
		cyan.DisableColor()
	}
	return &printer{
		w:    w,
		ok:   green.SprintFunc(),
		path: cyan.SprintFunc(),
	}
}

func (p *printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format, a...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q, want %s or %s", format, formatJSON, formatYAML)
	}
}

// encode writes v to w in the given format.
func encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return checkFormat(format)
	}
}
