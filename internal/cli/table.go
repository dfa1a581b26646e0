package cli

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	isatty "github.com/mattn/go-isatty"
)

// shouldColorize resolves the --color setting. "auto" colors only terminals.
func shouldColorize(out io.Writer, wantColor string) bool {
	switch wantColor {
	case "yes":
		return true
	case "no":
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newTable(out io.Writer, wantColor string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)

	fancy := shouldColorize(out, wantColor)

	colors := table.ColorOptions{}
	box := table.StyleBoxDefault
	if fancy {
		colors.Header = text.Colors{text.Italic}
		colors.Border = text.Colors{text.FgHiBlack}
		colors.Separator = text.Colors{text.FgHiBlack}
		box = table.StyleBoxRounded
	}

	t.SetStyle(table.Style{
		Box:     box,
		Color:   colors,
		Format:  table.FormatOptions{},
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
	})

	return t
}
