package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rcliao/shadow-journal/internal/config"
	"github.com/rcliao/shadow-journal/internal/model"
)

// render writes v in the configured format. text renders the human form;
// when it is nil the text format falls back to JSON.
func render(cmd *cobra.Command, v any, text func(w io.Writer)) {
	w := cmd.OutOrStdout()
	switch cfg.Format {
	case config.FormatText:
		if text != nil {
			text(w)
			return
		}
	case config.FormatYAML:
		printYAML(w, v)
		return
	}
	printJSON(w, v)
}

func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("marshal", err)
	}
	fmt.Fprintln(w, string(data))
}

// printYAML goes through JSON first so field names match the JSON tags.
func printYAML(w io.Writer, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		exitErr("marshal", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		exitErr("marshal", err)
	}
	out, err := yaml.Marshal(generic)
	if err != nil {
		exitErr("marshal yaml", err)
	}
	fmt.Fprint(w, string(out))
}

func archetypeColor(a model.Archetype) *color.Color {
	switch a {
	case model.Tyrant:
		return color.New(color.FgRed)
	case model.Victim:
		return color.New(color.FgBlue)
	case model.Martyr:
		return color.New(color.FgHiMagenta)
	case model.Saboteur:
		return color.New(color.FgMagenta)
	case model.Judge:
		return color.New(color.FgYellow)
	case model.Rebel:
		return color.New(color.FgGreen)
	}
	panic(fmt.Sprintf("cli: no color for archetype %d", uint8(a)))
}

const barWidth = 20

// bar draws a 0..100 value as a fixed-width meter in the archetype's color.
func bar(a model.Archetype, value int) string {
	n := min(max(value, 0), 100) * barWidth / 100
	fill := archetypeColor(a).SprintFunc()
	return "[" + fill(strings.Repeat("#", n)) + strings.Repeat(".", barWidth-n) + "]"
}

func archetypeName(a model.Archetype) string {
	return archetypeColor(a).Add(color.Bold).Sprint(a.Info().Name)
}

var (
	dim   = color.New(color.Faint).SprintFunc()
	title = color.New(color.Bold).SprintFunc()
)

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
