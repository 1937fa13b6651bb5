package structdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// FormatPrettyString is a convenience wrapper that outputs to a string instead
// of an io.Writer
func FormatPrettyString(res *Result, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, res, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one difference per line:
//
//	~ path  left → right
//
// paths are padded to a common display width, so labels in wide scripts line
// up. if colorTTY is true the marker is blue, left values red & right values
// green
func FormatPretty(w io.Writer, res *Result, colorTTY bool) error {
	if res == nil {
		return nil
	}
	marker, left, right := newPalette(colorTTY)

	width := 0
	for _, p := range res.diffs {
		width = max(width, runewidth.StringWidth(p.Path))
	}

	for _, p := range res.diffs {
		if _, err := fmt.Fprintf(w, "%s %s  %s → %s\n",
			marker.Sprint("~"),
			runewidth.FillRight(p.Path, width),
			left.Sprint(formatValue(p.Left)),
			right.Sprint(formatValue(p.Right)),
		); err != nil {
			return err
		}
	}
	return nil
}

func newPalette(colorTTY bool) (marker, left, right *color.Color) {
	marker = color.New(color.FgBlue)
	left = color.New(color.FgRed)
	right = color.New(color.FgGreen)
	for _, c := range []*color.Color{marker, left, right} {
		if colorTTY {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return marker, left, right
}

// formatValue renders a value as JSON where possible, falling back to %v for
// values JSON can't represent (complex numbers, funcs, channels)
func formatValue(v interface{}) string {
	if v == nil {
		return "null"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, colorTTY bool) string {
	if ds == nil {
		return "<nil>"
	}
	marker, _, _ := newPalette(colorTTY)

	buf := &bytes.Buffer{}
	differencesWord := "differences"
	if ds.Leaves == 1 {
		differencesWord = "difference"
	}
	buf.WriteString(marker.Sprintf("%d %s.", ds.Leaves, differencesWord))

	compositesWord := "composites"
	if ds.Composites == 1 {
		compositesWord = "composite"
	}
	buf.WriteString(fmt.Sprintf(" %d %s.", ds.Composites, compositesWord))

	collectionsWord := "collections"
	if ds.Collections == 1 {
		collectionsWord = "collection"
	}
	buf.WriteString(fmt.Sprintf(" %d %s.", ds.Collections, collectionsWord))

	buf.WriteString(fmt.Sprintf(" %d skipped.", ds.Skipped))

	if ds.MaxDepth > 0 {
		buf.WriteString(fmt.Sprintf(" depth %d.", ds.MaxDepth))
	}

	buf.WriteRune('\n')
	return buf.String()
}
