// Package ui renders pipeline events for a terminal and asks the user for
// confirmation.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	cerrors "github.com/conneroisu/new-component/internal/errors"
	"github.com/conneroisu/new-component/internal/scaffolding"
)

const rule = "========================================="

// Console is a scaffolding.Reporter that prints to a terminal.
type Console struct {
	out io.Writer

	gold      *color.Color
	blue      *color.Color
	darkGray  *color.Color
	midGray   *color.Color
	green     *color.Color
	boldGreen *color.Color
	red       *color.Color
	boldRed   *color.Color
}

// NewConsole creates a Console writing to out. Colours are disabled when
// noColor is set, whatever the terminal supports.
func NewConsole(out io.Writer, noColor bool) *Console {
	c := &Console{
		out:       out,
		gold:      color.New(color.FgYellow, color.Bold),
		blue:      color.New(color.FgBlue, color.Bold),
		darkGray:  color.New(color.FgHiBlack),
		midGray:   color.New(color.FgWhite),
		green:     color.New(color.FgGreen),
		boldGreen: color.New(color.FgGreen, color.Bold),
		red:       color.New(color.FgRed),
		boldRed:   color.New(color.FgRed, color.Bold),
	}
	if noColor {
		for _, col := range []*color.Color{c.gold, c.blue, c.darkGray, c.midGray, c.green, c.boldGreen, c.red, c.boldRed} {
			col.DisableColor()
		}
	}
	return c
}

var _ scaffolding.Reporter = (*Console)(nil)

func (c *Console) println(a ...interface{}) {
	fmt.Fprintln(c.out, a...)
}

// Intro implements scaffolding.Reporter.
func (c *Console) Intro(intro scaffolding.Intro) {
	c.println()
	c.println(fmt.Sprintf("✨  Creating the %s component ✨", c.gold.Sprint(intro.Name)))
	c.println()

	c.println("Directory: ", c.blue.Sprint(intro.Dir))
	c.println("Extension: ", c.blue.Sprint("."+intro.Extension))
	c.println("Type:      ", c.variants(intro.Variant, intro.Variants))
	if intro.Style {
		c.println("Style:     ", c.blue.Sprint("yes"))
	}
	if intro.DryRun {
		c.println("Dry run:   ", c.blue.Sprint("nothing will be written"))
	}
	c.println(c.darkGray.Sprint(rule))
	c.println()
}

// variants lists the selected variant first, highlighted.
func (c *Console) variants(selected string, all []string) string {
	parts := []string{c.blue.Sprint(selected)}
	for _, v := range all {
		if v != selected {
			parts = append(parts, c.darkGray.Sprint(v))
		}
	}
	return strings.Join(parts, "  ")
}

// ItemCompleted implements scaffolding.Reporter.
func (c *Console) ItemCompleted(message string) {
	c.println(c.green.Sprint("✓"), message)
}

// Warning implements scaffolding.Reporter.
func (c *Console) Warning(message string) {
	c.println()
	c.println(c.gold.Sprintf("⚠️  Warning: %s", message))
	c.println()
}

// Error implements scaffolding.Reporter.
func (c *Console) Error(err error) {
	c.println()
	c.println(c.boldRed.Sprint("Error creating component."))
	c.println(c.red.Sprint(Describe(err)))
	var ce *cerrors.ComponentError
	if errors.As(err, &ce) && ce.Hint != "" {
		c.println(c.red.Sprint(ce.Hint))
	}
	c.println()
}

// Conclusion implements scaffolding.Reporter.
func (c *Console) Conclusion(result scaffolding.Result) {
	c.println()
	if result.DryRun {
		c.println(c.boldGreen.Sprint("Dry run complete, nothing was written."))
	} else {
		c.println(c.boldGreen.Sprint("Component created! 🚀 "))
	}
	c.println(c.midGray.Sprint("Thanks for using new-component."))
	c.println()
}

// Describe renders err for people: the message, the path when the message
// does not already name it, and the cause. Error codes are left out.
func Describe(err error) string {
	var ce *cerrors.ComponentError
	if !errors.As(err, &ce) {
		return err.Error()
	}

	msg := ce.Message
	if ce.Path != "" && !strings.Contains(msg, ce.Path) {
		msg = ce.Path + ": " + msg
	}
	if ce.Cause != nil {
		msg += ": " + ce.Cause.Error()
	}
	return msg
}
