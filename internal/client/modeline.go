package client

import (
	"fmt"
	"strings"

	"github.com/kestreledit/kestrel/internal/buffer"
	"github.com/kestreledit/kestrel/internal/ui"
)

// buildModeLine composes the modeline: the expanded format string, the
// presence-conditional indicators in fixed order, a separator, the
// engine's mode indicator, and the session trailer. A format error is
// logged to diagnostics and replaced by a visible error atom.
func (c *Client) buildModeLine() ui.DisplayLine {
	var line ui.DisplayLine

	fmtStr := c.options.ModelineFmt()
	expanded, err := c.expandModelineFmt(fmtStr)
	if err != nil {
		c.log.Errorf("modelinefmt %q: %v", fmtStr, err)
		line = append(line, ui.DisplayAtom{
			Text: "modelinefmt error, see diagnostics",
			Face: c.face(ui.FaceError),
		})
	} else {
		line = append(line, ui.DisplayAtom{Text: expanded, Face: c.face(ui.FaceStatusLine)})
	}

	buf := c.win.Buffer()
	info := c.face(ui.FaceInformation)
	if buf.IsModified() {
		line = append(line, ui.DisplayAtom{Text: "[+]", Face: info})
	}
	if c.engine.IsRecording() {
		text := fmt.Sprintf("[recording (%c)]", c.engine.RecordingRegister())
		line = append(line, ui.DisplayAtom{Text: text, Face: info})
	}
	if buf.Flags().Has(buffer.FlagNew) {
		line = append(line, ui.DisplayAtom{Text: "[new file]", Face: info})
	}
	if c.hooksDisabled {
		line = append(line, ui.DisplayAtom{Text: "[no-hooks]", Face: info})
	}
	if buf.Flags().Has(buffer.FlagFifo) {
		line = append(line, ui.DisplayAtom{Text: "[fifo]", Face: info})
	}

	line = append(line, ui.DisplayAtom{Text: " ", Face: c.face(ui.FaceStatusLine)})
	line = append(line, c.engine.ModeLine()...)
	line = append(line, ui.DisplayAtom{
		Text: fmt.Sprintf(" - %s@[%s]", c.name, c.registry.Session()),
		Face: c.face(ui.FaceStatusLine),
	})
	return line
}

// expandModelineFmt substitutes {bufname}, {client}, {session}, and
// {env:NAME} placeholders. Unknown or unclosed placeholders are errors.
func (c *Client) expandModelineFmt(fmtStr string) (string, error) {
	var out strings.Builder
	rest := fmtStr
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			out.WriteString(rest)
			return out.String(), nil
		}
		out.WriteString(rest[:open])
		rest = rest[open+1:]

		closing := strings.IndexByte(rest, '}')
		if closing < 0 {
			return "", fmt.Errorf("unclosed placeholder")
		}
		name := rest[:closing]
		rest = rest[closing+1:]

		switch {
		case name == "bufname":
			out.WriteString(c.win.Buffer().DisplayName())
		case name == "client":
			out.WriteString(c.name)
		case name == "session":
			out.WriteString(c.registry.Session())
		case strings.HasPrefix(name, "env:"):
			out.WriteString(c.GetEnvVar(strings.TrimPrefix(name, "env:")))
		default:
			return "", fmt.Errorf("unknown placeholder {%s}", name)
		}
	}
}
