// Package colorize renders normalized records for terminal output: ARM
// instruction text through chroma, function labels through lipgloss. Piped
// output never goes through here, so machine output stays byte-exact.
package colorize

import (
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss/v2"
)

var (
	addrStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")) // Gray offsets
	classStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")) // Light gray class names
	methodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Orange method names
)

// getAssemblyLexer returns an appropriate assembly lexer with fallbacks
func getAssemblyLexer() chroma.Lexer {
	// Try lexers in order of preference (ARM assembly first)
	candidates := []string{"armasm", "gas", "GAS", "Gas", "nasm"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

// getDisasmStyle returns the disassembly style with fallbacks
func getDisasmStyle() *chroma.Style {
	candidates := []string{"disasm-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

// getTerminalFormatter returns an appropriate terminal formatter
func getTerminalFormatter() chroma.Formatter {
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

func disabled() bool {
	return os.Getenv("PATCHGEN_NO_COLOR") != ""
}

// Instruction applies syntax highlighting to one instruction's text.
func Instruction(text string) string {
	if disabled() {
		return text
	}

	lexer := getAssemblyLexer()
	if lexer == nil {
		return text
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getDisasmStyle(), iterator); err != nil {
		return text
	}

	// The terminal formatters append a newline; the caller owns line breaks.
	return strings.TrimRight(buf.String(), "\n")
}

// Label highlights a resolved "Class::Method" label, dimming the class part.
// Fallback raw symbols have no separator and render entirely as the method.
func Label(label string) string {
	if disabled() {
		return label
	}

	parts := strings.Split(label, "::")
	if len(parts) == 1 {
		return methodStyle.Render(label)
	}

	var result []string
	for i, part := range parts {
		if i < len(parts)-1 {
			result = append(result, classStyle.Render(part))
		} else {
			result = append(result, methodStyle.Render(part))
		}
	}
	return strings.Join(result, classStyle.Render("::"))
}

// Record renders one normalized record line for a terminal.
func Record(addr, label, instruction string) string {
	if disabled() {
		return "0x" + addr + "\t" + label + "\t" + instruction
	}
	return addrStyle.Render("0x"+addr) + "\t" + Label(label) + "\t" + Instruction(instruction)
}
