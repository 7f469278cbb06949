package check

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/temirov/depdoc/internal/reconcile"
)

const (
	successTemplateConstant             = "🎖️ Success! dep-doc valid (%s)"
	failureHeaderTemplateConstant       = "dep-doc failed (%s):"
	errorPrefixConstant                 = "[dep-doc] ERROR:"
	missingSectionHeaderConstant        = "  Missing in dep-doc.toml:"
	extraSectionHeaderConstant          = "  Present in dep-doc.toml but not in manifest:"
	scopeMismatchSectionHeaderConstant  = "  Scope mismatches between dep-doc.toml and manifest:"
	listItemTemplateConstant            = "    - %s"
	scopeMismatchItemTemplateConstant   = "    - %s: dep-doc.toml=%s, manifest=%s"
	rootDescriptionTemplateConstant     = "%s, %s"
	successColorConstant                = "15"
	errorColorConstant                  = "9"
	jsonIndentConstant                  = "  "
	yamlIndentConstant                  = 2
	reportEncodingErrorTemplateConstant = "unable to encode %s report: %w"
)

// Report pairs a project root with its verdict.
type Report struct {
	Root              string `json:"root" yaml:"root"`
	reconcile.Verdict `yaml:",inline"`
}

type reportRenderer interface {
	Render(reports []Report) error
}

func newReportRenderer(format OutputFormat, colorMode ColorMode, output io.Writer, errorOutput io.Writer) (reportRenderer, error) {
	switch format {
	case OutputFormatText, "":
		return newTextRenderer(colorMode, output, errorOutput), nil
	case OutputFormatJSON:
		return jsonRenderer{output: output}, nil
	case OutputFormatYAML:
		return yamlRenderer{output: output}, nil
	default:
		return nil, fmt.Errorf(unsupportedOutputFormatTemplateConstant, format)
	}
}

type textRenderer struct {
	output       io.Writer
	errorOutput  io.Writer
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
}

func newTextRenderer(colorMode ColorMode, output io.Writer, errorOutput io.Writer) textRenderer {
	outputRenderer := newStyleRenderer(colorMode, output)
	errorRenderer := newStyleRenderer(colorMode, errorOutput)
	return textRenderer{
		output:       output,
		errorOutput:  errorOutput,
		successStyle: outputRenderer.NewStyle().Foreground(lipgloss.Color(successColorConstant)),
		errorStyle:   errorRenderer.NewStyle().Foreground(lipgloss.Color(errorColorConstant)).Bold(true),
	}
}

func newStyleRenderer(colorMode ColorMode, writer io.Writer) *lipgloss.Renderer {
	styleRenderer := lipgloss.NewRenderer(writer)
	switch colorMode {
	case ColorModeAlways:
		styleRenderer.SetColorProfile(termenv.ANSI)
	case ColorModeNever:
		styleRenderer.SetColorProfile(termenv.Ascii)
	}
	return styleRenderer
}

// Render mirrors the classic dep-doc console output. Roots are named only when
// more than one project is reported.
func (renderer textRenderer) Render(reports []Report) error {
	includeRoot := len(reports) > 1
	for _, report := range reports {
		description := string(report.Label)
		if includeRoot {
			description = fmt.Sprintf(rootDescriptionTemplateConstant, report.Label, report.Root)
		}
		if renderError := renderer.renderReport(report, description, includeRoot); renderError != nil {
			return renderError
		}
	}
	return nil
}

func (renderer textRenderer) renderReport(report Report, description string, includeRoot bool) error {
	if report.OK {
		_, writeError := fmt.Fprintln(renderer.output, renderer.successStyle.Render(fmt.Sprintf(successTemplateConstant, description)))
		return writeError
	}

	lines := make([]string, 0, 4+len(report.Missing)+len(report.Extra)+len(report.ScopeMismatches)+len(report.Errors))
	if report.HasErrors() {
		if includeRoot {
			lines = append(lines, fmt.Sprintf(failureHeaderTemplateConstant, description))
		}
		lines = append(lines, report.Errors...)
		return renderer.writeErrorLines(lines)
	}

	lines = append(lines, fmt.Sprintf(failureHeaderTemplateConstant, description))
	if len(report.Missing) > 0 {
		lines = append(lines, missingSectionHeaderConstant)
		for _, name := range report.Missing {
			lines = append(lines, fmt.Sprintf(listItemTemplateConstant, name))
		}
	}
	if len(report.Extra) > 0 {
		lines = append(lines, extraSectionHeaderConstant)
		for _, name := range report.Extra {
			lines = append(lines, fmt.Sprintf(listItemTemplateConstant, name))
		}
	}
	if len(report.ScopeMismatches) > 0 {
		lines = append(lines, scopeMismatchSectionHeaderConstant)
		for _, mismatch := range report.ScopeMismatches {
			lines = append(lines, fmt.Sprintf(scopeMismatchItemTemplateConstant, mismatch.Name, mismatch.DepDocScope, mismatch.ManifestScope))
		}
	}
	return renderer.writeErrorLines(lines)
}

func (renderer textRenderer) writeErrorLines(lines []string) error {
	prefix := renderer.errorStyle.Render(errorPrefixConstant)
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(prefix)
		builder.WriteString(" ")
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	_, writeError := io.WriteString(renderer.errorOutput, builder.String())
	return writeError
}

type jsonRenderer struct {
	output io.Writer
}

// Render writes a single verdict object for one root and an array of reports otherwise.
func (renderer jsonRenderer) Render(reports []Report) error {
	encoder := json.NewEncoder(renderer.output)
	encoder.SetIndent("", jsonIndentConstant)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(structuredPayload(reports)); encodeError != nil {
		return fmt.Errorf(reportEncodingErrorTemplateConstant, outputFormatJSONStringConstant, encodeError)
	}
	return nil
}

type yamlRenderer struct {
	output io.Writer
}

// Render writes a single verdict document for one root and a sequence of reports otherwise.
func (renderer yamlRenderer) Render(reports []Report) error {
	encoder := yaml.NewEncoder(renderer.output)
	encoder.SetIndent(yamlIndentConstant)
	if encodeError := encoder.Encode(structuredPayload(reports)); encodeError != nil {
		return fmt.Errorf(reportEncodingErrorTemplateConstant, outputFormatYAMLStringConstant, encodeError)
	}
	if closeError := encoder.Close(); closeError != nil {
		return fmt.Errorf(reportEncodingErrorTemplateConstant, outputFormatYAMLStringConstant, closeError)
	}
	return nil
}

func structuredPayload(reports []Report) any {
	if len(reports) == 1 {
		return reports[0].Verdict
	}
	return reports
}
