package gen

import (
	"bytes"
	"fmt"
	"go/format"

	"record-generator/internal/plan"
)

// DefaultTool is the generator name written into file headers.
const DefaultTool = "record-generator"

// Header returns the first line of every file generated by tool.
func Header(tool string) string {
	return "// Code generated by " + tool + ". DO NOT EDIT."
}

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Tool is the generator name written into file headers.
	Tool string
	// DebugDir receives the unformatted source of files that fail to format.
	// Empty disables the sidecar.
	DebugDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Tool: DefaultTool,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Tool == "" {
		config.Tool = DefaultTool
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "account_record.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per record of p, in plan order.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(p.Records))

	for i := range p.Records {
		file, err := g.generateRecord(p, &p.Records[i])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Records[i].TypeName, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

func (g *Generator) generateRecord(p *plan.Plan, rp *plan.RecordPlan) (*GeneratedFile, error) {
	data := buildTemplateData(g.config.Tool, p.PkgName, rp)

	var buf bytes.Buffer
	if err := recordTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		_ = writeDebugUnformatted(g.config.DebugDir, rp.Filename, buf.Bytes())

		return &GeneratedFile{
			Filename: rp.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: rp.Filename,
		Content:  formatted,
	}, nil
}
