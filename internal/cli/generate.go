package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pydepviz/pydepviz/pkg/errors"
	"github.com/pydepviz/pydepviz/pkg/pipeline"
)

// generateFlags holds the root command's flag values.
type generateFlags struct {
	projectName  string
	outputPrefix string
}

var flags generateFlags

// registerGenerateFlags wires the root command's flags.
func (c *CLI) registerGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flags.projectName, "project-name", "p", "",
		"project name for the graph root (default: current directory name)")
	cmd.Flags().StringVarP(&flags.outputPrefix, "output-prefix", "o", defaultOutputPrefix,
		"base name for the generated .html and _preview.png files")
}

// runGenerate executes the full pipeline and writes the artifacts.
func (c *CLI) runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	project := flags.projectName
	if project == "" {
		project = defaultProjectName()
	}
	prefix := flags.outputPrefix
	if prefix == "" {
		prefix = defaultOutputPrefix
	}

	opts := pipeline.Options{
		ProjectName: project,
		Logger:      c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Visualizing %s...", project))
	spinner.Start()

	result, err := pipeline.NewRunner(c.Logger).Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("generate: %w", err)
	}
	spinner.Stop()

	written, writeErr := writeOutputs(prefix, result.Artifacts)
	if len(written) == 0 {
		return writeErr
	}
	if writeErr != nil {
		result.Warnings = append(result.Warnings, writeErr)
	}

	printResults(project, result, written)
	return nil
}

// writeOutputs writes the artifacts under the given prefix. An
// unwritable HTML destination is fatal (nothing written, the error is
// returned with no paths); a failed preview write only loses the
// preview, since the interactive document is already on disk.
func writeOutputs(prefix string, artifacts map[string][]byte) ([]string, error) {
	htmlPath := prefix + ".html"
	if err := writeArtifact(htmlPath, artifacts[pipeline.FormatHTML]); err != nil {
		return nil, err
	}
	written := []string{htmlPath}

	png, ok := artifacts[pipeline.FormatPNG]
	if !ok {
		return written, nil
	}
	pngPath := prefix + "_preview.png"
	if err := writeArtifact(pngPath, png); err != nil {
		return written, errors.Wrap(errors.ErrCodeRenderExportFailed, err,
			"preview not written")
	}
	return append(written, pngPath), nil
}

// writeArtifact writes data to path.
func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeUnwritableOutput, err, "write %s", path)
	}
	return nil
}

// printResults shows the end-of-run summary block.
func printResults(project string, result *pipeline.Result, files []string) {
	printSuccess("Visualized %s", StyleHighlight.Render(project))
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.Communities)

	for _, w := range result.Warnings {
		printWarning("%s", errors.UserMessage(w))
	}

	for _, f := range files {
		printFile(f)
	}
	printDetail("report %s · source %s", result.ReportID, result.Source)
}
