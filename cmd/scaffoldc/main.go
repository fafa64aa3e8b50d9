// Command scaffoldc compiles a GeoProc scene into a chunked scaffold
// container, and inspects compiled containers and import sidecars.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xle-project/scaffoldc/assets/chunk"
	"github.com/xle-project/scaffoldc/core/log"
	"github.com/xle-project/scaffoldc/core/task"
	"github.com/xle-project/scaffoldc/internal/colladaimport"
)

func main() {
	root := &cobra.Command{
		Use:           "scaffoldc",
		Short:         "Compile GeoProc scenes into chunked scaffold containers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCompileCmd(), newDumpCmd(), newValidateConfigCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "scaffoldc:", err)
		os.Exit(1)
	}
}

func newCompileCmd() *cobra.Command {
	var out string
	var parallel int
	cmd := &cobra.Command{
		Use:   "compile <scene.yaml>",
		Short: "Compile a scene file into a chunk container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), args[0], out, parallel)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "out.scaffold", "output chunk container path")
	cmd.Flags().IntVar(&parallel, "parallel", 4, "number of concurrent compile-target workers")
	return cmd
}

func runCompile(ctx context.Context, scenePath, outPath string, parallel int) error {
	logger := log.From(ctx).With("scene", scenePath)

	scene, err := loadScene(scenePath)
	if err != nil {
		return err
	}
	input, err := scene.toInput()
	if err != nil {
		return err
	}
	op := colladaimport.NewCompileOperation(input)

	pool := task.NewPool(len(op.GetTargets()), parallel)
	defer pool.Close()

	results, err := colladaimport.CompileAll(ctx, op, pool)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", scenePath, err)
	}

	var artifacts []chunk.Artifact
	for _, r := range results {
		artifacts = append(artifacts, r.Artifacts...)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer f.Close()
	if err := chunk.WriteContainer(f, artifacts); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	logger.With("targets", len(results)).With("artifacts", len(artifacts)).With("out", outPath).Infof("scaffoldc: compile finished")
	return nil
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <container>",
		Short: "List the artifacts in a chunk container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
}

func runDump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	artifacts, err := chunk.ReadContainer(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	for _, a := range artifacts {
		fmt.Printf("%-24s type=0x%08x version=%d bytes=%d\n", a.Name, a.ChunkTypeCode, a.Version, len(a.Data))
	}
	return nil
}

func newValidateConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config <colladaimport.dat>",
		Short: "Load and summarize an import configuration sidecar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateConfig(cmd.Context(), args[0])
		},
	}
}

func runValidateConfig(ctx context.Context, path string) error {
	cfg, fs, err := colladaimport.LoadImportConfiguration(ctx, path)
	if err != nil {
		return err
	}
	defer fs.Close()

	fmt.Printf("resources:        %d renames, %d suppressed\n", len(cfg.Resources.Rename), len(cfg.Resources.Suppress))
	fmt.Printf("constants:        %d renames, %d suppressed\n", len(cfg.Constants.Rename), len(cfg.Constants.Suppress))
	fmt.Printf("vertexSemantics:  %d renames, %d suppressed\n", len(cfg.VertexSemantics.Rename), len(cfg.VertexSemantics.Suppress))
	return nil
}
