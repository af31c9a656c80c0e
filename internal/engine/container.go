package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agbru/xl2pdf/internal/container"
)

// DefaultContainerImage is the converter image used when none is configured.
// It reads a workbook on stdin and writes the PDF to stdout.
const DefaultContainerImage = "xl2pdf-soffice:latest"

type containerStarter struct {
	image  string
	detect func() (container.Runtime, error)
}

// NewContainerStarter returns a Starter that converts through a container
// image run by docker or podman. An empty image selects DefaultContainerImage.
func NewContainerStarter(image string) Starter {
	if image == "" {
		image = DefaultContainerImage
	}
	return &containerStarter{image: image, detect: container.DetectRuntime}
}

func (s *containerStarter) Name() string { return NameContainer }

func (s *containerStarter) Start(_ context.Context) (Engine, error) {
	rt, err := s.detect()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRegistered, err)
	}
	if err := rt.ImageExists(s.image); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotRegistered, err)
	}
	return &containerEngine{rt: rt, image: s.image}, nil
}

type containerEngine struct {
	rt    container.Runtime
	image string
}

func (e *containerEngine) Name() string { return NameContainer }

func (e *containerEngine) OpenWorkbook(path string, _ OpenOptions) (Workbook, error) {
	return openFileWorkbook(path)
}

// ExportFixedFormat streams the workbook through the image and writes the
// PDF to a temporary sibling first, so a failed run never leaves a
// truncated file at outputPath.
func (e *containerEngine) ExportFixedFormat(ctx context.Context, wb Workbook, outputPath string, opts ExportOptions) error {
	fw, err := asFileWorkbook(wb)
	if err != nil {
		return err
	}
	in, err := os.Open(fw.path)
	if err != nil {
		return err
	}
	defer in.Close()

	part := outputPath + ".part"
	out, err := os.Create(part)
	if err != nil {
		return err
	}
	env := []string{
		"XL2PDF_QUALITY=" + opts.Quality.String(),
		"XL2PDF_FILENAME=" + filepath.Base(fw.path),
	}
	runErr := e.rt.Run(ctx, e.image, env, in, out)
	closeErr := out.Close()
	if runErr == nil {
		runErr = closeErr
	}
	if runErr != nil {
		os.Remove(part)
		return runErr
	}
	return os.Rename(part, outputPath)
}

func (e *containerEngine) CloseWorkbook(_ Workbook, _ bool) error { return nil }

func (e *containerEngine) Quit() error { return nil }
