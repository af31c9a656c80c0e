package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultSofficeBinary is looked up on PATH when no explicit path is set.
const DefaultSofficeBinary = "soffice"

const (
	sofficeFilter = "pdf:calc_pdf_Export"
	// sofficeMinimumFilter downsamples images, the closest LibreOffice
	// equivalent of xlQualityMinimum.
	sofficeMinimumFilter = sofficeFilter +
		`:{"ReduceImageResolution":{"type":"boolean","value":"true"},` +
		`"MaxImageResolution":{"type":"long","value":"150"}}`
)

// commander abstracts process execution for testing.
type commander interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) { return exec.LookPath(file) }

func (osCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

type sofficeStarter struct {
	bin string
	cmd commander
}

// NewSofficeStarter returns a Starter for LibreOffice in headless mode.
// An empty bin selects DefaultSofficeBinary.
func NewSofficeStarter(bin string) Starter {
	if bin == "" {
		bin = DefaultSofficeBinary
	}
	return &sofficeStarter{bin: bin, cmd: osCommander{}}
}

func (s *sofficeStarter) Name() string { return NameSoffice }

// Start resolves the binary and creates a private user profile so the
// headless instance never competes with a desktop session for its lock.
func (s *sofficeStarter) Start(_ context.Context) (Engine, error) {
	resolved, err := s.cmd.LookPath(s.bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotRegistered, s.bin, err)
	}
	profile, err := os.MkdirTemp("", "xl2pdf-soffice-")
	if err != nil {
		return nil, fmt.Errorf("creating soffice profile: %w", err)
	}
	return &sofficeEngine{bin: resolved, profile: profile, cmd: s.cmd}, nil
}

type sofficeEngine struct {
	bin     string
	profile string
	cmd     commander
}

func (e *sofficeEngine) Name() string { return NameSoffice }

func (e *sofficeEngine) OpenWorkbook(path string, _ OpenOptions) (Workbook, error) {
	return openFileWorkbook(path)
}

func (e *sofficeEngine) ExportFixedFormat(ctx context.Context, wb Workbook, outputPath string, opts ExportOptions) error {
	fw, err := asFileWorkbook(wb)
	if err != nil {
		return err
	}
	outDir, err := os.MkdirTemp(e.profile, "out-")
	if err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	defer os.RemoveAll(outDir)

	filter := sofficeFilter
	if opts.Quality == QualityMinimum {
		filter = sofficeMinimumFilter
	}
	args := []string{
		"-env:UserInstallation=" + fileURL(e.profile),
		"--headless",
		"--norestore",
		"--nolockcheck",
		"--convert-to", filter,
		"--outdir", outDir,
		fw.path,
	}
	out, err := e.cmd.Run(ctx, e.bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("soffice conversion failed: %w: %s", err, msg)
		}
		return fmt.Errorf("soffice conversion failed: %w", err)
	}

	base := filepath.Base(fw.path)
	produced := filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".pdf")
	if _, err := os.Stat(produced); err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("soffice produced no PDF: %s", msg)
		}
		return errors.New("soffice produced no PDF")
	}
	return moveFile(produced, outputPath)
}

func (e *sofficeEngine) CloseWorkbook(_ Workbook, _ bool) error { return nil }

func (e *sofficeEngine) Quit() error {
	if e.profile == "" {
		return nil
	}
	err := os.RemoveAll(e.profile)
	e.profile = ""
	return err
}

// openFileWorkbook validates path and returns a handle for it.
func openFileWorkbook(path string) (Workbook, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", abs)
	}
	return &fileWorkbook{path: abs}, nil
}

// fileURL converts a local directory to the file:// form soffice expects
// for -env:UserInstallation.
func fileURL(dir string) string {
	p := filepath.ToSlash(dir)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String()
}

// moveFile renames src to dst, copying when they are on different volumes.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return os.Remove(src)
}
