package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	runPipedFunc  func(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if m.runPipedFunc != nil {
		return m.runPipedFunc(name, args, stdin, stdout, stderr)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, exec.ErrNotFound) {
					t.Errorf("error should wrap exec.ErrNotFound, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name: "docker image present",
			mkRT: func(m *mockExecutor) Runtime { return newDockerRuntime(m) },
			cmds: map[string]bool{"docker image inspect xl2pdf-soffice:latest": true},
		},
		{
			name:    "docker image missing",
			mkRT:    func(m *mockExecutor) Runtime { return newDockerRuntime(m) },
			cmds:    map[string]bool{},
			wantErr: true,
		},
		{
			name: "podman image present",
			mkRT: func(m *mockExecutor) Runtime { return newPodmanRuntime(m) },
			cmds: map[string]bool{"podman image exists xl2pdf-soffice:latest": true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := tt.mkRT(&mockExecutor{runnableCmds: tt.cmds})
			err := rt.ImageExists("xl2pdf-soffice:latest")
			if (err != nil) != tt.wantErr {
				t.Errorf("ImageExists() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_PipesAndBuildsArgs(t *testing.T) {
	var gotArgs []string
	m := &mockExecutor{
		runPipedFunc: func(name string, args []string, stdin io.Reader, stdout, _ io.Writer) error {
			gotArgs = append([]string{name}, args...)
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write(bytes.ToUpper(data))
			return nil
		},
	}
	rt := newDockerRuntime(m)

	var out bytes.Buffer
	err := rt.Run(context.Background(), "img:1", []string{"QUALITY=minimum"}, strings.NewReader("pk"), &out)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if out.String() != "PK" {
		t.Errorf("stdout = %q, want %q", out.String(), "PK")
	}
	want := "docker run --rm -i --network none -e QUALITY=minimum img:1"
	if got := strings.Join(gotArgs, " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

func TestRun_IncludesStderrInError(t *testing.T) {
	m := &mockExecutor{
		runPipedFunc: func(_ string, _ []string, _ io.Reader, _, stderr io.Writer) error {
			_, _ = stderr.Write([]byte("source file could not be loaded"))
			return errors.New("exit status 1")
		},
	}
	rt := newPodmanRuntime(m)
	err := rt.Run(context.Background(), "img:1", nil, strings.NewReader(""), io.Discard)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "source file could not be loaded") {
		t.Errorf("error should carry stderr, got: %v", err)
	}
}

func TestLimitedBuffer(t *testing.T) {
	var b limitedBuffer
	n, err := b.Write(bytes.Repeat([]byte("x"), stderrLimit+100))
	if err != nil || n != stderrLimit+100 {
		t.Fatalf("Write() = %d, %v", n, err)
	}
	if len(b.String()) != stderrLimit {
		t.Errorf("buffer kept %d bytes, want %d", len(b.String()), stderrLimit)
	}
}
