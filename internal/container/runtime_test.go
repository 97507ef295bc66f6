// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor answers LookPath and RunSilent from tables and delegates
// RunPiped to a configurable function.
type fakeExecutor struct {
	onPath   map[string]bool
	okCmds   map[string]bool
	pipeFunc func(name string, args []string, stdin io.Reader, stdout io.Writer) error
	lastArgs []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.onPath[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (f *fakeExecutor) RunSilent(_ context.Context, name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if f.okCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (f *fakeExecutor) RunPiped(_ context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.lastArgs = append([]string{name}, args...)
	if f.pipeFunc != nil {
		return f.pipeFunc(name, args, stdin, stdout)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *fakeExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker preferred when both work",
			exec: &fakeExecutor{
				onPath: map[string]bool{"docker": true, "podman": true},
				okCmds: map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman when docker daemon is down",
			exec: &fakeExecutor{
				onPath: map[string]bool{"docker": true, "podman": true},
				okCmds: map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "nothing installed",
			exec:    &fakeExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(context.Background(), tt.exec)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "no container runtime available")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, rt.Name())
		})
	}
}

func TestImageExists(t *testing.T) {
	ctx := context.Background()
	e := &fakeExecutor{okCmds: map[string]bool{
		"docker image inspect markitdown:latest": true,
		"podman image exists markitdown:latest":  true,
	}}

	assert.NoError(t, newDockerRuntime(e).ImageExists(ctx, "markitdown:latest"))
	assert.NoError(t, newPodmanRuntime(e).ImageExists(ctx, "markitdown:latest"))

	err := newDockerRuntime(e).ImageExists(ctx, "missing:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing:1")
}

func TestRun_PipesAndPassesArgs(t *testing.T) {
	e := &fakeExecutor{
		pipeFunc: func(_ string, _ []string, stdin io.Reader, stdout io.Writer) error {
			data, _ := io.ReadAll(stdin)
			_, _ = stdout.Write([]byte("text: " + string(data)))
			return nil
		},
	}
	var out bytes.Buffer
	err := newPodmanRuntime(e).Run(context.Background(), "markitdown:latest", strings.NewReader("docx bytes"), &out, "-x", "docx")
	require.NoError(t, err)

	assert.Equal(t, "text: docx bytes", out.String())
	assert.Equal(t, []string{"podman", "run", "--rm", "-i", "markitdown:latest", "-x", "docx"}, e.lastArgs)
}

func TestRun_WrapsFailure(t *testing.T) {
	e := &fakeExecutor{
		pipeFunc: func(string, []string, io.Reader, io.Writer) error {
			return errors.New("exit status 1")
		},
	}
	err := newDockerRuntime(e).Run(context.Background(), "markitdown:latest", strings.NewReader(""), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running docker container markitdown:latest")
}
