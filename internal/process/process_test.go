package process

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found in PATH")
	}
}

func TestExec_Success(t *testing.T) {
	requireShell(t)

	res := (&Exec{}).Invoke(context.Background(), "sh", "-c", "echo compiled; echo warning >&2")
	require.NoError(t, res.Err)
	assert.True(t, res.Ran)
	assert.Equal(t, 0, res.Code)
	assert.Contains(t, string(res.Output), "compiled")
	assert.Contains(t, string(res.Output), "warning")
}

func TestExec_NonZeroExit(t *testing.T) {
	requireShell(t)

	res := (&Exec{}).Invoke(context.Background(), "sh", "-c", "echo 'ERROR: bad token' >&2; exit 3")
	require.Error(t, res.Err)
	assert.True(t, res.Ran)
	assert.Equal(t, 3, res.Code)
	assert.Contains(t, string(res.Output), "bad token")
	assert.Contains(t, res.Err.Error(), "failed to run")
}

func TestExec_KilledBySignal(t *testing.T) {
	requireShell(t)

	res := (&Exec{}).Invoke(context.Background(), "sh", "-c", "echo partial; kill -TERM $$")
	require.Error(t, res.Err)
	assert.True(t, res.Ran, "a killed compiler still ran")
	assert.Equal(t, 128+int(syscall.SIGTERM), res.Code)
	assert.Contains(t, string(res.Output), "partial")
	assert.Contains(t, res.Err.Error(), "killed by signal 15")

	sig, ok := Signaled(res.Err)
	require.True(t, ok)
	assert.Equal(t, syscall.SIGTERM, sig)
}

func TestExec_MissingProgram(t *testing.T) {
	res := (&Exec{}).Invoke(context.Background(), "shdc-test-no-such-compiler")
	require.Error(t, res.Err)
	assert.False(t, res.Ran)
	assert.Equal(t, 1, res.Code)
}

func TestExec_EnvExpansion(t *testing.T) {
	requireShell(t)

	e := &Exec{Env: map[string]string{"GREETING": "hello"}}
	res := e.Invoke(context.Background(), "sh", "-c", "echo ${GREETING} $SHDC_INNER", "x")
	require.NoError(t, res.Err)
	assert.Equal(t, "hello", strings.TrimSpace(string(res.Output)))

	res = e.Invoke(context.Background(), "sh", "-c", `printf %s "$GREETING"`)
	require.NoError(t, res.Err)
	assert.Equal(t, "hello", string(res.Output))
}

func TestExec_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := (&Exec{}).Invoke(ctx, "sh", "-c", "exit 0")
	assert.False(t, res.Ran)
	assert.True(t, errors.Is(res.Err, context.Canceled))
}

func TestPrintOnly(t *testing.T) {
	var buf bytes.Buffer
	p := &PrintOnly{W: &buf}

	res := p.Invoke(context.Background(), "glslangValidator", "-V", "src/Main.vert", "-o", "bin/my shader.spv", "-DHAS_NORMAL")
	require.NoError(t, res.Err)
	assert.True(t, res.Ran)
	assert.Equal(t, "glslangValidator -V src/Main.vert -o \"bin/my shader.spv\" -DHAS_NORMAL\n", buf.String())
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, 0, ExitStatus(nil))
	assert.Equal(t, 1, ExitStatus(errors.New("boom")))
	assert.True(t, CmdRan(nil))
	assert.False(t, CmdRan(errors.New("boom")))

	_, ok := Signaled(errors.New("boom"))
	assert.False(t, ok)
}
