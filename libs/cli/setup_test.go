package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExecutor(t *testing.T, args []string) (*bytes.Buffer, []int) {
	t.Helper()
	viper.Reset()

	root := &cobra.Command{Use: "demo"}
	root.AddCommand(&cobra.Command{
		Use: "fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("it broke")
		},
	})

	stderr := new(bytes.Buffer)
	root.SetErr(stderr)
	root.SetOut(stderr)
	root.SetArgs(args)

	var codes []int
	e := PrepareBaseCmd(root, "DEMO")
	e.Exit = func(code int) { codes = append(codes, code) }

	require.Error(t, e.Execute())
	return stderr, codes
}

func TestExecutorReportsErrors(t *testing.T) {
	stderr, codes := testExecutor(t, []string{"fail"})
	assert.Contains(t, stderr.String(), "ERROR: it broke")
	assert.Equal(t, []int{1}, codes)
}

func TestExecutorTraceFlag(t *testing.T) {
	stderr, codes := testExecutor(t, []string{"fail", "--trace"})
	assert.True(t, viper.GetBool(TraceFlag))
	assert.Contains(t, stderr.String(), "ERROR: it broke")
	assert.Equal(t, []int{1}, codes)
}
