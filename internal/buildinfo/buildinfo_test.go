package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		var buf bytes.Buffer
		PrintBuildData(&buf)
		assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
	})

	t.Run("stamped", func(t *testing.T) {
		Version, Commit, Date = "v1.2.0", "abc1234", "2026-10-01"
		t.Cleanup(func() { Version, Commit, Date = "", "", "" })

		var buf bytes.Buffer
		PrintBuildData(&buf)
		assert.Equal(t, "Build version: v1.2.0\nBuild date: 2026-10-01\nBuild commit: abc1234\n", buf.String())
	})
}
