package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryCmdReportsCounts(t *testing.T) {
	withMemFs(t, map[string]string{"map.txt": sampleMapping}, func() {
		out, err := run(t, summaryCmd, []string{"map.txt"})
		require.NoError(t, err)
		assert.Contains(t, out, `"ClassCount": 1`)
		assert.Contains(t, out, `"HasLineInfo": true`)
	})
}
