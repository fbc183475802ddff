package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/lsq/pkg/errors"
)

const houseData = `# sqft price
1000 180000
1500 240000
1800 265000
2200 330000
2600 370000
3000 440000
`

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "housePrice.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runArgs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cfg, err := parseFlags(args, &stderr)
	if err != nil {
		return "", stderr.String(), err
	}
	err = run(context.Background(), cfg, strings.NewReader(""), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_JSON(t *testing.T) {
	path := writeData(t, houseData)

	stdout, _, err := runArgs(t, "-data", path, "-sqft", "2000", "-format", "json")
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 2000.0, out["input"])
	assert.NotEmpty(t, out["run_id"])

	stats := out["stats"].(map[string]interface{})
	assert.Equal(t, 6.0, stats["n"])
	assert.Equal(t, "normal", stats["p_value_method"])
}

func TestRun_Plain(t *testing.T) {
	path := writeData(t, houseData)

	stdout, _, err := runArgs(t, "-data", path, "-sqft", "2000", "-format", "plain", "-pvalue", "student")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Prediction = ")
	assert.Contains(t, stdout, "Model Statistics:")
	assert.Contains(t, stdout, "p-values: student_t")

	summary := strings.Index(stdout, "Least Squares Regression Model:")
	require.GreaterOrEqual(t, summary, 0, "plain output should start with the fit summary")
	assert.Less(t, summary, strings.Index(stdout, "Prediction = "))
}

func TestRun_Artifacts(t *testing.T) {
	path := writeData(t, houseData)
	dir := t.TempDir()
	html := filepath.Join(dir, "fit.html")
	png := filepath.Join(dir, "fit.png")

	_, _, err := runArgs(t, "-data", path, "-sqft", "1500", "-format", "markdown", "-html", html, "-png", png)
	require.NoError(t, err)

	for _, p := range []string{html, png} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRun_LogsRunID(t *testing.T) {
	path := writeData(t, houseData)

	_, stderr, err := runArgs(t, "-data", path, "-sqft", "2000", "-format", "json", "-log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"run.id"`)
	assert.Contains(t, stderr, `"message":"fit completed"`)
}

func TestRun_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, _, err := runArgs(t, "-data", filepath.Join(t.TempDir(), "nope.txt"), "-sqft", "2000")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("bad line", func(t *testing.T) {
		path := writeData(t, "1000 180000\n1500 lots\n")
		_, _, err := runArgs(t, "-data", path, "-sqft", "2000")
		var inErr *errors.InputError
		require.True(t, errors.As(err, &inErr), "got %v", err)
		assert.Equal(t, 2, inErr.Line)
	})

	t.Run("singular", func(t *testing.T) {
		path := writeData(t, "1000 1\n1000 2\n1000 3\n")
		_, _, err := runArgs(t, "-data", path, "-sqft", "2000")
		assert.True(t, errors.Is(err, errors.ErrSingularMatrix), "got %v", err)
	})

	t.Run("out of range sqft", func(t *testing.T) {
		path := writeData(t, houseData)
		_, _, err := runArgs(t, "-data", path, "-sqft", "50")
		var inErr *errors.InputError
		assert.True(t, errors.As(err, &inErr), "got %v", err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, _, err := runArgs(t, "-format", "xml")
		assert.Error(t, err)
	})

	t.Run("unknown pvalue", func(t *testing.T) {
		path := writeData(t, houseData)
		_, _, err := runArgs(t, "-data", path, "-sqft", "2000", "-pvalue", "bayes")
		assert.Error(t, err)
	})
}
