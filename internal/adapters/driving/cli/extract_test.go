package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octotext/octotext/internal/core/domain"
)

func resetExtractFlags() {
	extractOutput = ""
	extractFormat = ""
	extractRaw = false
	extractDepth = 0
	extractTypes = ""
}

func TestExtractCmd_Use(t *testing.T) {
	assert.Equal(t, "extract [url]", extractCmd.Use)
}

func TestExtractCmd_Short(t *testing.T) {
	assert.Equal(t, "Extract a GitHub issue or pull request", extractCmd.Short)
}

func TestExtractCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestExtractCmd_HasDepthFlag(t *testing.T) {
	flag := extractCmd.Flags().Lookup("depth")
	require.NotNil(t, flag, "depth flag should exist")
	assert.Equal(t, "d", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestExtractCmd_HasOutputFlag(t *testing.T) {
	flag := extractCmd.Flags().Lookup("output")
	require.NotNil(t, flag, "output flag should exist")
	assert.Equal(t, "o", flag.Shorthand)
}

func TestExtractCmd_ExecutesWithURL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"title\": \"Mock item\"")
	assert.Contains(t, buf.String(), "\"reference\": \"octocat/hello#42\"")
}

func TestExtractCmd_RejectsInvalidURL(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "https://example.com/not/github"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestExtractCmd_RejectsNegativeDepth(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "--depth", "-1", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtractCmd_RejectsUnknownType(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "--types", "gist", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}

func TestExtractCmd_RejectsUnknownFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "--format", "yaml", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestExtractCmd_DepthUsesTraversal(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	mock := &mockExtractService{}
	extractService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "-d", "2", "-t", "issue,commit", "https://github.com/octocat/hello/pull/7"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, mock.related, "depth > 0 should use ExtractWithRelated")
	assert.Equal(t, 2, mock.lastOpts.MaxDepth)
	assert.True(t, mock.lastOpts.Include.Contains(domain.KindIssue))
	assert.True(t, mock.lastOpts.Include.Contains(domain.KindCommit))
	assert.False(t, mock.lastOpts.Include.Contains(domain.KindPullRequest))
}

func TestExtractCmd_DepthZeroSkipsTraversal(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	mock := &mockExtractService{}
	extractService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.False(t, mock.related, "depth 0 should use Extract")
}

func TestExtractCmd_MarkdownFormat(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "-f", "markdown", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "# Issue octocat/hello#42: Mock item")
}

func TestExtractCmd_FormatFallsBackToConfig(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	require.NoError(t, configStore.Set("default_format", "markdown"))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "# Issue octocat/hello#42: Mock item")
}

func TestExtractCmd_WritesOutputFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	outPath := filepath.Join(t.TempDir(), "out.json")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "-o", outPath, "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"title\": \"Mock item\"")
	assert.NotContains(t, buf.String(), "Mock item", "file output should not also go to stdout")
}

func TestExtractCmd_RawOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	extractService = &mockExtractService{
		content: &domain.ExtractedContent{
			Reference: domain.Reference{Owner: "octocat", Repo: "hello", Kind: domain.KindIssue, Number: 42},
			Title:     "Raw record",
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"extract", "--raw", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	// Raw output keeps the domain record's field names.
	assert.Contains(t, buf.String(), "\"Title\": \"Raw record\"")
}

func TestExtractCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	extractService = &mockExtractServiceError{}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extraction failed")
}

func TestExtractCmd_MissingCredential(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer resetExtractFlags()

	// No injected service and no api_key: initServices wires the real
	// fetcher, which refuses to fetch without a credential.
	extractService = nil
	t.Setenv("FIRECRAWL_API_KEY", "")
	t.Setenv("FIRECRAWL_BASE_URL", "")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"extract", "https://github.com/octocat/hello/issues/42"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.ErrorIs(t, err, domain.ErrMissingCredential)
}
