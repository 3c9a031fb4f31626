package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/zipback/internal/config"
	"github.com/bamsammich/zipback/internal/engine"
)

func TestConfirmed(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"j\n", true},
		{"ja\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, confirmed(tt.input))
		})
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "zipback"}
		cmd.Flags().Bool("digest", false, "")
		cmd.Flags().Int("sample", engine.DefaultSample, "")
		cmd.Flags().Bool("quiet", false, "")
		cmd.Flags().Bool("yes", false, "")
		return cmd
	}

	boolPtr := func(b bool) *bool { return &b }
	intPtr := func(i int) *int { return &i }

	t.Run("AppliesWhenFlagsUnset", func(t *testing.T) {
		cmd := newCmd()
		digest, quiet, yes := false, false, false
		sample := engine.DefaultSample

		applyConfigDefaults(cmd, config.DefaultsConfig{
			Digest: boolPtr(true),
			Sample: intPtr(64),
			Quiet:  boolPtr(true),
			Yes:    boolPtr(true),
		}, &digest, &sample, &quiet, &yes)

		assert.True(t, digest)
		assert.Equal(t, 64, sample)
		assert.True(t, quiet)
		assert.True(t, yes)
	})

	t.Run("FlagsWinOverConfig", func(t *testing.T) {
		cmd := newCmd()
		require.NoError(t, cmd.Flags().Set("digest", "false"))
		require.NoError(t, cmd.Flags().Set("sample", "10"))
		digest, quiet, yes := false, false, false
		sample := 10

		applyConfigDefaults(cmd, config.DefaultsConfig{
			Digest: boolPtr(true),
			Sample: intPtr(64),
		}, &digest, &sample, &quiet, &yes)

		assert.False(t, digest)
		assert.Equal(t, 10, sample)
	})

	t.Run("NilDefaultsLeaveValues", func(t *testing.T) {
		cmd := newCmd()
		digest, quiet, yes := false, false, false
		sample := engine.DefaultSample

		applyConfigDefaults(cmd, config.DefaultsConfig{}, &digest, &sample, &quiet, &yes)

		assert.False(t, digest)
		assert.Equal(t, engine.DefaultSample, sample)
		assert.False(t, quiet)
		assert.False(t, yes)
	})
}

func TestConfirmExtraction(t *testing.T) {
	t.Run("AcceptsYes", func(t *testing.T) {
		var out bytes.Buffer
		ok, err := confirmExtraction(strings.NewReader("y\n"), &out, "/backups", "/restore")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, out.String(), "/backups")
		assert.Contains(t, out.String(), "/restore")
		assert.Contains(t, out.String(), "Proceed? (y/n):")
	})

	t.Run("RejectsNo", func(t *testing.T) {
		var out bytes.Buffer
		ok, err := confirmExtraction(strings.NewReader("n\n"), &out, "/backups", "/restore")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("EOFIsRejection", func(t *testing.T) {
		var out bytes.Buffer
		ok, err := confirmExtraction(strings.NewReader(""), &out, "/backups", "/restore")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPrintErrorDetails(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		var buf bytes.Buffer
		printErrorDetails(&buf, engine.Result{})
		assert.Empty(t, buf.String())
	})

	t.Run("ListsArchiveAndEntryErrors", func(t *testing.T) {
		var buf bytes.Buffer
		printErrorDetails(&buf, engine.Result{
			ArchiveErrs: []engine.ArchiveError{
				{Archive: "bad.zip", Err: assert.AnError},
			},
			EntryErrs: []engine.EntryError{
				{Archive: "backup1.zip", Entry: "Users/x/file.txt", Err: assert.AnError},
			},
		})
		out := buf.String()
		assert.Contains(t, out, "Error details:")
		assert.Contains(t, out, "bad.zip")
		assert.Contains(t, out, "Users/x/file.txt")
		assert.NotContains(t, out, "more errors")
	})

	t.Run("CapsAtTwenty", func(t *testing.T) {
		result := engine.Result{}
		for i := 0; i < 25; i++ {
			result.EntryErrs = append(result.EntryErrs, engine.EntryError{
				Archive: "backup1.zip",
				Entry:   "file",
				Err:     assert.AnError,
			})
		}
		var buf bytes.Buffer
		printErrorDetails(&buf, result)
		assert.Contains(t, buf.String(), "... and 5 more errors")
		assert.Equal(t, maxErrorDetails, strings.Count(buf.String(), "backup1.zip"))
	})
}
