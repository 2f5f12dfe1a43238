package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineCmd(t *testing.T) {
	var out bytes.Buffer
	c := TimelineCmd()
	c.SetOut(&out)
	c.SetArgs([]string{"--season", "january", "--year", "2030"})

	require.NoError(t, c.Execute())

	text := out.String()
	assert.Contains(t, text, "Intake: january 2030 (2030-01-01)")
	assert.Contains(t, text, "Submit University Applications")
	assert.Contains(t, text, "Next: ")
}

func TestTimelineCmdRejectsSeason(t *testing.T) {
	c := TimelineCmd()
	c.SetOut(&bytes.Buffer{})
	c.SetErr(&bytes.Buffer{})
	c.SetArgs([]string{"--season", "winter"})

	assert.Error(t, c.Execute())
}

func TestSchoolsCmd(t *testing.T) {
	var out bytes.Buffer
	c := SchoolsCmd()
	c.SetOut(&out)
	c.SetArgs([]string{"--province", "ON", "--sort", "name"})

	require.NoError(t, c.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "RANK"))
	for _, line := range lines[1:] {
		assert.Contains(t, line, "ON")
	}
}
