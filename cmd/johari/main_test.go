package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t      *testing.T
	config string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "johari.yaml")
	content := fmt.Sprintf(`
kind: team
storage:
  backend: local
  dir: %s
vocabularies:
  - kind: team
    traits: [brave, calm, shy]
    min_selection: 1
`, filepath.Join(dir, "data"))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return &cli{t: t, config: path}
}

func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", c.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("self", "--subject", "x", "brave", "calm")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved team self-assessment for x: brave, calm")

	_, err = c.run("peer", "-s", "a", "-t", "x", "brave", "shy")
	require.NoError(t, err)
	_, err = c.run("peer", "-s", "b", "-t", "x", "brave")
	require.NoError(t, err)

	out, err = c.run("query", "x")
	require.NoError(t, err)
	assert.Equal(t, `Team window for x (2 peer submissions from 2 assessors)
Arena:   brave (2)
Blind:   shy
Facade:  calm
Unknown: N/A
`, out)

	out, err = c.run("query", "x", "-o", "json")
	require.NoError(t, err)
	var doc struct {
		Kind    string `json:"kind"`
		Subject string `json:"subject"`
		Arena   []struct {
			Trait string `json:"trait"`
			Count int    `json:"count"`
		} `json:"arena"`
		Unknown []string `json:"unknown"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "team", doc.Kind)
	assert.Equal(t, "x", doc.Subject)
	require.Len(t, doc.Arena, 1)
	assert.Equal(t, 2, doc.Arena[0].Count)
	assert.NotNil(t, doc.Unknown)

	out, err = c.run("subjects")
	require.NoError(t, err)
	assert.Equal(t, "x\n", out)
}

func TestCLI_UserFacingErrors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("self", "-s", "x", "calm")
	require.NoError(t, err)

	_, err = c.run("peer", "-s", "x", "-t", "x", "brave")
	require.EqualError(t, err, "you cannot contribute to yourself; use the self command")

	_, err = c.run("peer", "-s", "a", "-t", "nobody", "brave")
	require.EqualError(t, err, "nobody has not completed their own team assessment yet")

	_, err = c.run("query", "ghost")
	require.EqualError(t, err, "no team assessment found for ghost")

	_, err = c.run("self", "-s", "x", "sneaky")
	require.EqualError(t, err, "select at least 1 traits (got 0)")

	_, err = c.run("--kind", "enneagram", "subjects")
	require.Error(t, err)
}

func TestCLI_MinSelectionOfBuiltinKind(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("--kind", "johari", "self", "-s", "x", "brave", "calm")
	var gateErr *errTooFewTraits
	require.ErrorAs(t, err, &gateErr)
	assert.Equal(t, 5, gateErr.Min)
	assert.Equal(t, 2, gateErr.Selected)

	_, err = c.run("--kind", "johari", "self", "-s", "x", "brave", "calm", "kind", "warm", "wise")
	require.NoError(t, err)

	out, err := c.run("--kind", "nohari", "subjects")
	require.NoError(t, err)
	assert.Empty(t, out, "kinds keep separate stores")
}

func TestCLI_VocabAndVersion(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("vocab")
	require.NoError(t, err)
	assert.Equal(t, "team: 3 traits, select at least 1\nbrave\ncalm\nshy\n", out)

	out, err = c.run("version")
	require.NoError(t, err)
	assert.Equal(t, "johari version "+Version+"\n", out)
}

func TestCLI_MetricsTextfile(t *testing.T) {
	c := newCLI(t)
	path := filepath.Join(t.TempDir(), "johari.prom")

	_, err := c.run("--metrics-textfile", path, "self", "--subject", "x", "brave")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `johari_submissions_total{kind="team",peer="false",status="success"} 1`)
	assert.Contains(t, string(data), `johari_subjects{kind="team"} 1`)

	_, err = c.run("version")
	require.NoError(t, err)
}
