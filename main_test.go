package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crillab/cnfuzz/gen"
)

// run executes the command line args and returns its stdout.
func run(args ...string) (string, error) {
	log, _ := test.NewNullLogger()
	cmd := newRootCmd(log)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseArgs(t *testing.T) {
	inv, err := parseArgs([]string{"12", "opts.txt"})
	require.NoError(t, err)
	assert.Equal(t, invocation{seed: 12, hasSeed: true, optionFile: "opts.txt"}, inv)

	inv, err = parseArgs(nil)
	require.NoError(t, err)
	assert.False(t, inv.hasSeed)

	// "-0" is not a negative number, so it names a file
	inv, err = parseArgs([]string{"-0", "7"})
	require.NoError(t, err)
	assert.Equal(t, invocation{seed: 7, hasSeed: true, optionFile: "-0"}, inv)

	for _, tc := range []struct {
		args []string
		err  error
	}{
		{[]string{"1", "2"}, errMultipleSeeds},
		{[]string{"a", "b"}, errMultipleOptionFiles},
		{[]string{"99999999999999999999"}, gen.ErrSeedOverflow},
		{[]string{"-5"}, errNegativeSeed},
	} {
		_, err := parseArgs(tc.args)
		if errors.Cause(err) != tc.err {
			t.Errorf("parseArgs(%v): expected %v, got %v", tc.args, tc.err, err)
		}
	}
}

func TestGenerateSeedOne(t *testing.T) {
	out1, err := run("1")
	require.NoError(t, err)
	out2, err := run("1")
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
	assert.True(t, strings.HasPrefix(out1, "c seed 1\n"))
	assert.Contains(t, out1, "\np cnf ")
}

func TestGenerateQBF(t *testing.T) {
	out, err := run("-q", "3")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "c seed 3\nc qbf\n"))
}

func TestGenerateOptionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts")
	require.NoError(t, os.WriteFile(path, []byte("restart 5 0 10 ignored\n"), 0o644))
	out, err := run("1", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ospread\n")
	assert.Contains(t, out, "c --restart=")
}

func TestInvalidInvocations(t *testing.T) {
	for _, tc := range []struct {
		args []string
		msg  string
	}{
		{[]string{"1", "2"}, "multiple seeds"},
		{[]string{"a", "b"}, "multiple option files"},
		{[]string{"-5"}, "negative seed"},
		{[]string{"-10"}, "negative seed"},
		{[]string{"1", filepath.Join(t.TempDir(), "missing")}, "can not read"},
		{[]string{"1", "--", "-0"}, "can not read '-0'"},
	} {
		out, err := run(tc.args...)
		require.Error(t, err, "args %v", tc.args)
		assert.Contains(t, err.Error(), tc.msg)
		assert.Empty(t, out, "no formula expected for args %v", tc.args)
	}
}

func TestZeroIsNotNegative(t *testing.T) {
	_, err := run("-0")
	require.Error(t, err)
	assert.NotEqual(t, errNegativeSeed, errors.Cause(err))
	assert.NotContains(t, err.Error(), "negative seed")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.cnf")
	out, err := run("9")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(good, []byte(out), 0o644))

	res, err := run("check", "--replay", good)
	require.NoError(t, err)
	assert.Equal(t, "OK "+good+"\n", res)

	bad := filepath.Join(dir, "bad.cnf")
	tampered := strings.Replace(out, "c seed 9\n", "c seed 10\n", 1)
	require.NoError(t, os.WriteFile(bad, []byte(tampered), 0o644))
	_, err = run("check", good, bad)
	require.NoError(t, err, "structure is still valid")
	res, err = run("check", "--replay", good, bad)
	require.Error(t, err)
	assert.Contains(t, res, "FAIL "+bad)
	assert.Contains(t, res, "differs from the formula generated with seed 10")
	assert.Contains(t, res, "\n-")
	assert.Contains(t, res, "\n+")
}

func TestCheckCommandHugeHeader(t *testing.T) {
	dir := t.TempDir()
	wide := filepath.Join(dir, "wide.cnf")
	require.NoError(t, os.WriteFile(wide, []byte("p cnf 4611686018427387904 1\n1 -2 0\n"), 0o644))
	long := filepath.Join(dir, "long.cnf")
	require.NoError(t, os.WriteFile(long, []byte("p cnf 3 4611686018427387904\n1 0\n"), 0o644))
	res, err := run("check", wide, long)
	require.Error(t, err)
	assert.Contains(t, res, "OK "+wide+"\n")
	assert.Contains(t, res, "FAIL "+long)
	assert.Contains(t, res, "found 1")
}

func TestBatchCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	_, err := run("batch", "-n", "3", "-o", dir, "--first-seed", "5", "-j", "2")
	require.NoError(t, err)
	for i := 1; i <= 3; i++ {
		content, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("cnf_%04d.cnf", i)))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), fmt.Sprintf("c seed %d\n", 4+i)))
	}
}

func TestBatchCommandSeedZero(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	_, err := run("batch", "-n", "1", "-o", dir, "--first-seed", "0")
	require.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(dir, "cnf_0001.cnf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "c seed 0\n"))
}

func TestBatchCommandConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "batch.yaml")
	out := filepath.Join(dir, "from-file")
	require.NoError(t, os.WriteFile(cfgPath, []byte("count: 2\nout: "+out+"\nfirst_seed: 100\nworkers: 1\n"), 0o644))
	_, err := run("batch", "--config", cfgPath, "-n", "1")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "cnf_0001.cnf"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "cnf_0002.cnf"))
	assert.True(t, os.IsNotExist(err), "count flag must override the file")
}
