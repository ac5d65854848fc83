package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetUnirefCmd_Exists verifies getUnirefCmd returns
// a valid command.
func TestGetUnirefCmd_Exists(t *testing.T) {
	cmd := getUnirefCmd()
	require.NotNil(t, cmd, "Uniref command should exist")
	assert.Equal(t, "uniref", cmd.Name(),
		"Command name should be uniref")
}

// TestGetUnirefCmd_Flags verifies taxonomy and index-suffix
// flags exist with their defaults.
func TestGetUnirefCmd_Flags(t *testing.T) {
	cmd := getUnirefCmd()

	taxonomy := cmd.Flags().Lookup("taxonomy")
	require.NotNil(t, taxonomy, "taxonomy flag should exist")
	assert.Equal(t, "nodes.dmp", taxonomy.DefValue,
		"taxonomy should default to nodes.dmp")
	assert.Equal(t, "t", taxonomy.Shorthand)

	suffix := cmd.Flags().Lookup("index-suffix")
	require.NotNil(t, suffix, "index-suffix flag should exist")
	assert.Equal(t, "i", suffix.Shorthand)
}

// TestGetUnirefCmd_RequiresArgs verifies at least one dataset
// name is required.
func TestGetUnirefCmd_RequiresArgs(t *testing.T) {
	cmd := getUnirefCmd()
	err := cmd.Args(cmd, []string{})
	assert.Error(t, err, "Should reject empty dataset list")

	err = cmd.Args(cmd, []string{"uniref100"})
	assert.NoError(t, err, "Should accept one dataset")
}

// TestGetProteomeCmd_Exists verifies getProteomeCmd returns
// a valid command.
func TestGetProteomeCmd_Exists(t *testing.T) {
	cmd := getProteomeCmd()
	require.NotNil(t, cmd, "Proteome command should exist")
	assert.Equal(t, "proteome", cmd.Name(),
		"Command name should be proteome")

	outName := cmd.Flags().Lookup("out-name")
	require.NotNil(t, outName, "out-name flag should exist")
	assert.Equal(t, "o", outName.Shorthand)
}

// TestGetCord19Cmd_Exists verifies getCord19Cmd returns
// a valid command.
func TestGetCord19Cmd_Exists(t *testing.T) {
	cmd := getCord19Cmd()
	require.NotNil(t, cmd, "Cord19 command should exist")
	assert.Equal(t, "cord19", cmd.Use,
		"Command name should be cord19")

	fetch := cmd.Flags().Lookup("fetch")
	require.NotNil(t, fetch, "fetch flag should exist")
	assert.Equal(t, "false", fetch.DefValue,
		"fetch should default to false")
}
