// ABOUTME: Tests for the response encoder
// ABOUTME: Pairs wire format exactness, JSON compactness, format fallbacks

package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/bncctl/internal/admin"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat(""))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatPairs, ParseFormat("pairs"))
	assert.Equal(t, Format("xml"), ParseFormat("xml"))
}

func TestEncode_PairsExactWireFormat(t *testing.T) {
	result := admin.Success().With("count", 2)

	body, err := Encode(result, FormatPairs)
	require.NoError(t, err)
	// Comma-space separated with the historical trailing separator.
	assert.Equal(t, "error=false, count=2, ", string(body))
}

func TestEncode_PairsStringsAreRaw(t *testing.T) {
	result := admin.Failure("error_adding_user").With("description", "username already exists")

	body, err := Encode(result, FormatPairs)
	require.NoError(t, err)
	assert.Equal(t, "error=error_adding_user, description=username already exists, ", string(body))
}

func TestEncode_PairsStructuredValues(t *testing.T) {
	result := admin.Success().With("users", []string{"alice", "bob"})

	body, err := Encode(result, FormatPairs)
	require.NoError(t, err)
	assert.Equal(t, `error=false, users=["alice","bob"], `, string(body))
}

func TestEncode_JSONCompact(t *testing.T) {
	result := admin.Success().With("count", 2)

	body, err := Encode(result, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, `{"error":false,"count":2}`, string(body))
	assert.NotContains(t, string(body), " ")
}

func TestEncode_JSONRoundTrip(t *testing.T) {
	result := admin.Success().
		With("networks", []admin.NetworkSummary{
			{Name: "libera", Server: "irc.libera.chat", Connected: true},
			{Name: "oftc", Server: "", Connected: false},
		})

	body, err := Encode(result, FormatJSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, false, decoded["error"])

	networks := decoded["networks"].([]any)
	require.Len(t, networks, 2)
	first := networks[0].(map[string]any)
	assert.Equal(t, "libera", first["name"])
	assert.Equal(t, "irc.libera.chat", first["server"])
	assert.Equal(t, true, first["connected"])
}

func TestEncode_UnrecognizedFormatEmptyBody(t *testing.T) {
	body, err := Encode(admin.Success(), Format("xml"))
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestEncode_EmptyResultEmptyBody(t *testing.T) {
	body, err := Encode(admin.Result{}, FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, body)

	body, err = Encode(admin.Result{}, FormatPairs)
	require.NoError(t, err)
	assert.Empty(t, body)
}
