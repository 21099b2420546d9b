package bytes

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONMarshal(t *testing.T) {
	type TestStruct struct {
		B1 []byte
		B2 HexBytes
	}

	cases := []struct {
		input    []byte
		expected string
	}{
		{[]byte(``), `{"B1":"","B2":""}`},
		{[]byte(`a`), `{"B1":"YQ==","B2":"61"}`},
		{[]byte(`abc`), `{"B1":"YWJj","B2":"616263"}`},
	}

	for i, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("Case %d", i), func(t *testing.T) {
			ts := TestStruct{B1: tc.input, B2: tc.input}

			jsonBytes, err := json.Marshal(ts)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(jsonBytes))

			// TestStruct -> JSON -> TestStruct2
			ts2 := TestStruct{}
			err = json.Unmarshal(jsonBytes, &ts2)
			require.NoError(t, err)
			assert.Equal(t, ts.B1, ts2.B1)
			assert.Equal(t, ts.B2, ts2.B2)
		})
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	// an empty string decodes to an empty slice, not a nil one, so values
	// survive a marshal/unmarshal round trip unchanged
	var bz HexBytes
	require.NoError(t, json.Unmarshal([]byte(`""`), &bz))
	assert.NotNil(t, bz)
	assert.Len(t, bz, 0)
}

func TestUnmarshalBase64Fallback(t *testing.T) {
	// Some node versions emit base64 where hex is expected; both must decode.
	var fromHex, fromB64 HexBytes
	require.NoError(t, json.Unmarshal([]byte(`"616263"`), &fromHex))
	require.NoError(t, json.Unmarshal([]byte(`"YWJj"`), &fromB64))
	assert.Equal(t, HexBytes("abc"), fromHex)
	assert.Equal(t, HexBytes("abc"), fromB64)
}

func TestHexBytes_Format(t *testing.T) {
	hs := HexBytes([]byte("test me"))
	if f := fmt.Sprintf("%X", hs); f != "74657374206D65" {
		t.Errorf("Got the wrong hex: %s", f)
	}
	if f := fmt.Sprintf("%v", hs); f != "74657374206D65" {
		t.Errorf("Got the wrong hex: %s", f)
	}
}

func TestHexBytes_String(t *testing.T) {
	hs := HexBytes([]byte("test me"))
	assert.Equal(t, "74657374206D65", hs.String())
}
