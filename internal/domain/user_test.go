package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumStringAcceptsNumbersAndStrings(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"phoneNumber":8071234567,"bvn":"07060780922"}`), &u))
	assert.Equal(t, NumString("8071234567"), u.PhoneNumber)
	assert.Equal(t, NumString("07060780922"), u.BVN)

	require.NoError(t, json.Unmarshal([]byte(`{"phoneNumber":null,"bvn":12345678901234567890}`), &u))
	assert.Equal(t, NumString(""), u.PhoneNumber)
	assert.Equal(t, "12345678901234567890", u.BVN.String())

	assert.Error(t, json.Unmarshal([]byte(`{"bvn":true}`), &u))
}

func TestNumStringEncodesAsString(t *testing.T) {
	b, err := json.Marshal(Guarantor{PhoneNumber: "0807"})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"guarantorPhoneNumber":"0807"`)
}
