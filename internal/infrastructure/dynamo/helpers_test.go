package dynamo

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrKey(t *testing.T) {
	key := strKey("user_id", "abc")
	require.Len(t, key, 1)

	attr, ok := key["user_id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "abc", attr.Value)
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := encodeCursor("01J8ZK3V9Q4R5T6Y7U8I9O0P1A")
	assert.NotContains(t, cursor, "=")

	userID, err := decodeCursor(cursor)
	require.NoError(t, err)
	assert.Equal(t, "01J8ZK3V9Q4R5T6Y7U8I9O0P1A", userID)
}

func TestDecodeCursor_Invalid(t *testing.T) {
	_, err := decodeCursor("%%%not-base64%%%")
	assert.Error(t, err)
}
