package records

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestParseOrg(t *testing.T) {
	t.Run("round trips fields", func(t *testing.T) {
		name := uuid.NewString()
		got, err := ParseOrg(fmt.Sprintf("%d, %d, %s", 321, 32, name))
		require.NoError(t, err)
		require.Equal(t, OrgRecord{ID: 321, ParentID: 32, Name: name}, got)
		require.False(t, got.IsRoot())
	})

	t.Run("null parent becomes root", func(t *testing.T) {
		got, err := ParseOrg("1, null, root1")
		require.NoError(t, err)
		require.Equal(t, RootParentID, got.ParentID)
		require.True(t, got.IsRoot())
	})

	t.Run("empty or garbage parent becomes root", func(t *testing.T) {
		for _, parent := range []string{"", "  ", "abc", "1.5"} {
			got, err := ParseOrg("7," + parent + ",x")
			require.NoError(t, err, parent)
			require.Equal(t, RootParentID, got.ParentID, parent)
		}
	})

	t.Run("name keeps inner spaces", func(t *testing.T) {
		got, err := ParseOrg("  5 ,2,  Sales  East ")
		require.NoError(t, err)
		require.Equal(t, 5, got.ID)
		require.Equal(t, "Sales  East", got.Name)
	})

	t.Run("wrong field count is a format error", func(t *testing.T) {
		for _, line := range []string{"1, null", "1, 2, a, b", ""} {
			_, err := ParseOrg(line)
			var fe *FormatError
			require.ErrorAs(t, err, &fe, line)
			require.Equal(t, "Invalid line found in Org hierarchy input file: "+line, err.Error())
		}
	})

	t.Run("non integer id propagates parse error", func(t *testing.T) {
		_, err := ParseOrg("x, 1, name")
		var numErr *strconv.NumError
		require.ErrorAs(t, err, &numErr)
		var fe *FormatError
		require.False(t, errors.As(err, &fe))
	})
}

func TestParseUser(t *testing.T) {
	t.Run("round trips fields", func(t *testing.T) {
		got, err := ParseUser(" 100 , 21 ,40")
		require.NoError(t, err)
		require.Equal(t, UserRecord{UserID: 100, OrgID: 21, NumFiles: 40}, got)
	})

	t.Run("wrong field count is a format error", func(t *testing.T) {
		line := "1, 2"
		_, err := ParseUser(line)
		var fe *FormatError
		require.ErrorAs(t, err, &fe)
		require.Equal(t, "Invalid line found in User data input file: 1, 2", err.Error())
	})

	t.Run("every field must be an integer", func(t *testing.T) {
		for _, line := range []string{"a, 1, 1", "1, null, 1", "1, 1, many"} {
			_, err := ParseUser(line)
			var numErr *strconv.NumError
			require.ErrorAs(t, err, &numErr, line)
		}
	})
}
