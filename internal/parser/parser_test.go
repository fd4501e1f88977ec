package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

func TestParseString_SimpleObject(t *testing.T) {
	res, err := ParseString(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`)
	require.NoError(t, err)
	require.Equal(t, models.KindObject, res.Root.Kind)
	assert.Empty(t, res.Duplicates)

	obj := res.Root.Object
	assert.Equal(t, []string{"name", "age", "isStudent", "city"}, obj.Keys())

	name, ok := obj.Get("name")
	require.True(t, ok)
	assert.Equal(t, models.KindString, name.Kind)
	assert.Equal(t, "John Doe", name.Str)

	age, ok := obj.Get("age")
	require.True(t, ok)
	assert.Equal(t, models.KindNumber, age.Kind)
	assert.Equal(t, "30", age.Num.String())

	city, ok := obj.Get("city")
	require.True(t, ok)
	assert.Equal(t, models.KindNull, city.Kind)
}

func TestParseString_SimpleArray(t *testing.T) {
	res, err := ParseString(`[1, "test", true, null, 3.14]`)
	require.NoError(t, err)
	require.Equal(t, models.KindArray, res.Root.Kind)
	require.Len(t, res.Root.Array, 5)

	kinds := make([]models.Kind, len(res.Root.Array))
	for i, elem := range res.Root.Array {
		kinds[i] = elem.Kind
	}
	assert.Equal(t, []models.Kind{
		models.KindNumber,
		models.KindString,
		models.KindBoolean,
		models.KindNull,
		models.KindNumber,
	}, kinds)
}

func TestParseString_ScalarRoots(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  models.Kind
	}{
		{"string", `"hello"`, models.KindString},
		{"number", `42`, models.KindNumber},
		{"boolean", `true`, models.KindBoolean},
		{"null", `null`, models.KindNull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.Root.Kind)
			assert.Empty(t, res.Duplicates)
		})
	}
}

func TestParseString_DuplicateKey(t *testing.T) {
	res, err := ParseString(`{"a":1,"a":2}`)
	require.NoError(t, err)

	// Last value wins, key stays in first-occurrence position.
	a, ok := res.Root.Object.Get("a")
	require.True(t, ok)
	assert.Equal(t, "2", a.Num.String())
	assert.Equal(t, 1, res.Root.Object.Len())

	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, models.DuplicateRecord{Path: "root", Key: "a"}, res.Duplicates[0])
}

func TestParseString_DuplicateKeyReportedOncePerObject(t *testing.T) {
	res, err := ParseString(`{"a":1,"a":2,"a":3}`)
	require.NoError(t, err)

	a, ok := res.Root.Object.Get("a")
	require.True(t, ok)
	assert.Equal(t, "3", a.Num.String())

	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, models.DuplicateRecord{Path: "root", Key: "a"}, res.Duplicates[0])
}

func TestParseString_DuplicateKeyNestedPath(t *testing.T) {
	res, err := ParseString(`{"items":[{"id":1,"id":2}]}`)
	require.NoError(t, err)

	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, models.DuplicateRecord{Path: "root.items[0]", Key: "id"}, res.Duplicates[0])
}

func TestParseString_DuplicateKeysInSeparateObjects(t *testing.T) {
	res, err := ParseString(`[{"k":1,"k":2},{"k":3,"k":4}]`)
	require.NoError(t, err)

	require.Len(t, res.Duplicates, 2)
	assert.Equal(t, models.DuplicateRecord{Path: "root[0]", Key: "k"}, res.Duplicates[0])
	assert.Equal(t, models.DuplicateRecord{Path: "root[1]", Key: "k"}, res.Duplicates[1])
}

func TestParseString_DuplicateKeyOrderPreserved(t *testing.T) {
	// The repeated key keeps its original slot, later distinct keys follow.
	res, err := ParseString(`{"a":1,"b":2,"a":3,"c":4}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, res.Root.Object.Keys())
	a, _ := res.Root.Object.Get("a")
	assert.Equal(t, "3", a.Num.String())
}

func TestParseString_NestedStructure(t *testing.T) {
	res, err := ParseString(`{"user": {"tags": ["a", "b"], "meta": {"active": true}}}`)
	require.NoError(t, err)

	user, ok := res.Root.Object.Get("user")
	require.True(t, ok)
	require.Equal(t, models.KindObject, user.Kind)

	tags, ok := user.Object.Get("tags")
	require.True(t, ok)
	require.Equal(t, models.KindArray, tags.Kind)
	require.Len(t, tags.Array, 2)

	meta, ok := user.Object.Get("meta")
	require.True(t, ok)
	active, ok := meta.Object.Get("active")
	require.True(t, ok)
	assert.True(t, active.Bool)
}

func TestParseString_EmptyContainers(t *testing.T) {
	res, err := ParseString(`{"empty_obj": {}, "empty_arr": []}`)
	require.NoError(t, err)

	eo, _ := res.Root.Object.Get("empty_obj")
	require.Equal(t, models.KindObject, eo.Kind)
	assert.Equal(t, 0, eo.Object.Len())

	ea, _ := res.Root.Object.Get("empty_arr")
	require.Equal(t, models.KindArray, ea.Kind)
	assert.Empty(t, ea.Array)
}

func TestParseString_MalformedJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing value", `{"a":}`},
		{"unquoted key", `{a: 1}`},
		{"truncated object", `{"a": 1`},
		{"truncated array", `[1, 2`},
		{"bare word", `nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			var appErr *errors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, errors.ErrorTypeParsing, appErr.Type)
		})
	}
}

func TestParseString_SyntaxErrorHasLineAndColumn(t *testing.T) {
	_, err := ParseString("{\n  \"a\": 1,\n  \"b\": oops\n}")
	require.Error(t, err)
	// The bad literal starts at "oops" on the third line, one byte past
	// the "\"b\": " prefix.
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "column 8")
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrEmptyInput)
	}
}

func TestParseString_TrailingData(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMultipleJSON)
}

func TestParseString_TrailingWhitespaceAllowed(t *testing.T) {
	res, err := ParseString("{\"a\": 1}\n\n")
	require.NoError(t, err)
	assert.Equal(t, models.KindObject, res.Root.Kind)
}

func TestParse_Reader(t *testing.T) {
	res, err := Parse(strings.NewReader(`[1, 2, 3]`))
	require.NoError(t, err)
	assert.Equal(t, models.KindArray, res.Root.Kind)
	assert.Len(t, res.Root.Array, 3)
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "root.items", ChildPath(RootPath, "items"))
	assert.Equal(t, "root.items[2]", IndexPath(ChildPath(RootPath, "items"), 2))
	assert.Equal(t, "key", ChildPath("", "key"))
}
