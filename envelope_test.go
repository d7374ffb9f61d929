package ptero

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Suspended   bool   `json:"suspended"`
	Limits      struct {
		Memory int64 `json:"memory"`
		Disk   int64 `json:"disk"`
	} `json:"limits"`
}

const testServerAttrs = `{
	"identifier": "d3aac109",
	"name": "Wuhu Island",
	"description": "Matt from Wii Sports",
	"suspended": false,
	"limits": {"memory": 512, "disk": 200}
}`

func objectBody(object, attrs string) []byte {
	return []byte(fmt.Sprintf(`{"object": %q, "attributes": %s}`, object, attrs))
}

func TestUnwrapObject(t *testing.T) {
	t.Run("decodes matching object", func(t *testing.T) {
		resp := &Response{StatusCode: 200, Body: objectBody("server", testServerAttrs)}

		server, err := UnwrapObject[testServer](resp, ObjectServer)
		require.NoError(t, err)
		assert.Equal(t, "d3aac109", server.Identifier)
		assert.Equal(t, "Wuhu Island", server.Name)
		assert.Equal(t, int64(512), server.Limits.Memory)
	})

	t.Run("round trip preserves every field", func(t *testing.T) {
		resp := &Response{StatusCode: 200, Body: objectBody("server", testServerAttrs)}

		server, err := UnwrapObject[testServer](resp, ObjectServer)
		require.NoError(t, err)

		reencoded, err := json.Marshal(server)
		require.NoError(t, err)
		assert.JSONEq(t, testServerAttrs, string(reencoded))
	})

	t.Run("rejects mismatched object tag", func(t *testing.T) {
		resp := &Response{StatusCode: 200, Body: objectBody("user", testServerAttrs)}

		_, err := UnwrapObject[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindShapeMismatch, perr.Kind)
		assert.Equal(t, "object", perr.ShapeField)
	})

	t.Run("names the field violating its type", func(t *testing.T) {
		attrs := `{"identifier": "d3aac109", "name": "x", "limits": {"memory": "lots"}}`
		resp := &Response{StatusCode: 200, Body: objectBody("server", attrs)}

		_, err := UnwrapObject[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindShapeMismatch, perr.Kind)
		assert.Equal(t, "limits.memory", perr.ShapeField)
	})

	t.Run("rejects non-JSON body", func(t *testing.T) {
		resp := &Response{StatusCode: 200, Body: []byte("<html>login</html>")}

		_, err := UnwrapObject[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindMalformedResponse, perr.Kind)
	})
}

func listBody(meta string, elements ...string) []byte {
	data := "["
	for i, el := range elements {
		if i > 0 {
			data += ","
		}
		data += el
	}
	data += "]"
	return []byte(fmt.Sprintf(`{"object": "list", "data": %s, "meta": %s}`, data, meta))
}

func TestUnwrapList(t *testing.T) {
	el1 := string(objectBody("server", `{"identifier": "one", "name": "First"}`))
	el2 := string(objectBody("server", `{"identifier": "two", "name": "Second"}`))

	t.Run("decodes elements and pagination", func(t *testing.T) {
		meta := `{"pagination": {"total": 2, "count": 2, "per_page": 50, "current_page": 1, "total_pages": 1}}`
		resp := &Response{StatusCode: 200, Body: listBody(meta, el1, el2)}

		servers, page, err := UnwrapList[testServer](resp, ObjectServer)
		require.NoError(t, err)
		require.Len(t, servers, 2)
		assert.Equal(t, "one", servers[0].Identifier)
		assert.Equal(t, "two", servers[1].Identifier)
		assert.Equal(t, 2, page.Total)
		assert.False(t, page.HasMore())
	})

	t.Run("single malformed element fails the whole decode", func(t *testing.T) {
		bad := string(objectBody("server", `{"identifier": "three", "suspended": "maybe"}`))
		meta := `{"pagination": {"total": 3, "count": 3, "per_page": 50, "current_page": 1, "total_pages": 1}}`
		resp := &Response{StatusCode: 200, Body: listBody(meta, el1, el2, bad)}

		servers, _, err := UnwrapList[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindShapeMismatch, perr.Kind)
		assert.Equal(t, "suspended", perr.ShapeField)
		assert.Nil(t, servers)
	})

	t.Run("rejects element with wrong object tag", func(t *testing.T) {
		stray := string(objectBody("user", `{"identifier": "x"}`))
		meta := `{"pagination": {"total": 2, "count": 2, "per_page": 50, "current_page": 1, "total_pages": 1}}`
		resp := &Response{StatusCode: 200, Body: listBody(meta, el1, stray)}

		_, _, err := UnwrapList[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindShapeMismatch, perr.Kind)
	})

	t.Run("rejects inconsistent page count", func(t *testing.T) {
		// total=100, per_page=50 demands 2 pages
		meta := `{"pagination": {"total": 100, "count": 2, "per_page": 50, "current_page": 1, "total_pages": 5}}`
		resp := &Response{StatusCode: 200, Body: listBody(meta, el1, el2)}

		_, _, err := UnwrapList[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindMalformedResponse, perr.Kind)
	})

	t.Run("rejects count exceeding page size", func(t *testing.T) {
		meta := `{"pagination": {"total": 2, "count": 2, "per_page": 1, "current_page": 1, "total_pages": 2}}`
		resp := &Response{StatusCode: 200, Body: listBody(meta, el1, el2)}

		_, _, err := UnwrapList[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindMalformedResponse, perr.Kind)
	})

	t.Run("accepts the empty collection meta the panel emits", func(t *testing.T) {
		// The panel's paginator reports one page even when nothing matched.
		meta := `{"pagination": {"total": 0, "count": 0, "per_page": 50, "current_page": 1, "total_pages": 1}}`
		resp := &Response{StatusCode: 200, Body: listBody(meta)}

		servers, page, err := UnwrapList[testServer](resp, ObjectServer)
		require.NoError(t, err)
		assert.Empty(t, servers)
		assert.Equal(t, 0, page.Total)
		assert.False(t, page.HasMore())
	})

	t.Run("synthesizes single-page meta for unpaginated lists", func(t *testing.T) {
		resp := &Response{StatusCode: 200, Body: listBody(`{}`, el1, el2)}

		servers, page, err := UnwrapList[testServer](resp, ObjectServer)
		require.NoError(t, err)
		assert.Len(t, servers, 2)
		assert.Equal(t, 2, page.Total)
		assert.False(t, page.HasMore())
	})

	t.Run("rejects envelope that is not a list", func(t *testing.T) {
		resp := &Response{StatusCode: 200, Body: objectBody("server", testServerAttrs)}

		_, _, err := UnwrapList[testServer](resp, ObjectServer)
		var perr *Error
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, KindShapeMismatch, perr.Kind)
	})
}

func TestPagination(t *testing.T) {
	t.Run("HasMore", func(t *testing.T) {
		assert.True(t, Pagination{CurrentPage: 1, TotalPages: 3}.HasMore())
		assert.False(t, Pagination{CurrentPage: 3, TotalPages: 3}.HasMore())
	})

	t.Run("NextPage", func(t *testing.T) {
		next, err := Pagination{CurrentPage: 2, TotalPages: 5}.NextPage()
		require.NoError(t, err)
		assert.Equal(t, 3, next)

		_, err = Pagination{CurrentPage: 5, TotalPages: 5}.NextPage()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no more pages")
	})
}
