package ptero

import (
	"encoding/json"
	"fmt"
)

// Object tags shared by both API surfaces. Facades pass the tag they expect;
// a response carrying any other tag is rejected as a shape mismatch.
const (
	ObjectList       = "list"
	ObjectServer     = "server"
	ObjectUser       = "user"
	ObjectNode       = "node"
	ObjectAllocation = "allocation"
	ObjectNest       = "nest"
	ObjectEgg        = "egg"
	ObjectBackup     = "backup"
	ObjectFile       = "file_object"
	ObjectStats      = "stats"
	ObjectSignedURL  = "signed_url"
)

// resource is the panel's generic single-object envelope.
type resource struct {
	Object     string          `json:"object"`
	Attributes json.RawMessage `json:"attributes"`
}

// listEnvelope is the panel's paginated list envelope.
type listEnvelope struct {
	Object string     `json:"object"`
	Data   []resource `json:"data"`
	Meta   struct {
		Pagination Pagination `json:"pagination"`
	} `json:"meta"`
}

// Pagination is the metadata attached to every list envelope.
type Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// HasMore reports whether pages beyond the current one exist.
func (p Pagination) HasMore() bool {
	return p.CurrentPage < p.TotalPages
}

// NextPage returns the next page number, or an error if there are no more pages.
func (p Pagination) NextPage() (int, error) {
	if !p.HasMore() {
		return 0, fmt.Errorf("no more pages available")
	}
	return p.CurrentPage + 1, nil
}

// consistent validates the envelope's internal invariants: the element count
// may not exceed the page size and the page count must match the total.
func (p Pagination) consistent(elements int) error {
	if p.Count != elements {
		return fmt.Errorf("pagination count %d does not match %d elements", p.Count, elements)
	}
	if p.PerPage > 0 {
		if p.Count > p.PerPage {
			return fmt.Errorf("pagination count %d exceeds page size %d", p.Count, p.PerPage)
		}
		want := (p.Total + p.PerPage - 1) / p.PerPage
		if want == 0 {
			// The panel's paginator reports one page for empty collections.
			want = 1
		}
		if p.TotalPages != want {
			return fmt.Errorf("pagination reports %d pages, want %d for total %d", p.TotalPages, want, p.Total)
		}
	}
	return nil
}

// UnwrapObject decodes a single-resource envelope whose object tag must equal
// object, extracting the attributes payload into T. Decoding is pure and
// all-or-nothing.
func UnwrapObject[T any](resp *Response, object string) (T, error) {
	var zero T

	var env resource
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return zero, malformedError(resp.StatusCode, resp.Body, err)
	}
	if env.Object != object {
		return zero, shapeMismatchError("object",
			fmt.Errorf("got object %q, want %q", env.Object, object))
	}

	return decodeAttributes[T](env.Attributes, resp)
}

// UnwrapList decodes a paginated list envelope whose elements must all carry
// the given object tag. A single malformed element fails the whole decode;
// partial results are never returned.
func UnwrapList[T any](resp *Response, object string) ([]T, Pagination, error) {
	var env listEnvelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, Pagination{}, malformedError(resp.StatusCode, resp.Body, err)
	}
	if env.Object != ObjectList {
		return nil, Pagination{}, shapeMismatchError("object",
			fmt.Errorf("got object %q, want %q", env.Object, ObjectList))
	}

	items := make([]T, 0, len(env.Data))
	for _, el := range env.Data {
		if el.Object != object {
			return nil, Pagination{}, shapeMismatchError("data.object",
				fmt.Errorf("got element object %q, want %q", el.Object, object))
		}
		item, err := decodeAttributes[T](el.Attributes, resp)
		if err != nil {
			return nil, Pagination{}, err
		}
		items = append(items, item)
	}

	page := env.Meta.Pagination
	if page == (Pagination{}) {
		// Some endpoints return unpaginated lists; synthesize single-page meta.
		page = Pagination{
			Total: len(items), Count: len(items),
			PerPage: len(items), CurrentPage: 1, TotalPages: 1,
		}
	}
	if err := page.consistent(len(items)); err != nil {
		return nil, Pagination{}, malformedError(resp.StatusCode, resp.Body, err)
	}

	return items, page, nil
}

func decodeAttributes[T any](raw json.RawMessage, resp *Response) (T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		if typeErr, ok := err.(*json.UnmarshalTypeError); ok {
			return out, shapeMismatchError(typeErr.Field, err)
		}
		return out, malformedError(resp.StatusCode, resp.Body, err)
	}
	return out, nil
}
