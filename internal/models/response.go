package models

import "encoding/json"

// Response holds an examinee's answer to a single question. On the wire
// it is either a JSON string (single-select and text types) or a JSON
// array of strings (multi-select, matching and sequence types).
type Response struct {
	Scalar string
	List   []string
	IsList bool
}

func ScalarResponse(s string) Response {
	return Response{Scalar: s}
}

func ListResponse(items ...string) Response {
	return Response{List: items, IsList: true}
}

// IsEmpty reports whether the examinee gave no answer at all.
func (r Response) IsEmpty() bool {
	if r.IsList {
		return len(r.List) == 0
	}
	return r.Scalar == ""
}

// Values returns the response as a slice regardless of shape.
func (r Response) Values() []string {
	if r.IsList {
		return r.List
	}
	if r.Scalar == "" {
		return nil
	}
	return []string{r.Scalar}
}

func (r Response) MarshalJSON() ([]byte, error) {
	if r.IsList {
		if r.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(r.List)
	}
	return json.Marshal(r.Scalar)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Response{Scalar: s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*r = Response{List: list, IsList: true}
	return nil
}
