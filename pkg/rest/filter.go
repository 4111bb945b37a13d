package rest

import (
	"bytes"
	"encoding/json"
)

// Default page size for filtered listings.
const defaultFilterLimit = 30

// ItemFilter builds the request body for the item filter endpoint:
// pagination, sort order, and per-external-id constraints. Constraint
// values are passed through untouched; the server interprets them against
// the field's type (option ids for category fields, {from, to} ranges for
// dates and numbers, and so on).
type ItemFilter struct {
	limit       int
	offset      int
	sortBy      string
	sortDesc    bool
	remember    bool
	constraints map[string]interface{}
	order       []string
}

// NewItemFilter returns a filter with the default page size.
func NewItemFilter() *ItemFilter {
	return &ItemFilter{
		limit:       defaultFilterLimit,
		constraints: make(map[string]interface{}),
	}
}

// Limit caps the number of returned items.
func (f *ItemFilter) Limit(limit int) *ItemFilter {
	f.limit = limit
	return f
}

// Offset skips past the first n items, for pagination.
func (f *ItemFilter) Offset(offset int) *ItemFilter {
	f.offset = offset
	return f
}

// SortBy orders the listing by a field's external id or one of the
// item-level sort keys ("created_on", "last_edit_on").
func (f *ItemFilter) SortBy(key string, descending bool) *ItemFilter {
	f.sortBy = key
	f.sortDesc = descending
	return f
}

// Remember asks the server to persist this filter as the user's view.
func (f *ItemFilter) Remember(remember bool) *ItemFilter {
	f.remember = remember
	return f
}

// Constraint restricts a field, keyed by external id. Setting the same key
// again replaces the previous constraint.
func (f *ItemFilter) Constraint(externalID string, value interface{}) *ItemFilter {
	if _, exists := f.constraints[externalID]; !exists {
		f.order = append(f.order, externalID)
	}
	f.constraints[externalID] = value
	return f
}

// Range constrains a field to a {from, to} window. Pass nil to leave one
// end open.
func (f *ItemFilter) Range(externalID string, from, to interface{}) *ItemFilter {
	window := map[string]interface{}{}
	if from != nil {
		window["from"] = from
	}
	if to != nil {
		window["to"] = to
	}
	return f.Constraint(externalID, window)
}

// MarshalJSON renders the filter request body. Constraints are emitted in
// the order they were set, so repeated builds of the same filter produce
// the same bytes.
func (f *ItemFilter) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{
		"limit": f.limit,
	}
	if f.offset > 0 {
		body["offset"] = f.offset
	}
	if f.sortBy != "" {
		body["sort_by"] = f.sortBy
		body["sort_desc"] = f.sortDesc
	}
	if f.remember {
		body["remember"] = true
	}
	if len(f.constraints) > 0 {
		filters, err := f.encodeConstraints()
		if err != nil {
			return nil, err
		}
		body["filters"] = json.RawMessage(filters)
	}
	return json.Marshal(body)
}

// encodeConstraints renders the filters object with keys in insertion
// order.
func (f *ItemFilter) encodeConstraints() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, externalID := range f.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(externalID)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(f.constraints[externalID])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
