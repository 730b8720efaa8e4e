package crm

import (
	"net/url"
	"strconv"
	"strings"
)

// OData system query option names.
const (
	ParamFilter  = "$filter"
	ParamTop     = "$top"
	ParamSkip    = "$skip"
	ParamOrderBy = "$orderby"
	ParamExpand  = "$expand"
	ParamSelect  = "$select"
	ParamCount   = "$count"
)

// QueryOptions describes an OData collection query. Nil fields are omitted.
// Expressions are passed through verbatim; no OData syntax checking is done.
type QueryOptions struct {
	Filter  *string `json:"filter,omitempty"  yaml:"filter,omitempty"`
	Top     *int    `json:"top,omitempty"     yaml:"top,omitempty"`
	Skip    *int    `json:"skip,omitempty"    yaml:"skip,omitempty"`
	OrderBy *string `json:"orderby,omitempty" yaml:"orderby,omitempty"`
	Expand  *string `json:"expand,omitempty"  yaml:"expand,omitempty"`
	Select  *string `json:"select,omitempty"  yaml:"select,omitempty"`
	Count   bool    `json:"count,omitempty"   yaml:"count,omitempty"`
}

// NewQueryOptions creates an empty option set.
func NewQueryOptions() *QueryOptions {
	return &QueryOptions{}
}

// WithFilter sets $filter.
func (q *QueryOptions) WithFilter(filter string) *QueryOptions {
	q.Filter = &filter

	return q
}

// WithTop sets $top.
func (q *QueryOptions) WithTop(top int) *QueryOptions {
	q.Top = &top

	return q
}

// WithSkip sets $skip.
func (q *QueryOptions) WithSkip(skip int) *QueryOptions {
	q.Skip = &skip

	return q
}

// WithOrderBy sets $orderby.
func (q *QueryOptions) WithOrderBy(orderBy string) *QueryOptions {
	q.OrderBy = &orderBy

	return q
}

// WithExpand sets $expand.
func (q *QueryOptions) WithExpand(expand string) *QueryOptions {
	q.Expand = &expand

	return q
}

// WithSelect sets $select.
func (q *QueryOptions) WithSelect(sel string) *QueryOptions {
	q.Select = &sel

	return q
}

// WithCount requests the total count.
func (q *QueryOptions) WithCount(count bool) *QueryOptions {
	q.Count = count

	return q
}

type queryParam struct {
	name  string
	value string
}

// params returns the populated options in a fixed order.
func (q *QueryOptions) params() []queryParam {
	if q == nil {
		return nil
	}

	var params []queryParam

	if q.Filter != nil {
		params = append(params, queryParam{ParamFilter, *q.Filter})
	}

	if q.Top != nil {
		params = append(params, queryParam{ParamTop, strconv.Itoa(*q.Top)})
	}

	if q.Skip != nil {
		params = append(params, queryParam{ParamSkip, strconv.Itoa(*q.Skip)})
	}

	if q.OrderBy != nil {
		params = append(params, queryParam{ParamOrderBy, *q.OrderBy})
	}

	if q.Expand != nil {
		params = append(params, queryParam{ParamExpand, *q.Expand})
	}

	if q.Select != nil {
		params = append(params, queryParam{ParamSelect, *q.Select})
	}

	if q.Count {
		params = append(params, queryParam{ParamCount, "true"})
	}

	return params
}

// IsEmpty reports whether no option is set.
func (q *QueryOptions) IsEmpty() bool {
	return len(q.params()) == 0
}

// ToValues converts the options to url.Values.
func (q *QueryOptions) ToValues() url.Values {
	values := url.Values{}
	for _, p := range q.params() {
		values.Set(p.name, p.value)
	}

	return values
}

// odataUnescaper restores characters that OData servers expect literally.
var odataUnescaper = strings.NewReplacer(
	"+", "%20",
	"%24", "$",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2C", ",",
)

// EscapeValue escapes a query value as a URI component. Spaces become %20
// rather than '+', and OData quote/list/grouping characters stay literal.
func EscapeValue(value string) string {
	return odataUnescaper.Replace(url.QueryEscape(value))
}

// Encode renders the options as a query string, without a leading '?'.
func (q *QueryOptions) Encode() string {
	var builder strings.Builder

	for i, p := range q.params() {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(p.name)
		builder.WriteByte('=')
		builder.WriteString(EscapeValue(p.value))
	}

	return builder.String()
}

// BuildURI returns a copy of base with the options appended as OData query
// parameters. Existing query parameters on base are kept. With no options set
// the copy equals base.
func BuildURI(base *url.URL, opts *QueryOptions) *url.URL {
	uri := *base

	encoded := opts.Encode()
	if encoded == "" {
		return &uri
	}

	if uri.RawQuery == "" {
		uri.RawQuery = encoded
	} else {
		uri.RawQuery += "&" + encoded
	}

	return &uri
}
