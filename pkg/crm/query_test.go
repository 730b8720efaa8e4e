package crm_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/crm-client/pkg/crm"
)

//nolint:funlen // Test functions can be longer for detailed testing
func TestQueryOptions_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		options  *crm.QueryOptions
		expected string
	}{
		{
			name:     "nil options",
			options:  nil,
			expected: "",
		},
		{
			name:     "empty options",
			options:  crm.NewQueryOptions(),
			expected: "",
		},
		{
			name:     "count false emits nothing",
			options:  crm.NewQueryOptions().WithCount(false),
			expected: "",
		},
		{
			name: "filter with spaces and quotes",
			options: crm.NewQueryOptions().
				WithFilter("Name eq 'Acme'").
				WithTop(10).
				WithCount(true),
			expected: "$filter=Name%20eq%20'Acme'&$top=10&$count=true",
		},
		{
			name:     "paging",
			options:  crm.NewQueryOptions().WithSkip(20).WithTop(10),
			expected: "$top=10&$skip=20",
		},
		{
			name:     "select list keeps commas",
			options:  crm.NewQueryOptions().WithSelect("Id,Name,Email"),
			expected: "$select=Id,Name,Email",
		},
		{
			name:     "order by descending",
			options:  crm.NewQueryOptions().WithOrderBy("CreatedDate desc"),
			expected: "$orderby=CreatedDate%20desc",
		},
		{
			name:     "nested expand",
			options:  crm.NewQueryOptions().WithExpand("Customer($select=Name)"),
			expected: "$expand=Customer($select%3DName)",
		},
		{
			name:     "reserved characters are escaped",
			options:  crm.NewQueryOptions().WithFilter("Notes eq 'a&b=c#d+e'"),
			expected: "$filter=Notes%20eq%20'a%26b%3Dc%23d%2Be'",
		},
		{
			name: "all options in fixed order",
			options: &crm.QueryOptions{
				Count:   true,
				Select:  ptr("Id"),
				Expand:  ptr("Address"),
				OrderBy: ptr("Name"),
				Skip:    ptr(5),
				Top:     ptr(1),
				Filter:  ptr("Id gt 3"),
			},
			expected: "$filter=Id%20gt%203&$top=1&$skip=5&$orderby=Name&$expand=Address&$select=Id&$count=true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.options.Encode())
		})
	}
}

func TestQueryOptions_RoundTrip(t *testing.T) {
	t.Parallel()

	options := []*crm.QueryOptions{
		crm.NewQueryOptions().WithFilter("Name eq 'O''Brien' and City eq 'New York'"),
		crm.NewQueryOptions().WithTop(0).WithSkip(0),
		crm.NewQueryOptions().WithOrderBy("Name asc, Id desc").WithSelect("Id,Name").WithCount(true),
		crm.NewQueryOptions().WithExpand("Contacts($filter=Email ne null;$top=5)"),
		crm.NewQueryOptions().WithFilter("contains(Notes, '100% sure')"),
	}

	for _, opts := range options {
		parsed, err := url.ParseQuery(opts.Encode())
		require.NoError(t, err, opts.Encode())

		assert.Equal(t, opts.ToValues(), parsed, opts.Encode())

		for name := range parsed {
			assert.Len(t, parsed[name], 1, name)
		}
	}
}

func TestQueryOptions_ToValues(t *testing.T) {
	t.Parallel()

	values := crm.NewQueryOptions().WithFilter("Id eq 1").WithTop(3).WithCount(true).ToValues()

	assert.Equal(t, url.Values{
		crm.ParamFilter: []string{"Id eq 1"},
		crm.ParamTop:    []string{"3"},
		crm.ParamCount:  []string{"true"},
	}, values)
}

func TestQueryOptions_IsEmpty(t *testing.T) {
	t.Parallel()

	var nilOptions *crm.QueryOptions

	assert.True(t, nilOptions.IsEmpty())
	assert.True(t, crm.NewQueryOptions().IsEmpty())
	assert.False(t, crm.NewQueryOptions().WithSkip(0).IsEmpty())
}

func TestBuildURI(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://crm.example.com/odata/Customer")
	require.NoError(t, err)

	t.Run("no options returns copy", func(t *testing.T) {
		t.Parallel()

		uri := crm.BuildURI(base, nil)
		assert.Equal(t, base.String(), uri.String())
		assert.NotSame(t, base, uri)
	})

	t.Run("appends options", func(t *testing.T) {
		t.Parallel()

		uri := crm.BuildURI(base, crm.NewQueryOptions().WithFilter("Name eq 'Acme'").WithTop(10).WithCount(true))
		assert.Equal(t, "https://crm.example.com/odata/Customer?$filter=Name%20eq%20'Acme'&$top=10&$count=true", uri.String())
		assert.Empty(t, base.RawQuery)
	})

	t.Run("keeps existing query", func(t *testing.T) {
		t.Parallel()

		withQuery, err := url.Parse("https://crm.example.com/odata/Customer?api-version=2")
		require.NoError(t, err)

		uri := crm.BuildURI(withQuery, crm.NewQueryOptions().WithTop(1))
		assert.Equal(t, "api-version=2&$top=1", uri.RawQuery)
	})
}

func TestEscapeValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a%20b", crm.EscapeValue("a b"))
	assert.Equal(t, "'x',(y)", crm.EscapeValue("'x',(y)"))
	assert.Equal(t, "%2Fpath%3F", crm.EscapeValue("/path?"))
	assert.Equal(t, "100%25", crm.EscapeValue("100%"))
}

func ptr[T any](value T) *T {
	return &value
}
