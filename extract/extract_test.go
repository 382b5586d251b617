package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/extract"
	"github.com/fwojciec/freitagsfoo/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract_Fixtures(t *testing.T) {
	t.Parallel()

	files, err := filepath.Glob(filepath.Join("testdata", "*.wikitext"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			t.Parallel()

			text, err := os.ReadFile(file)
			require.NoError(t, err)
			want, err := os.ReadFile(strings.TrimSuffix(file, ".wikitext") + ".json")
			require.NoError(t, err)

			e := &extract.Extractor{}
			record, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: string(text)})
			require.NoError(t, err)

			got, err := freitagsfoo.MarshalRecord(record)
			require.NoError(t, err)
			assert.JSONEq(t, string(want), string(got))
		})
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	const page = "{{Event|Host=Alice, Bob|Date=2020-01-03}}\n" +
		"== Talk One ==\nby {{U|carol}}\nAbout one.\n" +
		"=== Notes ===\nnested\n" +
		"== Talk Two ==\n[[User:Dave|Dave]]\n"

	t.Run("extracts hosts, date and talks", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{}

		record, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})

		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, record.Hosts)
		assert.Equal(t, "2020-01-03", record.Date)
		require.Len(t, record.Talks, 2)
		assert.Equal(t, freitagsfoo.Talk{Title: "Talk One", Description: "", Persons: []string{"carol"}}, record.Talks[0])
		assert.Equal(t, freitagsfoo.Talk{Title: "Talk Two", Description: "", Persons: []string{"dave"}}, record.Talks[1])
	})

	t.Run("prefers the provided top section", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{}

		record, err := e.Extract(context.Background(), &freitagsfoo.Page{
			Text:       page,
			TopSection: "{{Event|Host=Zoe|Date=2020-01-10}}",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"zoe"}, record.Hosts)
		assert.Equal(t, "2020-01-10", record.Date)
	})

	t.Run("accepts matching expected date", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{ExpectedDate: "2020-01-03"}

		_, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})

		require.NoError(t, err)
	})

	t.Run("rejects mismatching expected date", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{ExpectedDate: "2020-01-10"}

		_, err := e.Extract(context.Background(), &freitagsfoo.Page{Title: "Freitagsfoo/2020-01-10", Text: page})

		require.Error(t, err)
		assert.Equal(t, freitagsfoo.EDATEMISMATCH, freitagsfoo.ErrorCode(err))
	})

	t.Run("uses configured date in scan mode", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{Mode: extract.MarkupScan, FixedDate: "2019-10-11"}

		record, err := e.Extract(context.Background(), &freitagsfoo.Page{
			Text: "Hosts: [[User:Alice|Alice]], {{U|bob}}\n== Talk ==\n{{U|carol}}\n",
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, record.Hosts)
		assert.Equal(t, "2019-10-11", record.Date)
		require.Len(t, record.Talks, 1)
		assert.Equal(t, []string{"carol"}, record.Talks[0].Persons)
	})

	t.Run("requires a date in scan mode", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{Mode: extract.MarkupScan}

		_, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})

		assert.Equal(t, freitagsfoo.EINVALID, freitagsfoo.ErrorCode(err))
	})

	t.Run("propagates malformed top section", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{}

		_, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: "no template\n== Talk ==\n"})

		assert.Equal(t, freitagsfoo.EMALFORMED, freitagsfoo.ErrorCode(err))
	})

	t.Run("renders descriptions with the configured describer", func(t *testing.T) {
		t.Parallel()

		var rendered []string
		renderer := &mock.Renderer{
			RenderFn: func(_ context.Context, wikitext string) (string, error) {
				rendered = append(rendered, wikitext)
				return "  plain  \n", nil
			},
		}
		describer, err := extract.NewDescriber(extract.DescribeRender, renderer)
		require.NoError(t, err)
		e := &extract.Extractor{Describer: describer}

		record, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})

		require.NoError(t, err)
		assert.Equal(t, "plain", record.Talks[0].Description)
		assert.Equal(t, "plain", record.Talks[1].Description)
		assert.Equal(t, []string{
			"by {{U|carol}}\nAbout one.\n=== Notes ===\nnested\n",
			"[[User:Dave|Dave]]\n",
		}, rendered)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{}

		first, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})
		require.NoError(t, err)
		second, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})
		require.NoError(t, err)

		a, err := freitagsfoo.MarshalRecord(first)
		require.NoError(t, err)
		b, err := freitagsfoo.MarshalRecord(second)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("leaves descriptions empty without a renderer", func(t *testing.T) {
		t.Parallel()

		describer, err := extract.NewDescriber(extract.DescribeNone, nil)
		require.NoError(t, err)
		e := &extract.Extractor{Describer: describer}

		record, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})

		require.NoError(t, err)
		for _, talk := range record.Talks {
			assert.Empty(t, talk.Description)
		}
	})
}

func TestExtractor_Extract_CodeBlocks(t *testing.T) {
	t.Parallel()

	t.Run("keeps examples inside pre out of the talk list", func(t *testing.T) {
		t.Parallel()

		page := "{{Event|Host=alice|Date=2019-10-11}}\n" +
			"== Anmeldung ==\nTrag dich so ein:\n<pre>\n== Dein Talk ==\n{{U|deinname}}\n</pre>\nvon {{U|bob}}\n"
		e := &extract.Extractor{}

		record, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})

		require.NoError(t, err)
		require.Len(t, record.Talks, 1)
		assert.Equal(t, "Anmeldung", record.Talks[0].Title)
		assert.Equal(t, []string{"bob"}, record.Talks[0].Persons)
	})

	t.Run("accepts unbalanced braces inside syntaxhighlight", func(t *testing.T) {
		t.Parallel()

		page := "{{Event|Host=alice|Date=2019-10-11}}\n" +
			"== Python ==\n<syntaxhighlight lang=\"python\">print(f\"{{literal\")</syntaxhighlight>\n{{U|carol}}\n"
		e := &extract.Extractor{}

		record, err := e.Extract(context.Background(), &freitagsfoo.Page{Text: page})

		require.NoError(t, err)
		require.Len(t, record.Talks, 1)
		assert.Equal(t, []string{"carol"}, record.Talks[0].Persons)
	})
}
