package fsbc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `<?xml version="1.0" encoding="UTF-8"?>
<Catalog>
  <ApprovingActNumber>421/пр</ApprovingActNumber>
  <ApprovingActDate>04.08.2020</ApprovingActDate>
  <ResourceCategory Type="Материалы">
    <Section Type="Книга" Code="01" Name="Материалы для строительных работ">
      <Section Type="Часть" Code="01.1" Name="Нерудные материалы">
        <Section Type="Раздел" Code="01.1.01" Name="Щебень">
          <Section Type="Группа" Code="01.1.01.01" Name="Щебень гранитный">
            <Resource Code="01.1.01.01-0001" Name="Щебень фракции 5-10" MeasureUnit="м3">
              <Price Cost="1250,00" OptCost="1100,00"/>
            </Resource>
            <Resource Code="01.1.01.01-0002" Name="Щебень фракции 10-20" MeasureUnit="м3"/>
          </Section>
          <Section Type="Группа" Code="01.1.01.02" Name="Щебень известняковый">
            <Resource Code="01.1.01.02-0001" Name="Щебень фракции 20-40" MeasureUnit="м3">
              <Prices>
                <Price Cost="980,00" OptCost=""/>
              </Prices>
            </Resource>
          </Section>
        </Section>
      </Section>
    </Section>
  </ResourceCategory>
</Catalog>`

func TestParse(t *testing.T) {
	ctx := context.Background()

	t.Run("counts and drops", func(t *testing.T) {
		result, err := NewParser().Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)

		// Three candidates, one without a price element.
		assert.Equal(t, 3, result.Candidates)
		assert.Equal(t, 1, result.Errors)
		require.Len(t, result.Records, 2)
		assert.Equal(t, result.Candidates, len(result.Records)+result.Errors)
	})

	t.Run("metadata", func(t *testing.T) {
		result, err := NewParser().Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)

		assert.Equal(t, "421/пр", result.Metadata.ApprovingActNumber)
		assert.Equal(t, "04.08.2020", result.Metadata.ApprovingActDate)
	})

	t.Run("hierarchy is flattened into the record", func(t *testing.T) {
		result, err := NewParser().Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)

		first := result.Records[0]
		assert.Equal(t, "Материалы", first.CategoryType)
		assert.Equal(t, "01", first.BookCode)
		assert.Equal(t, "Материалы для строительных работ", first.BookName)
		assert.Equal(t, "01.1", first.PartCode)
		assert.Equal(t, "01.1.01", first.SectionCode)
		assert.Equal(t, "01.1.01.01", first.GroupCode)
		assert.Equal(t, "01.1.01.01-0001", first.Code)
		assert.Equal(t, "1250,00", first.Cost)
		assert.Equal(t, "1100,00", first.OptCost)
	})

	t.Run("price located at any depth inside the resource", func(t *testing.T) {
		result, err := NewParser().Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)

		second := result.Records[1]
		assert.Equal(t, "01.1.01.02-0001", second.Code)
		assert.Equal(t, "980,00", second.Cost)
		assert.Equal(t, "", second.OptCost)
		assert.Equal(t, "01.1.01.02", second.GroupCode)
	})

	t.Run("byte order mark is stripped", func(t *testing.T) {
		raw := append([]byte{0xef, 0xbb, 0xbf}, []byte(sampleCatalog)...)
		result, err := NewParser().Parse(ctx, raw)
		require.NoError(t, err)
		assert.Len(t, result.Records, 2)
	})

	t.Run("parsing twice yields identical results", func(t *testing.T) {
		p := NewParser()
		first, err := p.Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)
		second, err := p.Parse(ctx, []byte(sampleCatalog))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("malformed stream is fatal", func(t *testing.T) {
		_, err := NewParser().Parse(ctx, []byte("<Catalog><Section"))
		assert.Error(t, err)
	})
}

func TestParseShallowSiblingResetsDeeperLevels(t *testing.T) {
	const doc = `<Catalog>
  <ResourceCategory Type="Материалы">
    <Section Type="Книга" Code="01" Name="Первая">
      <Section Type="Часть" Code="01.1" Name="Часть">
        <Resource Code="a" Name="А"><Price Cost="1" OptCost=""/></Resource>
      </Section>
    </Section>
    <Section Type="Книга" Code="02" Name="Вторая">
      <Resource Code="b" Name="Б"><Price Cost="2" OptCost=""/></Resource>
    </Section>
  </ResourceCategory>
</Catalog>`

	result, err := NewParser().Parse(context.Background(), []byte(doc))
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	assert.Equal(t, "01.1", result.Records[0].PartCode)

	// The second book has no Часть open, the stale value from the first
	// sibling must not leak in.
	assert.Equal(t, "02", result.Records[1].BookCode)
	assert.Equal(t, "", result.Records[1].PartCode)
}

func TestParseProgress(t *testing.T) {
	var calls []int
	p := NewParser(WithProgress(func(percent int) {
		calls = append(calls, percent)
	}))

	_, err := p.Parse(context.Background(), []byte(sampleCatalog))
	require.NoError(t, err)

	// Advisory values, but completion is always reported.
	require.NotEmpty(t, calls)
	assert.Equal(t, 100, calls[len(calls)-1])
}
