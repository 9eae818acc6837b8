package profile

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablescan/tablescan-cli/internal/table"
)

const polishCSV = "Produkt;Cena;Ilość\nLaptop;2500,50;10\nMysz;45,99;100\nKlawiatura;;50\n"

func TestProfilePolishSemicolonFile(t *testing.T) {
	res, tbl, err := Profile([]byte(polishCSV), DefaultOptions())
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "utf-8", res.Meta.Encoding)
	assert.Equal(t, ";", res.Meta.Delimiter)
	assert.True(t, res.Meta.Header)
	assert.Equal(t, 3, res.Meta.Rows)
	assert.Equal(t, 3, res.Meta.Cols)

	require.Len(t, res.Columns, 3)

	produkt := res.Columns[0]
	assert.Equal(t, "Produkt", produkt.Name)
	assert.Equal(t, TypeString, produkt.InferredType)
	assert.Equal(t, SemCategorical, produkt.SemanticType)
	assert.False(t, produkt.Nullable)
	assert.Equal(t, 3, produkt.UniqueCount)

	cena := res.Columns[1]
	assert.Equal(t, "Cena", cena.Name)
	assert.Equal(t, TypeNumeric, cena.InferredType)
	assert.Equal(t, SemMeasure, cena.SemanticType)
	assert.True(t, cena.Nullable)
	assert.Equal(t, 1, cena.MissingCount)
	require.NotNil(t, cena.Stats)
	assert.InDelta(t, 45.99, cena.Stats.Min, 1e-9)
	assert.InDelta(t, 2500.5, cena.Stats.Max, 1e-9)
	assert.InDelta(t, 1273.245, cena.Stats.Mean, 1e-9)

	ilosc := res.Columns[2]
	assert.Equal(t, "Ilość", ilosc.Name)
	assert.Equal(t, TypeNumeric, ilosc.InferredType)
	assert.Equal(t, SemMeasure, ilosc.SemanticType)
	assert.False(t, ilosc.Nullable)

	assert.Equal(t, []string{"Produkt"}, res.Suggestions.Dimensions)
	assert.Equal(t, []string{"Cena", "Ilość"}, res.Suggestions.Measures)
	assert.Empty(t, res.Suggestions.Datetimes)

	require.Len(t, res.Preview, 3)
	assert.Equal(t, []string{"Laptop", "2500,50", "10"}, res.Preview[0])

	// The returned table is normalized: the empty price cell is the sentinel.
	assert.Equal(t, table.Missing, tbl.Rows[2][1])
}

func TestProfileThenImpute(t *testing.T) {
	res, tbl, err := Profile([]byte(polishCSV), DefaultOptions())
	require.NoError(t, err)

	out := Impute(tbl, res.Classes, "")

	got, perr := strconv.ParseFloat(out.Rows[2][1], 64)
	require.NoError(t, perr)
	assert.InDelta(t, 1273.245, got, 1e-9)

	// Non-missing cells are untouched.
	assert.Equal(t, "2500,50", out.Rows[0][1])
}

func TestProfileLegacyEncodedFile(t *testing.T) {
	// "Miasto;Kwota\nŁódź;10,5\nKraków;20,5\n" in Windows-1250 bytes.
	data := []byte("Miasto;Kwota\n")
	data = append(data, 0xa3, 0xf3, 'd', 0x9f)
	data = append(data, []byte(";10,5\nKrak")...)
	data = append(data, 0xf3, 'w')
	data = append(data, []byte(";20,5\n")...)

	res, tbl, err := Profile(data, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "windows-1250", res.Meta.Encoding)
	assert.Equal(t, "Łódź", tbl.Rows[0][0])
	assert.Equal(t, "Kraków", tbl.Rows[1][0])
	assert.Equal(t, SemMeasure, res.Columns[1].SemanticType)
}

func TestProfileBOMFile(t *testing.T) {
	data := append([]byte{0xef, 0xbb, 0xbf}, []byte("a,b\nx,1\ny,2\n")...)
	res, tbl, err := Profile(data, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "utf-8-sig", res.Meta.Encoding)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
}

func TestProfileDatetimeColumnGetsRange(t *testing.T) {
	csv := "data;kwota\n2023-01-02;10\n2023-05-06;20\n2022-12-01;30\n"
	res, _, err := Profile([]byte(csv), DefaultOptions())
	require.NoError(t, err)

	col := res.Columns[0]
	require.Equal(t, SemDatetime, col.SemanticType)
	require.NotNil(t, col.DateRange)
	assert.Equal(t, "2022-12-01", col.DateRange.Min)
	assert.Equal(t, "2023-05-06", col.DateRange.Max)
	assert.Equal(t, []string{"data"}, res.Suggestions.Datetimes)
}

func TestProfileWarnsOnRenamedColumns(t *testing.T) {
	res, tbl, err := Profile([]byte("x,x\n1,2\n3,4\n"), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "x__2"}, tbl.Columns)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "renamed")
}

func TestProfileNullTokenFolding(t *testing.T) {
	csv := "a,b\nnull,1\nx,2\n"

	opts := DefaultOptions()
	res, _, err := Profile([]byte(csv), opts)
	require.NoError(t, err)
	// Off by default: the literal token stays a value.
	assert.Equal(t, 0, res.Columns[0].MissingCount)

	opts.NormalizeNullTokens = true
	res, tbl, err := Profile([]byte(csv), opts)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Columns[0].MissingCount)
	assert.Equal(t, table.Missing, tbl.Rows[0][0])
}

func TestProfilePreviewIsBounded(t *testing.T) {
	csv := "n\n1\n2\n3\n4\n5\n"
	opts := DefaultOptions()
	opts.PreviewRows = 2

	res, _, err := Profile([]byte(csv), opts)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Meta.PreviewRows)
	assert.Len(t, res.Preview, 2)
	assert.Equal(t, 5, res.Meta.Rows)
}

func TestProfileSampleValuesAreDistinct(t *testing.T) {
	csv := "tag\na\nb\na\nb\nc\n"
	res, _, err := Profile([]byte(csv), DefaultOptions())
	require.NoError(t, err)

	col := res.Columns[0]
	assert.Equal(t, []string{"a", "b", "c"}, col.SampleValues)
	assert.Equal(t, 3, col.UniqueCount)
}

func TestProfileErrorsPropagate(t *testing.T) {
	_, _, err := Profile(nil, DefaultOptions())
	assert.ErrorIs(t, err, table.ErrEmptyFile)

	_, _, err = Profile([]byte("only,a,header\n"), DefaultOptions())
	assert.ErrorIs(t, err, table.ErrNoRows)
}
