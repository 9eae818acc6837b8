package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name   string
		sample []byte
		want   Encoding
	}{
		{
			name:   "plain ascii",
			sample: []byte("name,age\nAda,36\n"),
			want:   EncodingUTF8,
		},
		{
			name:   "utf-8 with multibyte runes",
			sample: []byte("Miasto;Ilość\nŁódź;10\n"),
			want:   EncodingUTF8,
		},
		{
			name:   "utf-8 with BOM",
			sample: append([]byte{0xef, 0xbb, 0xbf}, []byte("a,b\n1,2\n")...),
			want:   EncodingUTF8BOM,
		},
		{
			name:   "legacy single-byte bytes",
			sample: []byte{'M', 'i', 'a', 's', 't', 'o', ';', 0xa3, 0xf3, 'd', 0x9f, '\n'},
			want:   EncodingWindows1250,
		},
		{
			name: "multibyte rune cut at sample boundary",
			// "Ilość" truncated mid-rune must still count as UTF-8.
			sample: []byte("kolumna;Ilość")[:len("kolumna;Ilość")-1],
			want:   EncodingUTF8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectEncoding(tt.sample))
		})
	}
}

func TestDecodeNeverFails(t *testing.T) {
	// The terminal fallback accepts every possible byte value.
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	got := Decode(all, EncodingWindows1250)
	assert.NotEmpty(t, got)

	// Spot-check a few Central-European letters.
	assert.Equal(t, "Łódź", Decode([]byte{0xa3, 0xf3, 'd', 0x9f}, EncodingWindows1250))
}

func TestDecodeStripsBOM(t *testing.T) {
	data := append([]byte{0xef, 0xbb, 0xbf}, []byte("a,b")...)
	assert.Equal(t, "a,b", Decode(data, EncodingUTF8BOM))
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name string
		text string
		want rune
	}{
		{
			name: "comma separated",
			text: "name,age,city\nAda,36,London\nGrace,45,New York\n",
			want: ',',
		},
		{
			name: "semicolon separated without commas",
			text: "name;age;city\nAda;36;London\nGrace;45;Paris\n",
			want: ';',
		},
		{
			name: "tab separated",
			text: "a\tb\tc\n1\t2\t3\n",
			want: '\t',
		},
		{
			name: "pipe separated",
			text: "a|b|c\n1|2|3\n",
			want: '|',
		},
		{
			name: "semicolon wins over fewer commas",
			text: "name;age;note\nAda;36;likes tea, mostly green\nGrace;45;n/a\n",
			want: ';',
		},
		{
			name: "ambiguous single column falls back to comma",
			text: "justonecolumn\nvalue\n",
			want: ',',
		},
		{
			name: "tie broken by candidate order",
			text: "a,b;c\n",
			want: ',',
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Detect([]byte(tt.text))
			assert.Equal(t, tt.want, f.Delimiter)
		})
	}
}

func TestDetectHeader(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "text header over numeric body",
			text: "name,score\nAda,10\nGrace,12\nEdsger,9\n",
			want: true,
		},
		{
			name: "numeric first row means no header",
			text: "1,2,3\n4,5,6\n7,8,9\n",
			want: false,
		},
		{
			name: "single row defaults to header",
			text: "a,b,c\n",
			want: true,
		},
		{
			name: "all text stays conservative",
			text: "x,y\nfoo,bar\nbaz,qux\n",
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Detect([]byte(tt.text))
			assert.Equal(t, tt.want, f.HasHeader)
		})
	}
}

func TestDetectIsPureAndTotal(t *testing.T) {
	// Detection never fails, whatever the bytes.
	samples := [][]byte{
		nil,
		{},
		{0x00, 0xff, 0xfe},
		[]byte(strings.Repeat("ż", 1000)),
	}
	for _, s := range samples {
		f := Detect(s)
		require.NotZero(t, f.Delimiter)
		require.NotEmpty(t, f.Encoding)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10,5", 10.5, true},
		{"2 500,00", 2500, true},
		{"1 000", 1000, true},
		{" 42 ", 42, true},
		{"3.14", 3.14, true},
		{"-7,25", -7.25, true},
		{"1e3", 1000, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"02-495", 0, false},
		{"1,2,3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}
