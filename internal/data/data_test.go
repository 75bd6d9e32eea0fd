package data

import (
    "path/filepath"
    "strings"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestReadTSVByHeader(t *testing.T) {
    in := "id\tmessage\tlabel\n" +
        "1\tfree money now\ttrue\n" +
        "2\tlet's meet for coffee\tham\n" +
        "3\tsay \"hi\" now\tspam\n"
    msgs, err := ReadTSV(strings.NewReader(in))
    require.NoError(t, err)
    assert.Equal(t, []Message{
        {Spam: true, Text: "free money now"},
        {Spam: false, Text: "let's meet for coffee"},
        {Spam: true, Text: `say "hi" now`},
    }, msgs)
}

func TestReadTSVPositionalFallback(t *testing.T) {
    msgs, err := ReadTSV(strings.NewReader("y\tx\n1\thello\n0\tbye\n"))
    require.NoError(t, err)
    assert.Equal(t, []Message{{Spam: true, Text: "hello"}, {Spam: false, Text: "bye"}}, msgs)
}

func TestReadTSVErrors(t *testing.T) {
    _, err := ReadTSV(strings.NewReader(""))
    assert.ErrorIs(t, err, ErrEmptyCorpus)

    _, err = ReadTSV(strings.NewReader("label\tmessage\nmaybe\thi\n"))
    assert.ErrorIs(t, err, ErrBadLabel)
    assert.Contains(t, err.Error(), "line 2")

    _, err = ReadTSV(strings.NewReader("label\tmessage\ntrue\n"))
    assert.Error(t, err)

    msgs, err := ReadTSV(strings.NewReader("label\tmessage\n"))
    require.NoError(t, err)
    assert.Empty(t, msgs)
}

func TestWriteLoadRoundTrip(t *testing.T) {
    path := filepath.Join(t.TempDir(), "nested", "corpus.tsv")
    want := append(Synthetic(50, 0.1, 3), Message{Spam: true, Text: "\"quoted\"\tand tabbed"})
    require.NoError(t, WriteTSV(path, want))
    got, err := LoadTSV(path)
    require.NoError(t, err)
    assert.Equal(t, want, got)

    _, err = LoadTSV(filepath.Join(t.TempDir(), "missing.tsv"))
    assert.Error(t, err)
}

func TestSynthetic(t *testing.T) {
    a := Synthetic(500, 0.05, 1)
    assert.Equal(t, a, Synthetic(500, 0.05, 1), "seeded")
    assert.NotEqual(t, a, Synthetic(500, 0.05, 2))

    spam := 0
    for _, m := range a {
        assert.NotEmpty(t, m.Text)
        if m.Spam { spam++ }
    }
    assert.Greater(t, spam, 0)
    assert.Less(t, spam, len(a))
}

func TestStratifiedSplit(t *testing.T) {
    msgs := make([]Message, 0, 100)
    for i := range 100 {
        msgs = append(msgs, Message{Spam: i < 20, Text: strings.Repeat("x", i+1)})
    }
    train, test := StratifiedSplit(msgs, 0.25, 9)
    assert.Len(t, train, 75)
    assert.Len(t, test, 25)

    count := func(ms []Message) int {
        c := 0
        for _, m := range ms { if m.Spam { c++ } }
        return c
    }
    assert.Equal(t, 15, count(train))
    assert.Equal(t, 5, count(test))
    assert.ElementsMatch(t, msgs, append(append([]Message{}, train...), test...))

    train2, test2 := StratifiedSplit(msgs, 0.25, 9)
    assert.Equal(t, train, train2)
    assert.Equal(t, test, test2)
}

func TestSplitColumns(t *testing.T) {
    texts, labels := Split([]Message{{Spam: true, Text: "a"}, {Text: "b"}})
    assert.Equal(t, []string{"a", "b"}, texts)
    assert.Equal(t, []bool{true, false}, labels)
}
