package data

import (
    "encoding/csv"
    "errors"
    "fmt"
    "io"
    "os"
    "path/filepath"
    "strconv"
    "strings"

    "go.uber.org/multierr"
)

var (
    ErrEmptyCorpus = errors.New("corpus has no header row")
    ErrBadLabel    = errors.New("unrecognized label")
)

// LoadTSV reads a tab-separated corpus whose first row is a header. The
// label and message columns are found by the names "label" and "message",
// falling back to columns 0 and 1.
func LoadTSV(path string) ([]Message, error) {
    f, err := os.Open(path)
    if err != nil { return nil, err }
    defer f.Close()
    msgs, err := ReadTSV(f)
    if err != nil { return nil, fmt.Errorf("%s: %w", path, err) }
    return msgs, nil
}

func ReadTSV(r io.Reader) ([]Message, error) {
    cr := newReader(r)
    header, err := cr.Read()
    if err == io.EOF { return nil, ErrEmptyCorpus }
    if err != nil { return nil, err }

    labelCol, textCol := 0, 1
    for i, h := range header {
        switch strings.ToLower(strings.TrimSpace(h)) {
        case "label":
            labelCol = i
        case "message":
            textCol = i
        }
    }

    var msgs []Message
    for {
        rec, err := cr.Read()
        if err == io.EOF { break }
        if err != nil { return nil, err }
        if len(rec) <= labelCol || len(rec) <= textCol {
            line, _ := cr.FieldPos(0)
            return nil, fmt.Errorf("line %d: %d columns", line, len(rec))
        }
        spam, err := ParseLabel(rec[labelCol])
        if err != nil {
            line, _ := cr.FieldPos(labelCol)
            return nil, fmt.Errorf("line %d: %w", line, err)
        }
        msgs = append(msgs, Message{Spam: spam, Text: rec[textCol]})
    }
    return msgs, nil
}

// ParseLabel accepts strconv.ParseBool values as well as spam/ham.
func ParseLabel(s string) (bool, error) {
    s = strings.TrimSpace(s)
    switch strings.ToLower(s) {
    case "spam":
        return true, nil
    case "ham":
        return false, nil
    }
    b, err := strconv.ParseBool(s)
    if err != nil { return false, fmt.Errorf("%w %q", ErrBadLabel, s) }
    return b, nil
}

// WriteTSV writes msgs with a "label\tmessage" header.
func WriteTSV(path string, msgs []Message) (err error) {
    if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { return err }
    f, err := os.Create(path)
    if err != nil { return err }
    defer func() { err = multierr.Append(err, f.Close()) }()

    w := csv.NewWriter(f)
    w.Comma = '\t'
    if err := w.Write([]string{"label", "message"}); err != nil { return err }
    for _, m := range msgs {
        if err := w.Write([]string{strconv.FormatBool(m.Spam), m.Text}); err != nil { return err }
    }
    w.Flush()
    return w.Error()
}

func newReader(r io.Reader) *csv.Reader {
    cr := csv.NewReader(r)
    cr.Comma = '\t'
    cr.LazyQuotes = true
    cr.FieldsPerRecord = -1
    cr.ReuseRecord = true
    return cr
}
