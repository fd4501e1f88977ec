// Package parser materializes JSON documents into the Value tree while
// recording duplicate object keys, which the standard decoder silently
// collapses. It walks the token stream of encoding/json directly so every
// (key, value) pair reaches us in source order, duplicates included.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// RootPath is the textual address of the document root; descending into an
// object key k appends ".k" and into array index i appends "[i]".
const RootPath = "root"

// Result is a parsed document plus its duplicate-key side channel.
// Duplicates holds one record per repeated key per object, in the order the
// repeats were encountered; the tree itself keeps last-value-wins semantics.
type Result struct {
	Root       *models.Value
	Duplicates []models.DuplicateRecord
}

// Parse reads one complete JSON document from r.
func Parse(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseString parses a JSON document held in a string.
func ParseString(s string) (Result, error) {
	return ParseBytes([]byte(s))
}

// ParseBytes parses a complete JSON document. Exactly one top-level value is
// allowed; trailing non-whitespace data is rejected.
func ParseBytes(data []byte) (Result, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Result{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	p := &docParser{dec: dec, data: data}

	tok, err := dec.Token()
	if err != nil {
		return Result{}, p.classify(err)
	}
	root, err := p.parseValue(tok, RootPath)
	if err != nil {
		return Result{}, err
	}

	// Exactly one document per input; anything after the first value other
	// than whitespace is an error.
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return Result{}, p.classify(err)
		}
		return Result{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return Result{Root: root, Duplicates: p.dups}, nil
}

type docParser struct {
	dec  *json.Decoder
	data []byte
	dups []models.DuplicateRecord
}

func (p *docParser) parseValue(tok json.Token, path string) (*models.Value, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.parseObject(path)
		case '[':
			return p.parseArray(path)
		}
		return nil, errors.NewParsingError(fmt.Sprintf("unexpected delimiter %q", v.String()), errors.ErrInvalidJSON)
	case string:
		return models.NewString(v), nil
	case json.Number:
		return models.NewNumber(v), nil
	case bool:
		return models.NewBool(v), nil
	case nil:
		return models.NewNull(), nil
	default:
		return nil, errors.NewParsingError(fmt.Sprintf("unexpected token %v", v), errors.ErrInvalidJSON)
	}
}

// parseObject consumes tokens up to and including the closing brace. The
// (key, value) pairs arrive in source order with duplicates intact; the
// first repeat of a key at this level emits one DuplicateRecord carrying
// this object's path, further repeats of the same key are not re-reported.
func (p *docParser) parseObject(path string) (*models.Value, error) {
	obj := models.NewObject()
	var reported map[string]bool

	for p.dec.More() {
		keyTok, err := p.dec.Token()
		if err != nil {
			return nil, p.classify(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.NewParsingError(fmt.Sprintf("object key is not a string: %v", keyTok), errors.ErrInvalidJSON)
		}

		valTok, err := p.dec.Token()
		if err != nil {
			return nil, p.classify(err)
		}
		child, err := p.parseValue(valTok, ChildPath(path, key))
		if err != nil {
			return nil, err
		}

		if obj.Set(key, child) && !reported[key] {
			if reported == nil {
				reported = make(map[string]bool)
			}
			reported[key] = true
			p.dups = append(p.dups, models.DuplicateRecord{Path: path, Key: key})
		}
	}

	// Consume the closing '}'.
	if _, err := p.dec.Token(); err != nil {
		return nil, p.classify(err)
	}
	return models.NewObjectValue(obj), nil
}

func (p *docParser) parseArray(path string) (*models.Value, error) {
	var elems []*models.Value
	for p.dec.More() {
		tok, err := p.dec.Token()
		if err != nil {
			return nil, p.classify(err)
		}
		elem, err := p.parseValue(tok, IndexPath(path, len(elems)))
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}

	// Consume the closing ']'.
	if _, err := p.dec.Token(); err != nil {
		return nil, p.classify(err)
	}
	return models.NewArrayValue(elems), nil
}

// classify converts decoder errors into parsing errors with a useful
// location where one is available.
func (p *docParser) classify(err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		// SyntaxError.Offset is relative to the decoder's internal buffer
		// when tokens are read one at a time; InputOffset is the position
		// in the input stream.
		line, col := lineCol(p.data, p.dec.InputOffset())
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at line %d, column %d: %s", line, col, syntaxErr.Error()),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// lineCol maps a byte offset to a 1-based line and column.
func lineCol(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = 1 + bytes.Count(prefix, []byte{'\n'})
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		col = int(offset) - i
	} else {
		col = int(offset) + 1
	}
	return line, col
}

// ChildPath returns the address of an object member, mirroring the scheme
// the parser threads through recursive descent.
func ChildPath(parent, key string) string {
	if parent == "" {
		return key
	}
	var b strings.Builder
	b.WriteString(parent)
	b.WriteByte('.')
	b.WriteString(key)
	return b.String()
}

// IndexPath returns the address of an array element.
func IndexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
