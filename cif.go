/*
 * cif.go, part of goccd.
 *
 * Copyright 2024 The goccd Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package ccd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

var tl func(string) string = strings.ToLower

// Table is one mmCIF category of a data block. Categories given as tag/value
// pairs instead of a loop_ are read as a table with a single row.
type Table struct {
	Name    string
	columns []string
	index   map[string]int
	rows    [][]string
}

func newTable(name string) *Table {
	return &Table{Name: name, index: make(map[string]int)}
}

// Len returns the number of rows in the table.
func (T *Table) Len() int {
	if T == nil {
		return 0
	}
	return len(T.rows)
}

// Columns returns the attribute names of the table, lowercased and without the
// category prefix.
func (T *Table) Columns() []string {
	return T.columns
}

// Has returns true if the table contains the attribute col.
func (T *Table) Has(col string) bool {
	if T == nil {
		return false
	}
	_, ok := T.index[tl(col)]
	return ok
}

// Value returns the raw value of the attribute col in the given row, or the
// empty string if the attribute is not present.
func (T *Table) Value(row int, col string) string {
	if T == nil || row < 0 || row >= len(T.rows) {
		return ""
	}
	k, ok := T.index[tl(col)]
	if !ok || k >= len(T.rows[row]) {
		return ""
	}
	return T.rows[row][k]
}

// Field is like Value, but the mmCIF null values "?" and "." are returned
// as an empty string, and ok is false for them and for absent attributes.
func (T *Table) Field(row int, col string) (string, bool) {
	v := T.Value(row, col)
	if v == "" || v == "?" || v == "." {
		return "", false
	}
	return v, true
}

func (T *Table) addColumn(col string) int {
	col = tl(col)
	if k, ok := T.index[col]; ok {
		return k
	}
	T.index[col] = len(T.columns)
	T.columns = append(T.columns, col)
	return len(T.columns) - 1
}

// Block is an mmCIF data block.
type Block struct {
	Name   string
	tables map[string]*Table
	order  []string
}

func newBlock(name string) *Block {
	return &Block{Name: name, tables: make(map[string]*Table)}
}

// Table returns the category cat (for instance "_chem_comp_atom") or nil if
// the block doesn't contain it.
func (B *Block) Table(cat string) *Table {
	return B.tables[tl(cat)]
}

// Categories returns the names of the categories in the block, in file order.
func (B *Block) Categories() []string {
	return B.order
}

func (B *Block) table(cat string) *Table {
	cat = tl(cat)
	t, ok := B.tables[cat]
	if !ok {
		t = newTable(cat)
		B.tables[cat] = t
		B.order = append(B.order, cat)
	}
	return t
}

// splitTag separates an mmCIF tag in its category and attribute.
func splitTag(tag string) (string, string) {
	i := strings.Index(tag, ".")
	if i < 0 {
		return tag, ""
	}
	return tag[:i], tag[i+1:]
}

type cifToken struct {
	text   string
	quoted bool //quoted strings and text fields are always values.
	line   int
}

func (t cifToken) isTag() bool  { return !t.quoted && strings.HasPrefix(t.text, "_") }
func (t cifToken) isLoop() bool { return !t.quoted && tl(t.text) == "loop_" }
func (t cifToken) isData() bool { return !t.quoted && strings.HasPrefix(tl(t.text), "data_") }
func (t cifToken) isFrame() bool {
	return !t.quoted && (strings.HasPrefix(tl(t.text), "save_") || tl(t.text) == "global_")
}

// cifLexer splits an mmCIF stream in tokens, one line at a time.
type cifLexer struct {
	r       *bufio.Reader
	line    int
	pending []cifToken
	peeked  *cifToken
}

func newCIFLexer(r io.Reader) *cifLexer {
	return &cifLexer{r: bufio.NewReader(r)}
}

func (L *cifLexer) readLine() (string, error) {
	line, err := L.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	L.line++
	return strings.TrimRight(line, "\r\n"), nil
}

// peek returns the next token without consuming it.
func (L *cifLexer) peek() (cifToken, error) {
	if L.peeked != nil {
		return *L.peeked, nil
	}
	t, err := L.next()
	if err != nil {
		return t, err
	}
	L.peeked = &t
	return t, nil
}

// next returns the next token, or io.EOF at the end of the stream.
func (L *cifLexer) next() (cifToken, error) {
	if L.peeked != nil {
		t := *L.peeked
		L.peeked = nil
		return t, nil
	}
	for len(L.pending) == 0 {
		line, err := L.readLine()
		if err != nil {
			return cifToken{}, err
		}
		if strings.HasPrefix(line, ";") {
			t, err := L.textField(line)
			if err != nil {
				return cifToken{}, err
			}
			return t, nil
		}
		L.pending, err = splitCIFLine(line, L.line)
		if err != nil {
			return cifToken{}, err
		}
	}
	t := L.pending[0]
	L.pending = L.pending[1:]
	return t, nil
}

// textField reads a semicolon-delimited text field whose first line is first.
func (L *cifLexer) textField(first string) (cifToken, error) {
	start := L.line
	lines := []string{first[1:]}
	for {
		line, err := L.readLine()
		if err == io.EOF {
			return cifToken{}, fmt.Errorf("line %d: unterminated text field: %w", start, ErrSyntax)
		}
		if err != nil {
			return cifToken{}, err
		}
		if strings.HasPrefix(line, ";") {
			//anything after the closing semicolon is ignored.
			break
		}
		lines = append(lines, line)
	}
	if lines[0] == "" {
		lines = lines[1:]
	}
	return cifToken{text: strings.TrimRight(strings.Join(lines, "\n"), " \t"), quoted: true, line: start}, nil
}

// splitCIFLine tokenizes a line that does not start a text field.
func splitCIFLine(line string, lineno int) ([]cifToken, error) {
	var toks []cifToken
	i := 0
	for i < len(line) {
		c := line[i]
		if c == ' ' || c == '\t' {
			i++
			continue
		}
		if c == '#' {
			break
		}
		if c == '\'' || c == '"' {
			//a quote only closes the string when followed by whitespace or the end of line.
			j := i + 1
			for {
				k := strings.IndexByte(line[j:], c)
				if k < 0 {
					return nil, fmt.Errorf("line %d: unterminated quoted string: %w", lineno, ErrSyntax)
				}
				j += k
				if j+1 == len(line) || line[j+1] == ' ' || line[j+1] == '\t' {
					break
				}
				j++
			}
			toks = append(toks, cifToken{text: line[i+1 : j], quoted: true, line: lineno})
			i = j + 1
			continue
		}
		j := i
		for j < len(line) && line[j] != ' ' && line[j] != '\t' {
			j++
		}
		toks = append(toks, cifToken{text: line[i:j], line: lineno})
		i = j
	}
	return toks, nil
}

// ReadCIF reads all the data blocks of an mmCIF stream.
func ReadCIF(r io.Reader) ([]*Block, error) {
	L := newCIFLexer(r)
	var blocks []*Block
	var cur *Block
	for {
		t, err := L.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Error{message: "reading mmCIF", err: err, deco: []string{"ReadCIF"}, critical: true}
		}
		switch {
		case t.isData():
			cur = newBlock(t.text[len("data_"):])
			blocks = append(blocks, cur)
		case t.isFrame():
			//save frames are not used in chemical component files.
			continue
		case cur == nil:
			return nil, &Error{message: fmt.Sprintf("line %d: %q outside of a data block", t.line, t.text), err: ErrSyntax, deco: []string{"ReadCIF"}, critical: true}
		case t.isLoop():
			if err := readLoop(L, cur); err != nil {
				return nil, &Error{message: "reading loop_", err: err, deco: []string{"readLoop", "ReadCIF"}, critical: true}
			}
		case t.isTag():
			v, err := L.next()
			if err == io.EOF || (err == nil && !v.quoted && (v.isTag() || v.isLoop() || v.isData())) {
				return nil, &Error{message: fmt.Sprintf("line %d: tag %s has no value", t.line, t.text), err: ErrSyntax, deco: []string{"ReadCIF"}, critical: true}
			}
			if err != nil {
				return nil, &Error{message: "reading mmCIF", err: err, deco: []string{"ReadCIF"}, critical: true}
			}
			cat, attr := splitTag(t.text)
			tab := cur.table(cat)
			k := tab.addColumn(attr)
			if len(tab.rows) == 0 {
				tab.rows = append(tab.rows, nil)
			}
			row := tab.rows[0]
			for len(row) <= k {
				row = append(row, "")
			}
			row[k] = v.text
			tab.rows[0] = row
		default:
			return nil, &Error{message: fmt.Sprintf("line %d: unexpected value %q", t.line, t.text), err: ErrSyntax, deco: []string{"ReadCIF"}, critical: true}
		}
	}
	if len(blocks) == 0 {
		return nil, &Error{message: "reading mmCIF", err: ErrNoDataBlock, deco: []string{"ReadCIF"}, critical: true}
	}
	return blocks, nil
}

// readLoop reads a loop_ construct into the block B. The loop_ token has already
// been consumed.
func readLoop(L *cifLexer, B *Block) error {
	var tab *Table
	ncols := 0
	for {
		t, err := L.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if !t.isTag() {
			break
		}
		L.next()
		cat, attr := splitTag(t.text)
		if tab == nil {
			tab = B.table(cat)
		} else if tab.Name != tl(cat) {
			return fmt.Errorf("line %d: tag %s doesn't belong to category %s: %w", t.line, t.text, tab.Name, ErrSyntax)
		}
		tab.addColumn(attr)
		ncols++
	}
	if tab == nil {
		return fmt.Errorf("loop_ without tags: %w", ErrSyntax)
	}
	var row []string
	for {
		t, err := L.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if t.isTag() || t.isLoop() || t.isData() || t.isFrame() {
			break
		}
		L.next()
		row = append(row, t.text)
		if len(row) == ncols {
			tab.rows = append(tab.rows, row)
			row = nil
		}
	}
	if len(row) != 0 {
		return fmt.Errorf("category %s: %d values left over, expected rows of %d: %w", tab.Name, len(row), ncols, ErrSyntax)
	}
	return nil
}
