// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadNewick reads a tree in newick
// (parenthetical) format,
// and returns it with the indicated name.
//
// Labels can be quoted with single quotes,
// an in-label quote is escaped by doubling it.
// Underscores are kept as they are.
// Bracket comments are ignored.
func ReadNewick(r io.Reader, name string) (*Tree, error) {
	sc := &newickScanner{r: bufio.NewReader(r)}

	t := New(name, "")
	r1, err := sc.peek()
	if err != nil {
		return nil, fmt.Errorf("newick: tree %q: %v", name, err)
	}
	if r1 == '(' {
		if err := sc.readChildren(t, t.Root()); err != nil {
			return nil, fmt.Errorf("newick: tree %q: %v", name, err)
		}
	}
	label, err := sc.readLabel()
	if err != nil {
		return nil, fmt.Errorf("newick: tree %q: %v", name, err)
	}
	t.nodes[0].label = label
	if _, err := sc.readLength(); err != nil {
		return nil, fmt.Errorf("newick: tree %q: %v", name, err)
	}

	r1, err = sc.peek()
	if err != nil {
		return nil, fmt.Errorf("newick: tree %q: %v", name, err)
	}
	if r1 != ';' {
		return nil, fmt.Errorf("newick: tree %q: expecting ';', got %q", name, r1)
	}
	if t.Len() < 2 && t.Label(t.Root()) == "" {
		return nil, fmt.Errorf("newick: tree %q: empty tree", name)
	}
	return t, nil
}

type newickScanner struct {
	r    *bufio.Reader
	next rune
	has  bool
}

// Peek returns the next meaningful rune
// without consuming it,
// skipping spaces and bracket comments.
func (sc *newickScanner) peek() (rune, error) {
	if sc.has {
		return sc.next, nil
	}
	for {
		r1, _, err := sc.r.ReadRune()
		if err != nil {
			if err == io.EOF {
				return 0, fmt.Errorf("unexpected end of file")
			}
			return 0, err
		}
		if isSpace(r1) {
			continue
		}
		if r1 == '[' {
			for {
				r1, _, err = sc.r.ReadRune()
				if err != nil {
					return 0, fmt.Errorf("unexpected end of file: unclosed comment")
				}
				if r1 == ']' {
					break
				}
			}
			continue
		}
		sc.next = r1
		sc.has = true
		return r1, nil
	}
}

func (sc *newickScanner) read() (rune, error) {
	r1, err := sc.peek()
	if err != nil {
		return 0, err
	}
	sc.has = false
	return r1, nil
}

// ReadChildren reads a parenthesized group of descendants
// and adds them to the indicated node.
func (sc *newickScanner) readChildren(t *Tree, id int) error {
	if r1, err := sc.read(); err != nil {
		return err
	} else if r1 != '(' {
		return fmt.Errorf("expecting '(', got %q", r1)
	}

	for {
		r1, err := sc.peek()
		if err != nil {
			return err
		}

		var child int
		if r1 == '(' {
			child, err = t.Add(id, 0, "")
			if err != nil {
				return err
			}
			if err := sc.readChildren(t, child); err != nil {
				return err
			}
			label, err := sc.readLabel()
			if err != nil {
				return err
			}
			t.nodes[child].label = label
		} else {
			label, err := sc.readLabel()
			if err != nil {
				return err
			}
			child, err = t.Add(id, 0, label)
			if err != nil {
				return err
			}
		}
		l, err := sc.readLength()
		if err != nil {
			return err
		}
		t.nodes[child].length = l

		r1, err = sc.read()
		if err != nil {
			return err
		}
		if r1 == ',' {
			continue
		}
		if r1 == ')' {
			return nil
		}
		return fmt.Errorf("expecting ',' or ')', got %q", r1)
	}
}

// ReadLabel reads a node label.
// An empty label is valid.
func (sc *newickScanner) readLabel() (string, error) {
	r1, err := sc.peek()
	if err != nil {
		return "", err
	}

	if r1 == '\'' {
		sc.has = false
		var b strings.Builder
		for {
			r1, _, err := sc.r.ReadRune()
			if err != nil {
				return "", fmt.Errorf("unexpected end of file: unclosed quote")
			}
			if r1 == '\'' {
				nx, _, err := sc.r.ReadRune()
				if err == nil && nx == '\'' {
					b.WriteRune('\'')
					continue
				}
				if err == nil {
					sc.r.UnreadRune()
				}
				return b.String(), nil
			}
			b.WriteRune(r1)
		}
	}

	var b strings.Builder
	for {
		r1, err := sc.peek()
		if err != nil {
			return "", err
		}
		if isDelim(r1) {
			return b.String(), nil
		}
		sc.has = false
		b.WriteRune(r1)
	}
}

// ReadLength reads an optional branch length,
// in the form ":<value>".
func (sc *newickScanner) readLength() (float64, error) {
	r1, err := sc.peek()
	if err != nil {
		return 0, err
	}
	if r1 != ':' {
		return 0, nil
	}
	sc.has = false

	var b strings.Builder
	for {
		r1, err := sc.peek()
		if err != nil {
			return 0, err
		}
		if isDelim(r1) {
			break
		}
		sc.has = false
		b.WriteRune(r1)
	}
	l, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid branch length %q", b.String())
	}
	if l < 0 {
		l = 0
	}
	return l, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDelim(r rune) bool {
	return r == '(' || r == ')' || r == ',' || r == ':' || r == ';' || r == '['
}

// Write writes a tree in newick format.
// Labels with reserved characters are quoted.
func (t *Tree) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	t.writeNode(bw, t.nodes[0])
	bw.WriteString(";\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("newick: tree %q: %v", t.name, err)
	}
	return nil
}

func (t *Tree) writeNode(w *bufio.Writer, n *node) {
	if len(n.children) > 0 {
		w.WriteRune('(')
		for i, c := range n.children {
			if i > 0 {
				w.WriteRune(',')
			}
			t.writeNode(w, c)
		}
		w.WriteRune(')')
	}
	w.WriteString(quoteLabel(n.label))
	if n.parent != nil {
		w.WriteString(":" + strconv.FormatFloat(n.length, 'g', -1, 64))
	}
}

func quoteLabel(label string) string {
	if label == "" {
		return ""
	}
	if !strings.ContainsAny(label, "():,;[] '\t") {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}
