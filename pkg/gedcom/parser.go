package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineSize is the longest line the scanner accepts.
const maxLineSize = 1024 * 1024

// Parse reads GEDCOM lines into a Document. CONT and CONC lines are folded
// into the value of their parent element. Any line that does not follow
// the "level [@xref@] TAG [value]" grammar, or a level that skips a step,
// makes the whole input invalid.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLineSize)

	doc := &Document{}
	var stack []*Node
	var lineNum, count int

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		line = strings.TrimLeft(line, " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}

		node, err := parseLine(line, lineNum)
		if err != nil {
			return nil, err
		}
		if count == 0 && node.Level != 0 {
			return nil, SyntaxError(lineNum, line, "file must start with a level 0 record")
		}
		count++

		for len(stack) > node.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) != node.Level {
			reason := fmt.Sprintf("level %d has no parent at level %d",
				node.Level, node.Level-1)
			return nil, SyntaxError(lineNum, line, reason)
		}

		if node.Level == 0 {
			switch node.TagName {
			case "HEAD":
				doc.Header = node
			case "TRLR":
			default:
				doc.Records = append(doc.Records, node)
			}
			stack = append(stack, node)
			continue
		}

		parent := stack[node.Level-1]
		switch node.TagName {
		case "CONT":
			parent.Val += "\n" + node.Val
			continue
		case "CONC":
			parent.Val += node.Val
			continue
		}
		parent.Elements = append(parent.Elements, node)
		stack = append(stack, node)
	}

	if err := scanner.Err(); err != nil {
		return nil, ReadError(lineNum, err)
	}
	if count == 0 {
		return nil, EmptyError()
	}
	return doc, nil
}

func parseLine(line string, num int) (*Node, error) {
	levelStr, rest, _ := strings.Cut(line, " ")
	level, err := strconv.Atoi(levelStr)
	if err != nil || level < 0 || level > 99 {
		return nil, SyntaxError(num, line, "level is not a number")
	}
	rest = strings.TrimLeft(rest, " ")

	res := &Node{Level: level, Line: num}
	if strings.HasPrefix(rest, "@") {
		xref, after, ok := strings.Cut(rest, " ")
		if !ok || len(xref) < 3 || !strings.HasSuffix(xref, "@") {
			return nil, SyntaxError(num, line, "malformed cross-reference id")
		}
		res.XrefID = xref
		rest = strings.TrimLeft(after, " ")
	}

	tag, val, _ := strings.Cut(rest, " ")
	if !validTag(tag) {
		return nil, SyntaxError(num, line, "missing or invalid tag")
	}
	res.TagName = strings.ToUpper(tag)
	res.Val = strings.TrimRight(val, "\r")
	return res, nil
}

func validTag(tag string) bool {
	if tag == "" {
		return false
	}
	for _, r := range tag {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
		default:
			return false
		}
	}
	return true
}
