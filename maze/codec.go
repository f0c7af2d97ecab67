package maze

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

const recordFmt = "X%03dY%03dL%dT%dR%dB%d\n"

var recordRegex = regexp.MustCompile(`^X(\d{3})Y(\d{3})L([01])T([01])R([01])B([01])$`)

// Encode returns the text encoding of the grid: one record per cell in row-major order.
func Encode(g *Grid) string {
	var sb strings.Builder
	_ = Write(&sb, g)
	return sb.String()
}

// Write writes the text encoding of the grid to w.
func Write(w io.Writer, g *Grid) error {
	bw := bufio.NewWriter(w)
	for _, c := range g.Cells() {
		_, err := fmt.Fprintf(bw, recordFmt,
			c.Pos.Col, c.Pos.Row, bit(c.LeftWall), bit(c.TopWall), bit(c.RightWall), bit(c.BottomWall))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decode parses the text encoding produced by Encode.
// Dimensions are the largest column and row found; the entrance is the first cell of column 1
// with an open left wall and the exit the first cell of the last column with an open right wall.
// Any malformed line rejects the whole input.
func Decode(data string) (*Grid, error) {
	return Read(strings.NewReader(data))
}

// Read parses the text encoding from r. See Decode.
func Read(r io.Reader) (*Grid, error) {
	var (
		walls         []Walls
		width, height int
	)

	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSuffix(scanner.Text(), "\r")
		w, err := parseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidFormat, line, err)
		}
		walls = append(walls, w)
		width = max(width, w.Pos.Col)
		height = max(height, w.Pos.Row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(walls) == 0 {
		return nil, fmt.Errorf("%w: no cells", ErrInvalidFormat)
	}

	entranceRow, exitRow := 0, 0
	for _, w := range walls {
		if entranceRow == 0 && w.Pos.Col == 1 && !w.Left {
			entranceRow = w.Pos.Row
		}
		if exitRow == 0 && w.Pos.Col == width && !w.Right {
			exitRow = w.Pos.Row
		}
	}
	if entranceRow == 0 {
		return nil, fmt.Errorf("%w: no entrance in column 1", ErrInvalidFormat)
	}
	if exitRow == 0 {
		return nil, fmt.Errorf("%w: no exit in column %d", ErrInvalidFormat, width)
	}

	g, err := NewFromWalls(width, height, entranceRow, exitRow, walls)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return g, nil
}

func parseRecord(text string) (Walls, error) {
	m := recordRegex.FindStringSubmatch(text)
	if m == nil {
		return Walls{}, fmt.Errorf("record %q does not match XnnnYnnnL#T#R#B#", text)
	}

	// The regex guarantees three digits, so Atoi cannot fail.
	col, _ := strconv.Atoi(m[1])
	row, _ := strconv.Atoi(m[2])
	return Walls{
		Pos:    CellPosition{Col: col, Row: row},
		Left:   m[3] == "1",
		Top:    m[4] == "1",
		Right:  m[5] == "1",
		Bottom: m[6] == "1",
	}, nil
}

func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}
