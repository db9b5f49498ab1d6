package common

import (
	"encoding/json"
	"fmt"
)

type LineCol struct {
	LineNo int // The line number of the position
	ColNo  int // The column number of the position
}

// Loc is the source extent of a term, used only to tag diagnostics.
type Loc struct {
	Source      string // The name of the source unit (file path or "<builtin>")
	StartLine   int    // The starting line number of the extent
	StartColumn int    // The starting column number of the extent
	EndLine     int    // The ending line number of the extent
	EndColumn   int    // The ending column number of the extent
}

func (x *Loc) LocString() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", x.Source, x.StartLine, x.StartColumn, x.EndLine, x.EndColumn)
}

func (x *LineCol) Loc(source string, lineCol LineCol) Loc {
	return Loc{
		Source:      source,
		StartLine:   x.LineNo,
		StartColumn: x.ColNo,
		EndLine:     lineCol.LineNo,
		EndColumn:   lineCol.ColNo,
	}
}

func (x *Loc) MergeLoc(y *Loc) Loc {
	if y == nil {
		return Loc{}
	}
	sofar := *x
	if sofar.StartLine > y.StartLine || (sofar.StartLine == y.StartLine && sofar.StartColumn > y.StartColumn) {
		sofar.StartLine = y.StartLine
		sofar.StartColumn = y.StartColumn
	}
	if sofar.EndLine < y.EndLine || (sofar.EndLine == y.EndLine && sofar.EndColumn < y.EndColumn) {
		sofar.EndLine = y.EndLine
		sofar.EndColumn = y.EndColumn
	}
	return sofar
}

// SameLoc compares two locations by position.
func SameLoc(x, y Loc) bool {
	return x == y
}

// MarshalJSON implements custom JSON marshaling for Loc.
func (s Loc) MarshalJSON() ([]byte, error) {
	arr := []any{s.Source, s.StartLine, s.StartColumn, s.EndLine, s.EndColumn}
	return json.Marshal(arr)
}

// UnmarshalJSON implements custom JSON unmarshaling for Loc.
func (s *Loc) UnmarshalJSON(data []byte) error {
	var arr []any
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) != 5 {
		return fmt.Errorf("loc must have 5 elements, got %d", len(arr))
	}
	source, ok := arr[0].(string)
	if !ok {
		return fmt.Errorf("loc source must be a string")
	}
	nums := [4]int{}
	for i := 0; i < 4; i++ {
		f, ok := arr[i+1].(float64)
		if !ok {
			return fmt.Errorf("loc position %d must be a number", i)
		}
		nums[i] = int(f)
	}
	s.Source = source
	s.StartLine = nums[0]
	s.StartColumn = nums[1]
	s.EndLine = nums[2]
	s.EndColumn = nums[3]
	return nil
}
