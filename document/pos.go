package document

type Pos struct {
	Seg, Off int
}

func (p Pos) Before(other Pos) bool {
	if p.Seg != other.Seg {
		return p.Seg < other.Seg
	}
	return p.Off < other.Off
}

func (p Pos) Equal(other Pos) bool {
	return p.Seg == other.Seg && p.Off == other.Off
}

type Selection struct {
	Start, End Pos
}

func NewSelection(a, b Pos) Selection {
	if a.Before(b) {
		return Selection{Start: a, End: b}
	}
	return Selection{Start: b, End: a}
}

func (s Selection) Contains(p Pos) bool {
	if p.Before(s.Start) || s.End.Before(p) {
		return false
	}
	return true
}

func (s Selection) Empty() bool {
	return s.Start.Equal(s.End)
}
