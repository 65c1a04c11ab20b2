package mark

// Seq admits start, start+stride, ..., up to and including end. start and
// end independently resolve through the same negative/zero rules as Solo;
// the interval wraps through base when start > end after resolution.
type Seq struct {
	base, maxVal int
	start, end   int
	stride       int
}

var _ Mark = (*Seq)(nil)

// NewSeq constructs a Seq mark. start=0, end=-1, stride=1 is equivalent to
// Every.
func NewSeq(start, end, stride, base, maxVal int) (*Seq, error) {
	if maxVal <= base {
		return nil, errRange("seq max", maxVal, base, maxVal)
	}
	if stride <= 0 {
		return nil, errRange("seq stride", stride, 1, maxVal)
	}
	s := &Seq{base: base, maxVal: maxVal, stride: stride}
	if start == 0 {
		s.start = base
	} else if start < 0 {
		s.start = maxVal + 1 + start
	} else {
		s.start = start
	}
	if end < 0 {
		s.end = maxVal + 1 + end
	} else {
		s.end = end
	}
	if s.width() <= 0 || s.width() > maxVal+1 {
		return nil, errRange("seq width", s.width(), 1, maxVal+1)
	}
	return s, nil
}

func (s *Seq) Base() int { return s.base }
func (s *Seq) Cap() int  { return s.maxVal }

func (s *Seq) crossesZero() bool { return s.start > s.end }

// calStart is the start position translated into an unbounded coordinate
// system so width/distance arithmetic doesn't need to special-case the wrap.
func (s *Seq) calStart() int {
	if s.crossesZero() {
		return s.start - s.maxVal - 1 + s.base
	}
	return s.start
}

func (s *Seq) width() int { return s.end - s.calStart() }

// Len returns |M|: the count of admissible values.
func (s *Seq) Len() int { return s.width()/s.stride + 1 }

func (s *Seq) cross(n int) bool {
	if s.crossesZero() {
		return !(s.end <= n && n <= s.start)
	}
	return s.start <= n && n <= s.end
}

func (s *Seq) distanceStart(n int) int {
	if s.start > n {
		return n - s.calStart()
	}
	return n - s.start
}

func (s *Seq) fmtInt(n int) int {
	if n >= s.base {
		return n
	}
	return s.maxVal - (s.base - n - 1)
}

func (s *Seq) lastInt() int {
	return s.fmtInt(s.end - s.width()%s.stride)
}

// nthInt is 0-based from the start of the sequence.
func (s *Seq) nthInt(n int) int {
	n = floorMod(n, s.Len())
	return s.fmtInt(s.calStart() + n*s.stride)
}

// nthLastInt is 1-based counting back from the end.
func (s *Seq) nthLastInt(n int) int {
	n = floorMod(n-1, s.Len())
	return s.nthInt(s.Len() - 1 - n)
}

func (s *Seq) Nums() []int {
	out := make([]int, s.Len())
	for i := range out {
		out[i] = s.nthInt(i)
	}
	return out
}

func (s *Seq) Contains(n int) bool {
	if !s.cross(n) {
		return false
	}
	return floorMod(s.distanceStart(n), s.stride) == 0
}

func (s *Seq) Prev(n, leap int, passNow bool) (int, int) {
	borrow := 0
	var past int
	if !s.cross(n) {
		past = s.distanceStart(s.lastInt())
		if n < s.start {
			borrow++
		}
		leap--
	} else {
		past = s.distanceStart(n)
		margin := floorMod(past, s.stride)
		past -= margin
		if !passNow || margin != 0 {
			leap--
		}
	}
	pos := past / s.stride
	dist := leap - pos
	if dist > 0 {
		borrow += 1 + dist/(s.Len()+1)
	}
	nth := past/s.stride - leap
	var num int
	if nth >= 0 {
		num = s.nthInt(nth)
	} else {
		num = s.nthLastInt(-nth)
	}
	return num, borrow
}

func (s *Seq) Next(n, leap int, passNow bool) (int, int) {
	forward := 0
	var past int
	if !s.cross(n) {
		past = 0
		if n > s.end {
			forward++
		}
		leap--
	} else {
		past = s.distanceStart(n)
		margin := floorMod(past, s.stride)
		past -= margin
		if !passNow || margin != 0 {
			leap--
		}
	}
	pos := past / s.stride
	dist := leap - (s.Len() - 1 - pos)
	if dist > 0 {
		forward += 1 + dist/(s.Len()+1)
	}
	nth := pos + leap
	return s.nthInt(nth), forward
}

func (s *Seq) CostAhead(n int, passNow bool) int {
	if !s.cross(n) {
		if n > s.end {
			return 0
		}
		return s.Len()
	}
	dist := s.distanceStart(n)
	pos := dist / s.stride
	if !passNow && dist%s.stride == 0 {
		return s.Len() - pos
	}
	return s.Len() - 1 - pos
}

func (s *Seq) CostBehind(n int, passNow bool) int {
	if !s.cross(n) {
		if n < s.start {
			return 0
		}
		return s.Len()
	}
	dist := s.distanceStart(n)
	pos := dist / s.stride
	if passNow && dist%s.stride == 0 {
		return pos
	}
	return pos + 1
}
