package allocator

import "github.com/adilbekov/umrah-rooming/pkg/core/rooms"

// Transform is a room re-carving a placement depends on: the 1-based first
// sheet row of the pattern and the recipe to apply there. Inside the
// allocator Row is 0-based; it is shifted at the exported boundary.
type Transform struct {
	Row  int
	Mode Mode
}

// LabelPlan tells the writer how to rewrite room labels after a
// transformation: one label per affected row ("" for continuation rows
// covered by a merge) and the row-offset spans to merge in the room
// column.
type LabelPlan struct {
	Labels []string
	Merges [][2]int
}

var labelPlans = map[Mode]LabelPlan{
	ModeQuadToDoubles: {
		Labels: []string{"DBL", "", "DBL", ""},
		Merges: [][2]int{{0, 1}, {2, 3}},
	},
	ModeTriplesToDoubles: {
		Labels: []string{"DBL", "", "DBL", "", "DBL", ""},
		Merges: [][2]int{{0, 1}, {2, 3}, {4, 5}},
	},
	ModeQuadsToTriples: {
		Labels: []string{"TRPL", "", "", "TRPL", "", "", "DBL", ""},
		Merges: [][2]int{{0, 2}, {3, 5}, {6, 7}},
	},
	ModeDoublesToTriples: {
		Labels: []string{"TRPL", "", "", "TRPL", "", ""},
		Merges: [][2]int{{0, 2}, {3, 5}},
	},
	ModeDoublesToQuad: {
		Labels: []string{"QUAD", "", "", ""},
		Merges: [][2]int{{0, 3}},
	},
	ModeDoubleToSingles: {
		Labels: []string{"SGL", "SGL"},
	},
	ModeTripleToDblSingle: {
		Labels: []string{"DBL", "", "SGL"},
		Merges: [][2]int{{0, 1}},
	},
}

// TransformLabelPlan returns the label rewrite recipe for a transformation
// mode; ok is false for share and new-room modes, which leave labels
// untouched.
func TransformLabelPlan(mode Mode) (LabelPlan, bool) {
	plan, ok := labelPlans[mode]
	return plan, ok
}

// Room-kind transformation recipes. When no room of the desired kind has a
// bed, specific patterns of fully empty rooms can be notionally re-carved:
//
//	DOUBLE: 1 empty QUAD => 2x DOUBLE; 2 empty TRIPLE => 3x DOUBLE
//	TRIPLE: 2 empty QUAD => 2x TRIPLE + 1x DOUBLE; 3 empty DOUBLE => 2x TRIPLE
//	QUAD:   2 empty DOUBLE => 1x QUAD
//	SINGLE: 1 empty DOUBLE => 2x SINGLE; 1 empty TRIPLE => 1x DOUBLE + 1x SINGLE
//
// Every participating row must be completely unoccupied. The first matching
// recipe in grid order wins and the first row of the first involved run is
// returned. The actual re-labeling of the sheet is the writer's job.

// kindAt parses the room label on a row; ok=false for mid-run or
// unlabeled rows.
func (s *search) kindAt(row int) (rooms.Kind, bool) {
	return rooms.ParseRoomLabel(s.roomLabel(row))
}

func (s *search) kindIs(row int, want rooms.Kind) bool {
	k, ok := s.kindAt(row)
	return ok && k == want
}

// transformSlot searches the block for a transformation opportunity for the
// desired kind. Returns the 0-based first row of the pattern.
func (s *search) transformSlot(desired rooms.Kind) (int, Mode, bool) {
	start := s.block.DataStart()
	end := s.block.EndRow

	switch desired {
	case rooms.Double:
		// 1 empty QUAD => 2 DOUBLE
		for i := start; i < end; i++ {
			if s.kindIs(i, rooms.Quad) && s.rowsEmpty(i, 4) {
				return i, ModeQuadToDoubles, true
			}
		}
		// 2 adjacent empty TRIPLE => 3 DOUBLE
		for i := start; i < end-3; i++ {
			if s.kindIs(i, rooms.Triple) && s.kindIs(i+3, rooms.Triple) && s.rowsEmpty(i, 6) {
				return i, ModeTriplesToDoubles, true
			}
		}

	case rooms.Triple:
		// 2 adjacent empty QUAD => 2 TRIPLE + 1 DOUBLE
		for i := start; i < end-4; i++ {
			if s.kindIs(i, rooms.Quad) && s.kindIs(i+4, rooms.Quad) && s.rowsEmpty(i, 8) {
				return i, ModeQuadsToTriples, true
			}
		}
		// 3 adjacent empty DOUBLE => 2 TRIPLE
		for i := start; i < end-4; i++ {
			if s.kindIs(i, rooms.Double) && s.kindIs(i+2, rooms.Double) && s.kindIs(i+4, rooms.Double) && s.rowsEmpty(i, 6) {
				return i, ModeDoublesToTriples, true
			}
		}

	case rooms.Quad:
		// 2 adjacent empty DOUBLE => 1 QUAD
		for i := start; i < end-2; i++ {
			if s.kindIs(i, rooms.Double) && s.kindIs(i+2, rooms.Double) && s.rowsEmpty(i, 4) {
				return i, ModeDoublesToQuad, true
			}
		}

	case rooms.Single:
		// 1 empty DOUBLE => 2 SINGLE
		for i := start; i < end; i++ {
			if s.kindIs(i, rooms.Double) && s.rowsEmpty(i, 2) {
				return i, ModeDoubleToSingles, true
			}
		}
		// 1 empty TRIPLE => 1 DOUBLE + 1 SINGLE
		for i := start; i < end; i++ {
			if s.kindIs(i, rooms.Triple) && s.rowsEmpty(i, 3) {
				return i, ModeTripleToDblSingle, true
			}
		}
	}

	return 0, "", false
}
