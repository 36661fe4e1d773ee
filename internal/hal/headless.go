package hal

// Discard accepts every call and draws nothing.
type Discard struct{}

func (Discard) SetRefreshRate(float32) error { return nil }

func (Discard) Clear(Color) error { return nil }

func (Discard) DrawLine(Point, Point, int, Color) error { return nil }

// Line is one recorded DrawLine call.
type Line struct {
	From, To  Point
	Thickness int
	Color     Color
}

// Capture records the draw calls of the most recent frame. Clear starts a
// new frame.
type Capture struct {
	Background Color
	Lines      []Line
	Clears     int
	Rate       float32
}

func (c *Capture) SetRefreshRate(fps float32) error {
	c.Rate = fps
	return nil
}

func (c *Capture) Clear(bg Color) error {
	c.Background = bg
	c.Lines = c.Lines[:0]
	c.Clears++
	return nil
}

func (c *Capture) DrawLine(from, to Point, thickness int, col Color) error {
	c.Lines = append(c.Lines, Line{From: from, To: to, Thickness: thickness, Color: col})
	return nil
}
