package scene

// Store owns the committed objects in creation order. It is mutated only
// from the engine goroutine, so it carries no lock; renderers work from
// snapshots handed out by Objects.
type Store struct {
	objects []Object
	hitTol  float32
}

func NewStore(hitTolerance float32) *Store {
	return &Store{hitTol: hitTolerance}
}

// Commit appends an object. Identity is assigned at construction and never
// reused or reassigned by any mutation.
func (s *Store) Commit(o Object) {
	s.objects = append(s.objects, o)
}

// Objects returns a copy of the committed list, oldest first.
func (s *Store) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *Store) Len() int { return len(s.objects) }

func (s *Store) Get(id string) Object {
	for _, o := range s.objects {
		if o.ID() == id {
			return o
		}
	}
	return nil
}

func (s *Store) RemoveByID(id string) bool {
	for i, o := range s.objects {
		if o.ID() == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			return true
		}
	}
	return false
}

// ReplaceAll swaps in a full object list; used when undoing an erase-all.
func (s *Store) ReplaceAll(objects []Object) {
	s.objects = append(s.objects[:0:0], objects...)
}

// EraseAll clears the scene and returns the prior list so the caller can
// record the inverse before it is lost.
func (s *Store) EraseAll() []Object {
	prior := s.objects
	s.objects = nil
	return prior
}

func (s *Store) Translate(id string, dx, dy float32) bool {
	o := s.Get(id)
	if o == nil {
		return false
	}
	translateObject(o, dx, dy)
	return true
}

// SetRotation sets an object's rotation about center. The center is only
// written the first time; later gestures reuse the established pivot.
func (s *Store) SetRotation(id string, angle float64, center Point) bool {
	o := s.Get(id)
	if o == nil {
		return false
	}
	tf := o.Transform()
	if tf.RotationCenter == nil {
		c := center
		tf.RotationCenter = &c
	}
	tf.Rotation = angle
	return true
}

// SetScale sets an object's scale about center, clamped to the supported
// range. Out-of-range requests are clamped, never rejected.
func (s *Store) SetScale(id string, scale float32, center Point) bool {
	o := s.Get(id)
	if o == nil {
		return false
	}
	tf := o.Transform()
	if tf.ScaleCenter == nil {
		c := center
		tf.ScaleCenter = &c
	}
	tf.Scale = ClampScale(scale)
	return true
}

// ClearPivots forgets an object's established rotation and scale centers so
// the next gesture recomputes them from the current geometry.
func (s *Store) ClearPivots(id string) bool {
	o := s.Get(id)
	if o == nil {
		return false
	}
	tf := o.Transform()
	tf.RotationCenter = nil
	tf.ScaleCenter = nil
	return true
}

// FindTopmostAt hit-tests the scene at p, walking objects in reverse
// creation order so the most recently drawn wins ties.
func (s *Store) FindTopmostAt(p Point) Object {
	for i := len(s.objects) - 1; i >= 0; i-- {
		if hitObject(s.objects[i], p, s.hitTol) {
			return s.objects[i]
		}
	}
	return nil
}

func hitObject(o Object, p Point, tol float32) bool {
	switch v := o.(type) {
	case *Line:
		tf := v.Transform()
		return segmentDist(p, tf.Apply(v.Start), tf.Apply(v.End)) <= tol
	case *Path:
		tf := v.Transform()
		for i := 1; i < len(v.Points); i++ {
			if segmentDist(p, tf.Apply(v.Points[i-1]), tf.Apply(v.Points[i])) <= tol {
				return true
			}
		}
		return false
	case *Shape:
		if c, r, ok := CircleGeom(v); ok {
			return Dist(p, c) <= r+tol
		}
		// Rectangle, oval and star accept a bounding-box approximation.
		min, max := Bounds(v)
		return p.X >= min.X-tol && p.X <= max.X+tol &&
			p.Y >= min.Y-tol && p.Y <= max.Y+tol
	}
	return false
}

// segmentDist is the perpendicular distance from p to the segment ab,
// falling back to endpoint distance beyond the segment's extent.
func segmentDist(p, a, b Point) float32 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	apx := float64(p.X - a.X)
	apy := float64(p.Y - a.Y)
	lenSq := abx*abx + aby*aby
	if lenSq == 0 {
		return Dist(p, a)
	}
	t := (apx*abx + apy*aby) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := Point{
		X: a.X + float32(t*abx),
		Y: a.Y + float32(t*aby),
	}
	return Dist(p, proj)
}
