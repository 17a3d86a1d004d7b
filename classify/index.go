package classify

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/johari/subject"
	"github.com/hupe1980/johari/traitset"
)

// corroboration indexes, per vocabulary position, which peer submissions and
// which distinct assessors attributed the trait.
type corroboration struct {
	submissions []*roaring.Bitmap
	assessors   []*roaring.Bitmap
	union       traitset.Set
	numAssessor int
}

func newCorroboration(width int, peers []subject.PeerAssessment) *corroboration {
	c := &corroboration{
		submissions: make([]*roaring.Bitmap, width),
		assessors:   make([]*roaring.Bitmap, width),
	}

	ordinals := make(map[subject.ID]uint32, len(peers))
	for n, p := range peers {
		ord, ok := ordinals[p.Assessor]
		if !ok {
			ord = uint32(len(ordinals))
			ordinals[p.Assessor] = ord
		}
		c.union = c.union.Union(p.Traits)

		for i := range p.Traits.All() {
			if i >= width {
				continue
			}
			if c.submissions[i] == nil {
				c.submissions[i] = roaring.New()
				c.assessors[i] = roaring.New()
			}
			c.submissions[i].Add(uint32(n))
			c.assessors[i].Add(ord)
		}
	}
	c.numAssessor = len(ordinals)
	return c
}

// count returns the number of submissions naming position i.
func (c *corroboration) count(i int) int {
	if c.submissions[i] == nil {
		return 0
	}
	return int(c.submissions[i].GetCardinality())
}

// distinct returns the number of distinct assessors naming position i.
func (c *corroboration) distinct(i int) int {
	if c.assessors[i] == nil {
		return 0
	}
	return int(c.assessors[i].GetCardinality())
}
