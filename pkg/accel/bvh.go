package accel

import "github.com/rowanvale/luxcore/pkg/core"

const (
	// nBuckets is the number of SAH buckets used to evaluate candidate
	// splits along the chosen axis.
	nBuckets = 12
	// maxTraversalDepth is the capacity of the explicit traversal stack
	// of pending nodes; the builder does not itself cap tree depth.
	maxTraversalDepth = 64
)

// buildNode is the build-time (pointer-based) BVH tree. It is discarded
// immediately after flattening; nothing downstream of Build ever walks
// it.
type buildNode struct {
	bounds          core.AABB
	left, right     *buildNode
	splitAxis       int
	firstPrimOffset int
	numPrimitives   int
}

func newLeaf(bounds core.AABB, firstPrimOffset, n int) *buildNode {
	return &buildNode{bounds: bounds, firstPrimOffset: firstPrimOffset, numPrimitives: n}
}

func newInterior(axis int, left, right *buildNode) *buildNode {
	return &buildNode{bounds: left.bounds.Union(right.bounds), left: left, right: right, splitAxis: axis}
}

// LinearBVHNode is the flattened, pointer-free runtime representation.
// Node 0 is the root. For an interior node, the first child is always
// at index self+1; Offset holds the second child's index and Axis holds
// the split axis. For a leaf, NumPrimitives > 0 and Offset is the first
// primitive's offset into the (reordered) primitive array.
type LinearBVHNode struct {
	Bounds        core.AABB
	Offset        int32 // primitivesOffset (leaf) or secondChildOffset (interior)
	NumPrimitives uint16
	Axis          uint8
}

// BVH is the built accelerator: a flat node array plus the primitive
// array reordered so each leaf's primitives form one contiguous run.
type BVH struct {
	Nodes      []LinearBVHNode
	Primitives []Primitive
}

// Build constructs a BVH over the given primitives using SAH bucket
// splitting with maxPrimsInLeaf as the leaf-size target. The input slice
// is not modified; Build returns a new, reordered primitive slice on the
// BVH.
func Build(primitives []Primitive, maxPrimsInLeaf int) *BVH {
	if maxPrimsInLeaf < 1 {
		maxPrimsInLeaf = 1
	}
	if len(primitives) == 0 {
		return &BVH{}
	}

	info := make([]primitiveInfo, len(primitives))
	for i, p := range primitives {
		info[i] = newPrimitiveInfo(i, p.Bounds())
	}

	ordered := make([]Primitive, 0, len(primitives))
	root := recursiveBuild(primitives, info, 0, len(info), &ordered, maxPrimsInLeaf)

	nodeCount := countNodes(root)
	nodes := make([]LinearBVHNode, nodeCount)
	offset := 0
	flatten(root, nodes, &offset)

	return &BVH{Nodes: nodes, Primitives: ordered}
}

func countNodes(n *buildNode) int {
	if n == nil {
		return 0
	}
	if n.left == nil {
		return 1
	}
	return 1 + countNodes(n.left) + countNodes(n.right)
}

// recursiveBuild implements spec §4.2: union bounds, bucket-SAH split
// selection over the centroid bounds' longest axis, recurse, emit a
// leaf whenever a split isn't worth its own cost.
func recursiveBuild(prims []Primitive, info []primitiveInfo, start, end int, ordered *[]Primitive, maxPrimsInLeaf int) *buildNode {
	bounds := core.EmptyAABB()
	for i := start; i < end; i++ {
		bounds = bounds.Union(info[i].bounds)
	}
	n := end - start

	makeLeaf := func() *buildNode {
		firstOffset := len(*ordered)
		for i := start; i < end; i++ {
			*ordered = append(*ordered, prims[info[i].index])
		}
		return newLeaf(bounds, firstOffset, n)
	}

	if bounds.SurfaceArea() == 0 || n <= 1 {
		return makeLeaf()
	}

	centroidBounds := core.EmptyAABB()
	for i := start; i < end; i++ {
		centroidBounds = centroidBounds.ExpandPoint(info[i].centroid)
	}
	dim := centroidBounds.LongestAxis()
	if core.Axis(centroidBounds.Diagonal(), dim) == 0 {
		return makeLeaf()
	}

	var mid int
	if n == 2 {
		if core.Axis(info[start].centroid, dim) > core.Axis(info[start+1].centroid, dim) {
			info[start], info[start+1] = info[start+1], info[start]
		}
		mid = start + 1
	} else {
		bucketOf := func(c core.Vec3) int {
			b := int(float64(nBuckets) * core.Axis(centroidBounds.Offset(c), dim))
			if b < 0 {
				b = 0
			}
			if b > nBuckets-1 {
				b = nBuckets - 1
			}
			return b
		}

		var counts [nBuckets]int
		var boxes [nBuckets]core.AABB
		for i := range boxes {
			boxes[i] = core.EmptyAABB()
		}
		bucketIdx := make([]int, n)
		for i := start; i < end; i++ {
			b := bucketOf(info[i].centroid)
			bucketIdx[i-start] = b
			counts[b]++
			boxes[b] = boxes[b].Union(info[i].bounds)
		}

		// Forward prefix (below) and reverse suffix (above) sums over the
		// nBuckets-1 candidate split positions.
		var costBelow, costAbove [nBuckets - 1]float64
		runningBox := core.EmptyAABB()
		runningCount := 0
		for i := 0; i < nBuckets-1; i++ {
			runningBox = runningBox.Union(boxes[i])
			runningCount += counts[i]
			costBelow[i] = float64(runningCount) * runningBox.SurfaceArea()
		}
		runningBox = core.EmptyAABB()
		runningCount = 0
		for i := nBuckets - 1; i >= 1; i-- {
			runningBox = runningBox.Union(boxes[i])
			runningCount += counts[i]
			costAbove[i-1] = float64(runningCount) * runningBox.SurfaceArea()
		}

		sa := bounds.SurfaceArea()
		bestCost := costBelow[0] + costAbove[0]
		bestSplit := 0
		for i := 1; i < nBuckets-1; i++ {
			c := costBelow[i] + costAbove[i]
			if c < bestCost {
				bestCost = c
				bestSplit = i
			}
		}
		splitCost := 0.5 + bestCost/sa
		leafCost := float64(n)

		if n <= maxPrimsInLeaf && splitCost >= leafCost {
			return makeLeaf()
		}

		// Stable partition of info[start:end] by bucket <= bestSplit,
		// preserving relative order within each side.
		below := make([]primitiveInfo, 0, n)
		above := make([]primitiveInfo, 0, n)
		for i := start; i < end; i++ {
			if bucketIdx[i-start] <= bestSplit {
				below = append(below, info[i])
			} else {
				above = append(above, info[i])
			}
		}
		if len(below) == 0 || len(above) == 0 {
			return makeLeaf()
		}
		copy(info[start:], below)
		copy(info[start+len(below):], above)
		mid = start + len(below)
	}

	left := recursiveBuild(prims, info, start, mid, ordered, maxPrimsInLeaf)
	right := recursiveBuild(prims, info, mid, end, ordered, maxPrimsInLeaf)
	return newInterior(dim, left, right)
}

// flatten writes the build-time tree into nodes in pre-order: a node is
// written before either of its children, and an interior node's left
// child always lands at self+1.
func flatten(node *buildNode, nodes []LinearBVHNode, offset *int) int {
	self := *offset
	*offset++

	if node.left == nil {
		nodes[self] = LinearBVHNode{
			Bounds:        node.bounds,
			Offset:        int32(node.firstPrimOffset),
			NumPrimitives: uint16(node.numPrimitives),
		}
		return self
	}

	flatten(node.left, nodes, offset)
	secondChild := flatten(node.right, nodes, offset)

	nodes[self] = LinearBVHNode{
		Bounds:        node.bounds,
		Offset:        int32(secondChild),
		NumPrimitives: 0,
		Axis:          uint8(node.splitAxis),
	}
	return self
}

// ClosestHit returns the nearest intersection along the ray within
// tInterval, tightening the running t-max as closer hits are found so
// later subtree tests can reject early.
func (b *BVH) ClosestHit(ray core.Ray, tInterval core.Interval) (core.HitRecord, bool) {
	if len(b.Nodes) == 0 {
		return core.HitRecord{}, false
	}

	dirIsNeg := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}

	var stack [maxTraversalDepth]int32
	toVisit := 0
	nodeIdx := 0
	tMax := tInterval.Max

	var best core.HitRecord
	found := false

	for {
		node := &b.Nodes[nodeIdx]
		if node.Bounds.Hit(ray, core.Interval{Min: tInterval.Min, Max: tMax}) {
			if node.NumPrimitives > 0 {
				for i := 0; i < int(node.NumPrimitives); i++ {
					primIdx := int(node.Offset) + i
					if hit, ok := b.Primitives[primIdx].Intersect(ray, core.Interval{Min: tInterval.Min, Max: tMax}); ok {
						found = true
						tMax = hit.T
						hit.PrimitiveIndex = primIdx
						best = hit
					}
				}
				if toVisit == 0 {
					break
				}
				toVisit--
				nodeIdx = int(stack[toVisit])
			} else {
				// Visit the child on the ray's traversal-forward side first;
				// for a ray pointing along the negative axis that's the
				// second child, so push the first child and descend right.
				if dirIsNeg[node.Axis] {
					stack[toVisit] = int32(nodeIdx + 1)
					toVisit++
					nodeIdx = int(node.Offset)
				} else {
					stack[toVisit] = node.Offset
					toVisit++
					nodeIdx = nodeIdx + 1
				}
			}
		} else {
			if toVisit == 0 {
				break
			}
			toVisit--
			nodeIdx = int(stack[toVisit])
		}
	}

	return best, found
}

// AnyHit returns true as soon as any primitive intersection is found
// within tInterval, without determining which is closest.
func (b *BVH) AnyHit(ray core.Ray, tInterval core.Interval) bool {
	if len(b.Nodes) == 0 {
		return false
	}

	dirIsNeg := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}

	var stack [maxTraversalDepth]int32
	toVisit := 0
	nodeIdx := 0

	for {
		node := &b.Nodes[nodeIdx]
		if node.Bounds.Hit(ray, tInterval) {
			if node.NumPrimitives > 0 {
				for i := 0; i < int(node.NumPrimitives); i++ {
					primIdx := int(node.Offset) + i
					if b.Primitives[primIdx].IntersectP(ray, tInterval) {
						return true
					}
				}
				if toVisit == 0 {
					break
				}
				toVisit--
				nodeIdx = int(stack[toVisit])
			} else {
				if dirIsNeg[node.Axis] {
					stack[toVisit] = int32(nodeIdx + 1)
					toVisit++
					nodeIdx = int(node.Offset)
				} else {
					stack[toVisit] = node.Offset
					toVisit++
					nodeIdx = nodeIdx + 1
				}
			}
		} else {
			if toVisit == 0 {
				break
			}
			toVisit--
			nodeIdx = int(stack[toVisit])
		}
	}
	return false
}

// Bounds returns the world-space bounds of the whole tree, or an empty
// box if the BVH has no primitives.
func (b *BVH) Bounds() core.AABB {
	if len(b.Nodes) == 0 {
		return core.EmptyAABB()
	}
	return b.Nodes[0].Bounds
}
